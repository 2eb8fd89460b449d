package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/vantage-club/clubgate/clubgate/database/models"
	"github.com/vantage-club/clubgate/clubgate/services/mock"
	"github.com/vantage-club/clubgate/clubgate/token"
	"go.uber.org/mock/gomock"
)

const testDiscordID = "123456789012345678"

func issueTestClaim(t *testing.T, codec ClaimCodec, membershipID, planID string) (string, string) {
	t.Helper()
	claim, jti, err := codec.Issue(membershipID, planID, "Payer")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	return claim, jti
}

func TestRedeem(t *testing.T) {
	identity := Identity{DiscordID: testDiscordID, Username: "payer", Email: "payer@example.com"}
	roleID := snowflake.ID(222)

	t.Run("happy path binds the link and grants the role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		codec := newTestCodec(t)
		claims := mock.NewMockClaimRepository(ctrl)
		members := mock.NewMockMembershipRepository(ctrl)
		roles := mock.NewMockRoleManager(ctrl)

		svc := NewRedemptionService(codec, claims, members, roles)
		claim, jti := issueTestClaim(t, codec, "M1", "plan_anual")

		claims.EXPECT().IsUsed(gomock.Any(), jti).Return(false, nil)
		claims.EXPECT().MarkUsed(gomock.Any(), jti, testDiscordID, "203.0.113.7").Return(true, nil)
		members.EXPECT().Upsert(gomock.Any(), "M1", testDiscordID, "payer", "payer@example.com", "plan_anual").Return(nil)
		roles.EXPECT().ResolveRole("plan_anual").Return(roleID)

		granted := make(chan struct{})
		roles.EXPECT().GrantRole(gomock.Any(), snowflake.ID(123456789012345678), roleID).
			DoAndReturn(func(context.Context, snowflake.ID, snowflake.ID) error {
				close(granted)
				return nil
			})

		outcome, err := svc.Redeem(context.Background(), claim, identity, "203.0.113.7")
		if err != nil {
			t.Fatalf("Redeem() error = %v", err)
		}
		if outcome.MembershipID != "M1" || outcome.PlanID != "plan_anual" || outcome.RoleID != roleID {
			t.Errorf("outcome = %+v", outcome)
		}

		select {
		case <-granted:
		case <-time.After(2 * time.Second):
			t.Fatal("role grant was never requested")
		}
	})

	t.Run("already used claim", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		codec := newTestCodec(t)
		claims := mock.NewMockClaimRepository(ctrl)
		members := mock.NewMockMembershipRepository(ctrl)
		roles := mock.NewMockRoleManager(ctrl)

		svc := NewRedemptionService(codec, claims, members, roles)
		claim, jti := issueTestClaim(t, codec, "M1", "plan_mensual")

		claims.EXPECT().IsUsed(gomock.Any(), jti).Return(true, nil)

		if _, err := svc.Redeem(context.Background(), claim, identity, ""); !errors.Is(err, ErrClaimAlreadyUsed) {
			t.Fatalf("error = %v, want ErrClaimAlreadyUsed", err)
		}
	})

	t.Run("losing the use race", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		codec := newTestCodec(t)
		claims := mock.NewMockClaimRepository(ctrl)
		members := mock.NewMockMembershipRepository(ctrl)
		roles := mock.NewMockRoleManager(ctrl)

		svc := NewRedemptionService(codec, claims, members, roles)
		claim, jti := issueTestClaim(t, codec, "M1", "plan_mensual")

		claims.EXPECT().IsUsed(gomock.Any(), jti).Return(false, nil)
		claims.EXPECT().MarkUsed(gomock.Any(), jti, testDiscordID, "").Return(false, nil)

		if _, err := svc.Redeem(context.Background(), claim, identity, ""); !errors.Is(err, ErrClaimAlreadyUsed) {
			t.Fatalf("error = %v, want ErrClaimAlreadyUsed", err)
		}
	})

	t.Run("unreachable ledger fails closed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		codec := newTestCodec(t)
		claims := mock.NewMockClaimRepository(ctrl)
		members := mock.NewMockMembershipRepository(ctrl)
		roles := mock.NewMockRoleManager(ctrl)

		svc := NewRedemptionService(codec, claims, members, roles)
		claim, jti := issueTestClaim(t, codec, "M1", "plan_mensual")

		claims.EXPECT().IsUsed(gomock.Any(), jti).Return(false, errors.New("connection refused"))

		if _, err := svc.Redeem(context.Background(), claim, identity, ""); !errors.Is(err, ErrCollaboratorUnavailable) {
			t.Fatalf("error = %v, want ErrCollaboratorUnavailable", err)
		}
	})

	t.Run("invalid claim is rejected before any ledger access", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		codec := newTestCodec(t)
		claims := mock.NewMockClaimRepository(ctrl)
		members := mock.NewMockMembershipRepository(ctrl)
		roles := mock.NewMockRoleManager(ctrl)

		svc := NewRedemptionService(codec, claims, members, roles)

		if _, err := svc.Redeem(context.Background(), "not-a-token", identity, ""); !errors.Is(err, ErrInvalidClaim) {
			t.Fatalf("error = %v, want ErrInvalidClaim", err)
		}
	})

	t.Run("expired claim is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		expiredCodec := newExpiredCodec(t)
		claims := mock.NewMockClaimRepository(ctrl)
		members := mock.NewMockMembershipRepository(ctrl)
		roles := mock.NewMockRoleManager(ctrl)

		svc := NewRedemptionService(expiredCodec, claims, members, roles)
		claim, _ := issueTestClaim(t, expiredCodec, "M1", "plan_mensual")

		if _, err := svc.Redeem(context.Background(), claim, identity, ""); !errors.Is(err, ErrInvalidClaim) {
			t.Fatalf("error = %v, want ErrInvalidClaim", err)
		}
	})

	t.Run("missing identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		codec := newTestCodec(t)
		svc := NewRedemptionService(codec, mock.NewMockClaimRepository(ctrl), mock.NewMockMembershipRepository(ctrl), mock.NewMockRoleManager(ctrl))
		claim, _ := issueTestClaim(t, codec, "M1", "plan_mensual")

		if _, err := svc.Redeem(context.Background(), claim, Identity{}, ""); err == nil {
			t.Fatal("expected an error for a missing discord id")
		}
	})

	t.Run("failed grant does not fail the redemption", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		codec := newTestCodec(t)
		claims := mock.NewMockClaimRepository(ctrl)
		members := mock.NewMockMembershipRepository(ctrl)
		roles := mock.NewMockRoleManager(ctrl)

		svc := NewRedemptionService(codec, claims, members, roles)
		claim, jti := issueTestClaim(t, codec, "M2", "plan_trimestral")

		claims.EXPECT().IsUsed(gomock.Any(), jti).Return(false, nil)
		claims.EXPECT().MarkUsed(gomock.Any(), jti, testDiscordID, "").Return(true, nil)
		members.EXPECT().Upsert(gomock.Any(), "M2", testDiscordID, "payer", "payer@example.com", "plan_trimestral").Return(nil)
		roles.EXPECT().ResolveRole("plan_trimestral").Return(roleID)

		granted := make(chan struct{})
		roles.EXPECT().GrantRole(gomock.Any(), gomock.Any(), roleID).
			DoAndReturn(func(context.Context, snowflake.ID, snowflake.ID) error {
				close(granted)
				return errors.New("missing permissions")
			})

		if _, err := svc.Redeem(context.Background(), claim, identity, ""); err != nil {
			t.Fatalf("Redeem() error = %v", err)
		}

		select {
		case <-granted:
		case <-time.After(2 * time.Second):
			t.Fatal("role grant was never requested")
		}
	})
}

func newExpiredCodec(t *testing.T) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec("enrollment-test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	return codec
}

func TestRevokeAccess(t *testing.T) {
	link := &models.MembershipLink{
		MembershipID: "M1",
		DiscordID:    testDiscordID,
		PlanID:       "plan_anual",
		IsActive:     true,
	}

	t.Run("deactivates the link and revokes the role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		members := mock.NewMockMembershipRepository(ctrl)
		roles := mock.NewMockRoleManager(ctrl)

		members.EXPECT().GetByMembershipID(gomock.Any(), "M1").Return(link, nil)
		members.EXPECT().Deactivate(gomock.Any(), "M1").Return(true, nil)
		roles.EXPECT().ResolveRole("plan_anual").Return(snowflake.ID(333))
		roles.EXPECT().RevokeRole(gomock.Any(), snowflake.ID(123456789012345678), snowflake.ID(333)).Return(nil)

		svc := NewRedemptionService(nil, nil, members, roles)
		if err := svc.RevokeAccess(context.Background(), "M1"); err != nil {
			t.Fatalf("RevokeAccess() error = %v", err)
		}
	})

	t.Run("unknown membership", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		members := mock.NewMockMembershipRepository(ctrl)

		members.EXPECT().GetByMembershipID(gomock.Any(), "M9").Return(nil, nil)

		svc := NewRedemptionService(nil, nil, members, mock.NewMockRoleManager(ctrl))
		if err := svc.RevokeAccess(context.Background(), "M9"); !errors.Is(err, ErrMembershipNotFound) {
			t.Fatalf("error = %v, want ErrMembershipNotFound", err)
		}
	})

	t.Run("revoke failure is swallowed after deactivation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		members := mock.NewMockMembershipRepository(ctrl)
		roles := mock.NewMockRoleManager(ctrl)

		members.EXPECT().GetByMembershipID(gomock.Any(), "M1").Return(link, nil)
		members.EXPECT().Deactivate(gomock.Any(), "M1").Return(true, nil)
		roles.EXPECT().ResolveRole("plan_anual").Return(snowflake.ID(333))
		roles.EXPECT().RevokeRole(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("missing permissions"))

		svc := NewRedemptionService(nil, nil, members, roles)
		if err := svc.RevokeAccess(context.Background(), "M1"); err != nil {
			t.Fatalf("RevokeAccess() error = %v", err)
		}
	})
}

func TestResyncAccess(t *testing.T) {
	t.Run("re-grants the role for an active link", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		members := mock.NewMockMembershipRepository(ctrl)
		roles := mock.NewMockRoleManager(ctrl)

		members.EXPECT().GetByMembershipID(gomock.Any(), "M1").Return(&models.MembershipLink{
			MembershipID: "M1",
			DiscordID:    testDiscordID,
			PlanID:       "plan_mensual",
			IsActive:     true,
		}, nil)
		roles.EXPECT().ResolveRole("plan_mensual").Return(snowflake.ID(111))
		roles.EXPECT().GrantRole(gomock.Any(), snowflake.ID(123456789012345678), snowflake.ID(111)).Return(nil)

		svc := NewRedemptionService(nil, nil, members, roles)
		outcome, err := svc.ResyncAccess(context.Background(), "M1")
		if err != nil {
			t.Fatalf("ResyncAccess() error = %v", err)
		}
		if outcome.RoleID != snowflake.ID(111) {
			t.Errorf("outcome role = %s, want 111", outcome.RoleID)
		}
	})

	t.Run("inactive link is not resynced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		members := mock.NewMockMembershipRepository(ctrl)

		members.EXPECT().GetByMembershipID(gomock.Any(), "M1").Return(&models.MembershipLink{
			MembershipID: "M1",
			DiscordID:    testDiscordID,
			PlanID:       "plan_mensual",
		}, nil)

		svc := NewRedemptionService(nil, nil, members, mock.NewMockRoleManager(ctrl))
		if _, err := svc.ResyncAccess(context.Background(), "M1"); !errors.Is(err, ErrMembershipNotFound) {
			t.Fatalf("error = %v, want ErrMembershipNotFound", err)
		}
	})

	t.Run("grant failure surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		members := mock.NewMockMembershipRepository(ctrl)
		roles := mock.NewMockRoleManager(ctrl)

		members.EXPECT().GetByMembershipID(gomock.Any(), "M1").Return(&models.MembershipLink{
			MembershipID: "M1",
			DiscordID:    testDiscordID,
			PlanID:       "plan_mensual",
			IsActive:     true,
		}, nil)
		roles.EXPECT().ResolveRole("plan_mensual").Return(snowflake.ID(111))
		roles.EXPECT().GrantRole(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("rate limited"))

		svc := NewRedemptionService(nil, nil, members, roles)
		if _, err := svc.ResyncAccess(context.Background(), "M1"); !errors.Is(err, ErrCollaboratorUnavailable) {
			t.Fatalf("error = %v, want ErrCollaboratorUnavailable", err)
		}
	})
}
