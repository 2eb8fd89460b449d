package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/vantage-club/clubgate/clubgate/database/repositories"
)

// RoleManager resolves plan tiers to guild roles and talks to the chat
// platform's role API.
type RoleManager interface {
	ResolveRole(planID string) snowflake.ID
	GrantRole(ctx context.Context, userID snowflake.ID, roleID snowflake.ID) error
	RevokeRole(ctx context.Context, userID snowflake.ID, roleID snowflake.ID) error
}

// Identity is a Discord identity already verified by the OAuth code
// exchange; this service never sees the authorization code.
type Identity struct {
	DiscordID string
	Username  string
	Email     string
}

// RedemptionOutcome reports what a successful redemption bound and granted.
type RedemptionOutcome struct {
	MembershipID string
	PlanID       string
	DiscordID    string
	RoleID       snowflake.ID
}

const grantTimeout = 15 * time.Second

// RedemptionService exchanges a claim token plus a verified identity for a
// bound membership link and a role grant. A claim moves Issued -> Used
// exactly once; the ledger's conditional update is the only transition path.
type RedemptionService struct {
	codec   ClaimCodec
	claims  repositories.ClaimRepository
	members repositories.MembershipRepository
	roles   RoleManager
}

func NewRedemptionService(codec ClaimCodec, claims repositories.ClaimRepository, members repositories.MembershipRepository, roles RoleManager) *RedemptionService {
	return &RedemptionService{
		codec:   codec,
		claims:  claims,
		members: members,
		roles:   roles,
	}
}

// VerifyClaim checks signature and expiry without consuming the claim.
// Used to reject bad links before starting the OAuth round trip.
func (s *RedemptionService) VerifyClaim(claimToken string) error {
	_, err := s.codec.Verify(claimToken)
	return err
}

// Redeem validates and consumes the claim, binds the membership to the
// Discord identity and requests the role grant. The grant is fire-and-
// forget: by that point the link is bound and a failed grant is recoverable
// through the resync endpoint.
func (s *RedemptionService) Redeem(ctx context.Context, claimToken string, identity Identity, ip string) (*RedemptionOutcome, error) {
	payload, err := s.codec.Verify(claimToken)
	if err != nil {
		return nil, err
	}

	if identity.DiscordID == "" {
		return nil, fmt.Errorf("discord identity is missing")
	}

	if s.claims != nil {
		used, err := s.claims.IsUsed(ctx, payload.JTI)
		if err != nil {
			// Ambiguous ledger state must not grant access.
			return nil, fmt.Errorf("%w: %w", ErrCollaboratorUnavailable, err)
		}
		if used {
			return nil, ErrClaimAlreadyUsed
		}

		claimed, err := s.claims.MarkUsed(ctx, payload.JTI, identity.DiscordID, ip)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCollaboratorUnavailable, err)
		}
		if !claimed {
			// Lost the race to a concurrent redeemer.
			return nil, ErrClaimAlreadyUsed
		}
	} else {
		slog.Warn("Claim ledger disabled, token expiry is the only redemption gate",
			slog.String("type", "claim"),
			slog.String("jti", payload.JTI))
	}

	if s.members != nil {
		if err := s.members.Upsert(ctx, payload.MembershipID, identity.DiscordID, identity.Username, identity.Email, payload.PlanID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCollaboratorUnavailable, err)
		}
	}

	outcome := &RedemptionOutcome{
		MembershipID: payload.MembershipID,
		PlanID:       payload.PlanID,
		DiscordID:    identity.DiscordID,
	}

	if s.roles != nil {
		outcome.RoleID = s.roles.ResolveRole(payload.PlanID)
		s.grantAsync(identity.DiscordID, outcome.RoleID)
	}

	slog.Info("Claim redeemed",
		slog.String("type", "claim"),
		slog.String("jti", payload.JTI),
		slog.String("membership_id", payload.MembershipID),
		slog.String("discord_id", identity.DiscordID),
		slog.String("role_id", outcome.RoleID.String()))

	return outcome, nil
}

// grantAsync requests the role grant without tying it to the request
// lifetime. Failures are logged, never surfaced: the membership link is
// already bound.
func (s *RedemptionService) grantAsync(discordID string, roleID snowflake.ID) {
	userID, err := snowflake.Parse(discordID)
	if err != nil {
		slog.Error("Invalid discord id for role grant",
			slog.String("type", "discord"),
			slog.String("discord_id", discordID),
			slog.Any("error", err))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), grantTimeout)
		defer cancel()

		if err := s.roles.GrantRole(ctx, userID, roleID); err != nil {
			slog.Error("Failed to grant role",
				slog.String("type", "discord"),
				slog.String("discord_id", discordID),
				slog.String("role_id", roleID.String()),
				slog.Any("error", err))
		}
	}()
}

// RevokeAccess deactivates a membership link and revokes its role. Used by
// admin tooling when a subscription is cancelled or refunded.
func (s *RedemptionService) RevokeAccess(ctx context.Context, membershipID string) error {
	if s.members == nil {
		return ErrCollaboratorUnavailable
	}

	link, err := s.members.GetByMembershipID(ctx, membershipID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCollaboratorUnavailable, err)
	}
	if link == nil {
		return ErrMembershipNotFound
	}

	if _, err := s.members.Deactivate(ctx, membershipID); err != nil {
		return fmt.Errorf("%w: %w", ErrCollaboratorUnavailable, err)
	}

	if s.roles != nil {
		userID, err := snowflake.Parse(link.DiscordID)
		if err != nil {
			return fmt.Errorf("invalid discord id %q: %w", link.DiscordID, err)
		}
		if err := s.roles.RevokeRole(ctx, userID, s.roles.ResolveRole(link.PlanID)); err != nil {
			// Link already deactivated; the revoke can be retried.
			slog.Error("Failed to revoke role",
				slog.String("type", "discord"),
				slog.String("membership_id", membershipID),
				slog.Any("error", err))
		}
	}

	return nil
}

// ResyncAccess re-grants the role for an active membership link, recovering
// from a failed fire-and-forget grant.
func (s *RedemptionService) ResyncAccess(ctx context.Context, membershipID string) (*RedemptionOutcome, error) {
	if s.members == nil {
		return nil, ErrCollaboratorUnavailable
	}

	link, err := s.members.GetByMembershipID(ctx, membershipID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCollaboratorUnavailable, err)
	}
	if link == nil || !link.IsActive {
		return nil, ErrMembershipNotFound
	}

	outcome := &RedemptionOutcome{
		MembershipID: link.MembershipID,
		PlanID:       link.PlanID,
		DiscordID:    link.DiscordID,
	}

	if s.roles == nil {
		return outcome, nil
	}

	userID, err := snowflake.Parse(link.DiscordID)
	if err != nil {
		return nil, fmt.Errorf("invalid discord id %q: %w", link.DiscordID, err)
	}

	outcome.RoleID = s.roles.ResolveRole(link.PlanID)
	if err := s.roles.GrantRole(ctx, userID, outcome.RoleID); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCollaboratorUnavailable, err)
	}

	return outcome, nil
}
