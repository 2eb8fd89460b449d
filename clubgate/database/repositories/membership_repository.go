package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/vantage-club/clubgate/clubgate/database/models"
)

// MembershipRepository maps memberships to Discord identities.
type MembershipRepository interface {
	// Upsert binds a Discord identity to a membership, overwriting any
	// previous identity (last writer wins) and reactivating the link.
	// Missing keys make it a silent no-op, both are required.
	Upsert(ctx context.Context, membershipID, discordID, discordUsername, discordEmail, planID string) error
	Deactivate(ctx context.Context, membershipID string) (bool, error)
	GetByMembershipID(ctx context.Context, membershipID string) (*models.MembershipLink, error)
}

type membershipRepository struct {
	db *bun.DB
}

func NewMembershipRepository(db *bun.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Upsert(ctx context.Context, membershipID, discordID, discordUsername, discordEmail, planID string) error {
	if membershipID == "" || discordID == "" {
		return nil
	}

	now := time.Now()
	link := &models.MembershipLink{
		MembershipID:    membershipID,
		DiscordID:       discordID,
		DiscordUsername: discordUsername,
		DiscordEmail:    discordEmail,
		PlanID:          planID,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := r.db.NewInsert().
		Model(link).
		On("CONFLICT (membership_id) DO UPDATE").
		Set("discord_id = EXCLUDED.discord_id").
		Set("discord_username = EXCLUDED.discord_username").
		Set("discord_email = EXCLUDED.discord_email").
		Set("plan_id = EXCLUDED.plan_id").
		Set("is_active = true").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert membership link: %w", err)
	}
	return nil
}

func (r *membershipRepository) Deactivate(ctx context.Context, membershipID string) (bool, error) {
	result, err := r.db.NewUpdate().
		Model((*models.MembershipLink)(nil)).
		Set("is_active = false").
		Set("updated_at = ?", time.Now()).
		Where("membership_id = ?", membershipID).
		Where("is_active = true").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to deactivate membership link: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rowsAffected == 1, nil
}

func (r *membershipRepository) GetByMembershipID(ctx context.Context, membershipID string) (*models.MembershipLink, error) {
	link := new(models.MembershipLink)
	err := r.db.NewSelect().
		Model(link).
		Where("membership_id = ?", membershipID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load membership link: %w", err)
	}
	return link, nil
}
