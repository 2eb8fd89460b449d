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

// ClaimRepository is the ledger of issued claim tokens. Tokens verify
// themselves; this ledger is what makes them single-use.
type ClaimRepository interface {
	RecordIssued(ctx context.Context, jti, membershipID, planID string, issuedAt, expiresAt time.Time) error
	IsUsed(ctx context.Context, jti string) (bool, error)
	// MarkUsed flips the record to used if and only if it is still unused.
	// Returns false when another redeemer got there first (or the jti was
	// never recorded). This conditional update is the only concurrency
	// safeguard for simultaneous redemptions, so it must stay a single
	// statement.
	MarkUsed(ctx context.Context, jti, discordID, ip string) (bool, error)
	GetByJTI(ctx context.Context, jti string) (*models.ClaimRecord, error)
}

type claimRepository struct {
	db *bun.DB
}

func NewClaimRepository(db *bun.DB) ClaimRepository {
	return &claimRepository{db: db}
}

func (r *claimRepository) RecordIssued(ctx context.Context, jti, membershipID, planID string, issuedAt, expiresAt time.Time) error {
	record := &models.ClaimRecord{
		JTI:          jti,
		MembershipID: membershipID,
		PlanID:       planID,
		IssuedAt:     issuedAt,
		ExpiresAt:    expiresAt,
	}

	_, err := r.db.NewInsert().
		Model(record).
		On("CONFLICT (jti) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to record issued claim: %w", err)
	}
	return nil
}

func (r *claimRepository) IsUsed(ctx context.Context, jti string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*models.ClaimRecord)(nil)).
		Where("jti = ?", jti).
		Where("used_at IS NOT NULL").
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check claim usage: %w", err)
	}
	return exists, nil
}

func (r *claimRepository) MarkUsed(ctx context.Context, jti, discordID, ip string) (bool, error) {
	result, err := r.db.NewUpdate().
		Model((*models.ClaimRecord)(nil)).
		Set("used_at = ?", time.Now()).
		Set("used_by_discord_id = ?", discordID).
		Set("used_from_ip = ?", ip).
		Where("jti = ?", jti).
		Where("used_at IS NULL").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to mark claim used: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

func (r *claimRepository) GetByJTI(ctx context.Context, jti string) (*models.ClaimRecord, error) {
	record := new(models.ClaimRecord)
	err := r.db.NewSelect().
		Model(record).
		Where("jti = ?", jti).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load claim record: %w", err)
	}
	return record, nil
}
