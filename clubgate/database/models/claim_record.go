package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ClaimRecord is the persisted side of an issued claim token. The token
// itself is never stored; the jti ties the signed token to this row, and the
// row's used_at column is what makes a token single-use. Rows are never
// deleted, they are the audit trail.
type ClaimRecord struct {
	bun.BaseModel `bun:"table:claim_records,alias:cr"`

	JTI             string     `bun:"jti,pk"`
	MembershipID    string     `bun:"membership_id,notnull"`
	PlanID          string     `bun:"plan_id,notnull"`
	IssuedAt        time.Time  `bun:"issued_at,notnull"`
	ExpiresAt       time.Time  `bun:"expires_at,notnull"`
	UsedAt          *time.Time `bun:"used_at"`
	UsedByDiscordID string     `bun:"used_by_discord_id,nullzero"`
	UsedFromIP      string     `bun:"used_from_ip,nullzero"`
}

// Used reports whether the claim has been redeemed.
func (c *ClaimRecord) Used() bool {
	return c.UsedAt != nil
}
