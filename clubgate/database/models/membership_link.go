package models

import (
	"time"

	"github.com/uptrace/bun"
)

// MembershipLink binds a paid membership to a Discord identity. At most one
// active Discord account per membership; a re-redemption with a different
// account overwrites the identity fields (last writer wins).
type MembershipLink struct {
	bun.BaseModel `bun:"table:membership_links,alias:ml"`

	MembershipID    string    `bun:"membership_id,pk"`
	DiscordID       string    `bun:"discord_id,notnull"`
	DiscordUsername string    `bun:"discord_username,nullzero"`
	DiscordEmail    string    `bun:"discord_email,nullzero"`
	PlanID          string    `bun:"plan_id,nullzero"`
	IsActive        bool      `bun:"is_active,notnull,default:true"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt       time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
