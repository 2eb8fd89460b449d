// Package discord wraps the disgo REST client for the small surface this
// service needs: granting and revoking guild roles by plan tier.
package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
)

// Plan identifiers as they arrive from the payment gateway.
const (
	PlanMensual    = "plan_mensual"
	PlanTrimestral = "plan_trimestral"
	PlanAnual      = "plan_anual"
)

// RoleMap maps plan ids to guild role ids. Unknown plans resolve to the
// default role so a paying member never ends up with no role at all.
type RoleMap struct {
	roles       map[string]snowflake.ID
	defaultRole snowflake.ID
}

// NewRoleMap builds the plan→role mapping. The anual id should already be
// backfilled with the mentoria id by config loading when unset.
func NewRoleMap(senales, mentoria, anual snowflake.ID) RoleMap {
	if anual == 0 {
		anual = mentoria
	}
	return RoleMap{
		roles: map[string]snowflake.ID{
			PlanMensual:    senales,
			PlanTrimestral: mentoria,
			PlanAnual:      anual,
		},
		defaultRole: mentoria,
	}
}

// Resolve returns the role for a plan, falling back to the default role for
// plans this build does not know about.
func (m RoleMap) Resolve(planID string) snowflake.ID {
	if roleID, ok := m.roles[planID]; ok && roleID != 0 {
		return roleID
	}
	return m.defaultRole
}

// RoleService grants and revokes guild roles through the Discord REST API.
// Both operations are idempotent on Discord's side: granting a held role or
// revoking an absent one succeeds with no effect.
type RoleService struct {
	client  bot.Client
	guildID snowflake.ID
	roles   RoleMap
}

func NewRoleService(client bot.Client, guildID snowflake.ID, roles RoleMap) *RoleService {
	return &RoleService{
		client:  client,
		guildID: guildID,
		roles:   roles,
	}
}

func (s *RoleService) ResolveRole(planID string) snowflake.ID {
	return s.roles.Resolve(planID)
}

func (s *RoleService) GrantRole(ctx context.Context, userID snowflake.ID, roleID snowflake.ID) error {
	if err := s.client.Rest().AddMemberRole(s.guildID, userID, roleID, rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("failed to grant role %s to %s: %w", roleID, userID, err)
	}

	slog.Info("Role granted",
		slog.String("type", "discord"),
		slog.String("user_id", userID.String()),
		slog.String("role_id", roleID.String()))
	return nil
}

func (s *RoleService) RevokeRole(ctx context.Context, userID snowflake.ID, roleID snowflake.ID) error {
	if err := s.client.Rest().RemoveMemberRole(s.guildID, userID, roleID, rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("failed to revoke role %s from %s: %w", roleID, userID, err)
	}

	slog.Info("Role revoked",
		slog.String("type", "discord"),
		slog.String("user_id", userID.String()),
		slog.String("role_id", roleID.String()))
	return nil
}
