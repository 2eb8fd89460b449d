package discord

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"
)

func TestRoleMap_Resolve(t *testing.T) {
	senales := snowflake.ID(100)
	mentoria := snowflake.ID(200)
	anual := snowflake.ID(300)

	tests := []struct {
		name   string
		roles  RoleMap
		planID string
		want   snowflake.ID
	}{
		{
			name:   "mensual resolves to senales",
			roles:  NewRoleMap(senales, mentoria, anual),
			planID: PlanMensual,
			want:   senales,
		},
		{
			name:   "trimestral resolves to mentoria",
			roles:  NewRoleMap(senales, mentoria, anual),
			planID: PlanTrimestral,
			want:   mentoria,
		},
		{
			name:   "anual resolves to anual",
			roles:  NewRoleMap(senales, mentoria, anual),
			planID: PlanAnual,
			want:   anual,
		},
		{
			name:   "anual falls back to mentoria when unset",
			roles:  NewRoleMap(senales, mentoria, 0),
			planID: PlanAnual,
			want:   mentoria,
		},
		{
			name:   "unknown plan resolves to default",
			roles:  NewRoleMap(senales, mentoria, anual),
			planID: "plan_unknown",
			want:   mentoria,
		},
		{
			name:   "empty plan resolves to default",
			roles:  NewRoleMap(senales, mentoria, anual),
			planID: "",
			want:   mentoria,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.roles.Resolve(tt.planID); got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.planID, got, tt.want)
			}
		})
	}
}
