package mailer

import (
	"strings"
	"testing"
)

func TestRenderClaimEmail(t *testing.T) {
	data := claimEmailData{
		UserName: "Ana",
		PlanID:   "plan_anual",
		ClaimURL: "https://club.example.com/discord/login?claim=abc123",
		TTLHours: 24,
	}

	html, err := renderClaimEmail(data)
	if err != nil {
		t.Fatalf("renderClaimEmail() error = %v", err)
	}

	for _, want := range []string{data.ClaimURL, "Ana", "Anual", "24 horas"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered email missing %q", want)
		}
	}
}

func TestRenderClaimEmail_EscapesUserName(t *testing.T) {
	data := claimEmailData{
		UserName: "<script>alert(1)</script>",
		PlanID:   "plan_mensual",
		ClaimURL: "https://club.example.com/discord/login?claim=abc",
		TTLHours: 24,
	}

	html, err := renderClaimEmail(data)
	if err != nil {
		t.Fatalf("renderClaimEmail() error = %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("rendered email contains unescaped user input")
	}
}

func TestPlanName(t *testing.T) {
	tests := []struct {
		planID string
		want   string
	}{
		{planID: "plan_mensual", want: "Mensual"},
		{planID: "plan_trimestral", want: "Trimestral"},
		{planID: "plan_anual", want: "Anual"},
		{planID: "custom", want: "Custom"},
		{planID: "", want: ""},
	}

	for _, tt := range tests {
		if got := planName(tt.planID); got != tt.want {
			t.Errorf("planName(%q) = %q, want %q", tt.planID, got, tt.want)
		}
	}
}
