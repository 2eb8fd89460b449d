package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestCodec_IssueVerifyRoundTrip(t *testing.T) {
	codec, err := NewCodec("test-secret-key", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}

	tokenStr, jti, err := codec.Issue("M1", "plan_anual", "Ana")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if jti == "" {
		t.Fatal("Issue() returned empty jti")
	}

	payload, err := codec.Verify(tokenStr)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if payload.JTI != jti {
		t.Errorf("Verify() jti = %q, want %q", payload.JTI, jti)
	}
	if payload.MembershipID != "M1" {
		t.Errorf("Verify() membership = %q, want M1", payload.MembershipID)
	}
	if payload.PlanID != "plan_anual" {
		t.Errorf("Verify() plan = %q, want plan_anual", payload.PlanID)
	}
	if payload.UserName != "Ana" {
		t.Errorf("Verify() user name = %q, want Ana", payload.UserName)
	}
	if !payload.ExpiresAt.After(time.Now()) {
		t.Error("Verify() token already expired")
	}
}

func TestCodec_UniqueJTIPerIssue(t *testing.T) {
	codec, _ := NewCodec("test-secret-key", time.Hour)

	_, jti1, err := codec.Issue("M1", "plan_mensual", "Ana")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	_, jti2, err := codec.Issue("M1", "plan_mensual", "Ana")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if jti1 == jti2 {
		t.Errorf("two issues produced the same jti %q", jti1)
	}
}

func TestCodec_VerifyExpired(t *testing.T) {
	codec, _ := NewCodec("test-secret-key", -time.Minute)

	tokenStr, _, err := codec.Issue("M1", "plan_mensual", "Ana")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := codec.Verify(tokenStr); !errors.Is(err, ErrInvalidClaim) {
		t.Errorf("Verify() error = %v, want ErrInvalidClaim", err)
	}
}

func TestCodec_VerifyRejects(t *testing.T) {
	codec, _ := NewCodec("test-secret-key", time.Hour)
	other, _ := NewCodec("another-secret", time.Hour)

	valid, _, err := codec.Issue("M1", "plan_anual", "Ana")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	foreign, _, err := other.Issue("M1", "plan_anual", "Ana")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// flip one byte in the payload segment
	parts := strings.Split(valid, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", valid)
	}
	body := []byte(parts[1])
	if body[0] == 'A' {
		body[0] = 'B'
	} else {
		body[0] = 'A'
	}
	tampered := parts[0] + "." + string(body) + "." + parts[2]

	tests := []struct {
		name  string
		token string
	}{
		{name: "signed with different key", token: foreign},
		{name: "tampered payload", token: tampered},
		{name: "malformed", token: "not-a-token"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := codec.Verify(tt.token); !errors.Is(err, ErrInvalidClaim) {
				t.Errorf("Verify() error = %v, want ErrInvalidClaim", err)
			}
		})
	}
}

func TestNewCodec_EmptySecret(t *testing.T) {
	if _, err := NewCodec("", time.Hour); err == nil {
		t.Error("NewCodec() with empty secret should fail")
	}
}
