// Package token issues and verifies signed claim tokens. A claim token is a
// self-contained, single-use credential: possession of a valid token proves
// the bearer paid for a plan and may bind a Discord account to the membership
// exactly once. The signature makes the token self-verifying; the embedded
// jti anchors it to the claim ledger, which is what enforces single use.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidClaim covers malformed tokens, bad signatures and expired tokens.
var ErrInvalidClaim = errors.New("claim token is invalid or expired")

// Payload is the verified content of a claim token.
type Payload struct {
	JTI          string
	MembershipID string
	PlanID       string
	UserName     string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

type claimClaims struct {
	MembershipID string `json:"membership_id"`
	PlanID       string `json:"plan_id"`
	UserName     string `json:"user_name"`
	jwt.RegisteredClaims
}

// Codec signs and verifies claim tokens with a process-wide secret loaded
// once at startup.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("claim signing secret is empty")
	}
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// Issue produces a signed claim token and its jti. Each call generates a
// fresh jti, so two payments for the same membership yield distinct tokens.
func (c *Codec) Issue(membershipID, planID, userName string) (string, string, error) {
	if membershipID == "" || planID == "" {
		return "", "", fmt.Errorf("membership id and plan id are required")
	}

	jti := uuid.NewString()
	now := time.Now()

	claims := claimClaims{
		MembershipID: membershipID,
		PlanID:       planID,
		UserName:     userName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign claim token: %w", err)
	}

	return signed, jti, nil
}

// Verify checks signature and expiry and returns the embedded payload. Any
// failure mode collapses into ErrInvalidClaim; callers have no use for the
// distinction and the redeeming user sees a single message either way.
func (c *Codec) Verify(tokenStr string) (*Payload, error) {
	var claims claimClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidClaim, err)
	}

	if claims.ID == "" || claims.MembershipID == "" {
		return nil, fmt.Errorf("%w: missing required claims", ErrInvalidClaim)
	}

	payload := &Payload{
		JTI:          claims.ID,
		MembershipID: claims.MembershipID,
		PlanID:       claims.PlanID,
		UserName:     claims.UserName,
	}
	if claims.IssuedAt != nil {
		payload.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		payload.ExpiresAt = claims.ExpiresAt.Time
	}

	return payload, nil
}

// TTL returns the validity window tokens are issued with.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}
