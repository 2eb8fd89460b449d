package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	ClaimCookieName = "clubgate_claim"
	StateCookieName = "clubgate_oauth_state"

	// The whole OAuth round trip has to finish within this window.
	cookieMaxAge = 10 * time.Minute
)

// CookieService carries the pending claim token and the OAuth state across
// the Discord authorization round trip, as HMAC-signed cookies. The server
// keeps no session state of its own.
type CookieService struct {
	key    []byte
	secure bool
}

// NewCookieService creates a new cookie service
func NewCookieService(sessionKey string, secure bool) (*CookieService, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key not configured")
	}
	return &CookieService{
		key:    []byte(sessionKey),
		secure: secure,
	}, nil
}

// SetPendingClaim stores the claim token for the duration of the OAuth
// round trip.
func (s *CookieService) SetPendingClaim(c *fiber.Ctx, claimToken string) {
	s.setCookie(c, ClaimCookieName, s.signData([]byte(claimToken)), int(cookieMaxAge/time.Second))
}

// GetAndClearPendingClaim retrieves and clears the pending claim token.
func (s *CookieService) GetAndClearPendingClaim(c *fiber.Ctx) (string, error) {
	cookie := c.Cookies(ClaimCookieName)
	if cookie == "" {
		return "", fmt.Errorf("no pending claim cookie found")
	}
	s.setCookie(c, ClaimCookieName, "", -1)

	data, err := s.verifyAndDecodeData(cookie)
	if err != nil {
		return "", fmt.Errorf("invalid claim cookie signature: %w", err)
	}
	return string(data), nil
}

// SetState sets the OAuth state parameter in a secure cookie
func (s *CookieService) SetState(c *fiber.Ctx, state string) {
	s.setCookie(c, StateCookieName, s.signData([]byte(state)), int(cookieMaxAge/time.Second))
}

// GetAndClearState retrieves and clears the OAuth state parameter
func (s *CookieService) GetAndClearState(c *fiber.Ctx) (string, error) {
	cookie := c.Cookies(StateCookieName)
	if cookie == "" {
		return "", fmt.Errorf("no state cookie found")
	}
	s.setCookie(c, StateCookieName, "", -1)

	data, err := s.verifyAndDecodeData(cookie)
	if err != nil {
		return "", fmt.Errorf("invalid state signature: %w", err)
	}
	return string(data), nil
}

func (s *CookieService) setCookie(c *fiber.Ctx, name, value string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   s.secure,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// signData signs data using HMAC-SHA256
func (s *CookieService) signData(data []byte) string {
	h := hmac.New(sha256.New, s.key)
	h.Write(data)
	signature := h.Sum(nil)

	combined := append(data, signature...)
	return base64.URLEncoding.EncodeToString(combined)
}

// verifyAndDecodeData verifies the signature and returns the original data
func (s *CookieService) verifyAndDecodeData(encodedData string) ([]byte, error) {
	combined, err := base64.URLEncoding.DecodeString(encodedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}

	// Signature is the last 32 bytes.
	if len(combined) < sha256.Size {
		return nil, fmt.Errorf("invalid data length")
	}

	data := combined[:len(combined)-sha256.Size]
	receivedSignature := combined[len(combined)-sha256.Size:]

	h := hmac.New(sha256.New, s.key)
	h.Write(data)
	expectedSignature := h.Sum(nil)

	if !hmac.Equal(receivedSignature, expectedSignature) {
		return nil, fmt.Errorf("signature verification failed")
	}

	return data, nil
}
