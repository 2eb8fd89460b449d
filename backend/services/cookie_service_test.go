package services

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestNewCookieServiceRequiresKey(t *testing.T) {
	if _, err := NewCookieService("", false); err == nil {
		t.Fatal("expected an error for an empty session key")
	}
}

func TestCookieRoundTrip(t *testing.T) {
	svc, err := NewCookieService("cookie-test-key", false)
	if err != nil {
		t.Fatalf("NewCookieService() error = %v", err)
	}

	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		svc.SetPendingClaim(c, "the-claim-token")
		svc.SetState(c, "the-state")
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/get", func(c *fiber.Ctx) error {
		claim, err := svc.GetAndClearPendingClaim(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		state, err := svc.GetAndClearState(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		return c.SendString(claim + "|" + state)
	})

	setResp, err := app.Test(httptest.NewRequest("GET", "/set", nil))
	if err != nil {
		t.Fatalf("set request failed: %v", err)
	}
	cookies := setResp.Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	for _, cookie := range cookies {
		if !cookie.HttpOnly {
			t.Errorf("cookie %s is not HttpOnly", cookie.Name)
		}
	}

	getReq := httptest.NewRequest("GET", "/get", nil)
	for _, cookie := range cookies {
		getReq.AddCookie(cookie)
	}
	getResp, err := app.Test(getReq)
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	if getResp.StatusCode != fiber.StatusOK {
		t.Fatalf("get status = %d", getResp.StatusCode)
	}

	body := make([]byte, 256)
	n, _ := getResp.Body.Read(body)
	if got := string(body[:n]); got != "the-claim-token|the-state" {
		t.Errorf("round trip = %q", got)
	}
}

func TestCookieTamperingIsRejected(t *testing.T) {
	svc, err := NewCookieService("cookie-test-key", false)
	if err != nil {
		t.Fatalf("NewCookieService() error = %v", err)
	}

	signed := svc.signData([]byte("the-claim-token"))
	tampered := strings.Replace(signed, signed[:1], flip(signed[:1]), 1)

	if _, err := svc.verifyAndDecodeData(tampered); err == nil {
		t.Fatal("expected tampered cookie to be rejected")
	}
}

func TestWrongKeyIsRejected(t *testing.T) {
	signer, _ := NewCookieService("key-one", false)
	verifier, _ := NewCookieService("key-two", false)

	signed := signer.signData([]byte("the-claim-token"))
	if _, err := verifier.verifyAndDecodeData(signed); err == nil {
		t.Fatal("expected cookie signed with another key to be rejected")
	}
}

func flip(s string) string {
	if s[0] == 'A' {
		return "B"
	}
	return "A"
}
