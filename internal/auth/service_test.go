package auth

import (
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(Config{
		Secret:         "super-secret-key",
		AccessTokenTTL: time.Minute,
		Issuer:         "backend-bazaar",
		Audience:       "bazaar-frontend",
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestServiceParseAccessTokenSuccess(t *testing.T) {
	svc := newTestService(t)
	fixed := time.Now()
	svc.WithNow(func() time.Time { return fixed })

	token, _, err := svc.SignAccessToken("user-id")
	if err != nil {
		t.Fatalf("sign access token: %v", err)
	}
	subject, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if subject != "user-id" {
		t.Fatalf("unexpected subject: %s", subject)
	}
}

func TestServiceParseAccessTokenRejectsExpired(t *testing.T) {
	svc := newTestService(t)
	fixed := time.Now()
	svc.WithNow(func() time.Time { return fixed })

	token, _, err := svc.SignAccessToken("user-id")
	if err != nil {
		t.Fatalf("sign access token: %v", err)
	}

	svc.WithNow(func() time.Time { return fixed.Add(2 * time.Minute) })
	if _, err := svc.ParseAccessToken(token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestServiceParseAccessTokenRejectsAlgorithmMismatch(t *testing.T) {
	svc := newTestService(t)
	fixed := time.Now()
	svc.WithNow(func() time.Time { return fixed })

	built, err := jwt.NewBuilder().
		Subject("user-id").
		Issuer(svc.issuer).
		Audience([]string{svc.audience}).
		IssuedAt(fixed).
		NotBefore(fixed.Add(-svc.clockSkew)).
		Expiration(fixed.Add(svc.accessTTL)).
		Build()
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	signed, err := jwt.Sign(built, jwt.WithKey(jwa.HS384, svc.secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := svc.ParseAccessToken(string(signed)); err == nil {
		t.Fatal("expected algorithm mismatch error")
	}
}

func TestServiceParseAccessTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestService(t)
	other, err := NewService(Config{
		Secret:         "a-different-secret",
		AccessTokenTTL: time.Minute,
		Issuer:         "backend-bazaar",
		Audience:       "bazaar-frontend",
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	token, _, err := other.SignAccessToken("user-id")
	if err != nil {
		t.Fatalf("sign access token: %v", err)
	}
	if _, err := svc.ParseAccessToken(token); err == nil {
		t.Fatal("expected signature verification failure")
	}
}
