package security

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	manager, err := NewTokenManager("secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := manager.Issue(15, "operator")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.TCCNum != 15 {
		t.Errorf("TCCNum = %d, want 15", claims.TCCNum)
	}
	if claims.UserID != "operator" {
		t.Errorf("UserID = %q, want operator", claims.UserID)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	manager, err := NewTokenManager("secret", "HS256", time.Minute)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	manager.WithClock(func() time.Time { return issued })

	token, err := manager.Issue(15, "operator")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	manager.WithClock(func() time.Time { return issued.Add(2 * time.Minute) })

	if _, err := manager.Parse(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("err = %v, want ErrExpiredToken", err)
	}
}

func TestParseRejectsForeignSecret(t *testing.T) {
	issuer, _ := NewTokenManager("secret-a", "HS256", time.Hour)
	verifier, _ := NewTokenManager("secret-b", "HS256", time.Hour)

	token, err := issuer.Issue(15, "operator")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	manager, _ := NewTokenManager("secret", "HS256", time.Hour)

	if _, err := manager.Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestNewTokenManagerRejectsNonHMAC(t *testing.T) {
	if _, err := NewTokenManager("secret", "RS256", time.Hour); err == nil {
		t.Error("RS256 must be rejected; only HMAC methods carry a shared secret")
	}
	if _, err := NewTokenManager("secret", "bogus", time.Hour); err == nil {
		t.Error("unknown algorithm must be rejected")
	}
	if _, err := NewTokenManager("  ", "HS256", time.Hour); err == nil {
		t.Error("blank secret must be rejected")
	}
}
