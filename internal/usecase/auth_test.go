package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
	"github.com/anipesuryateja/designa-gateway/internal/infra/config"
	"github.com/anipesuryateja/designa-gateway/internal/infra/security"
	"github.com/anipesuryateja/designa-gateway/internal/repository/memory"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Designa: config.DesignaSettings{
			User:     "svc-user",
			Password: "svc-pass",
			TCCEntry: 15,
			TCCExit:  20,
		},
	}
}

func newTestAuthService(t *testing.T, gateway *gatewayStub) (*AuthService, *security.TokenManager, *memory.RevocationSet) {
	t.Helper()

	tokens, err := security.NewTokenManager("test-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("init token manager: %v", err)
	}

	revoked := memory.NewRevocationSet()
	return NewAuthService(testConfig(), gateway, tokens, revoked, nil), tokens, revoked
}

func TestLoginIssuesTokenOnZeroResult(t *testing.T) {
	gateway := newGatewayStub()
	gateway.replies["login"] = domain.TextValue("0")

	auth, _, _ := newTestAuthService(t, gateway)

	result, err := auth.Login(context.Background(), 15, "operator", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.ResultCode != 0 {
		t.Errorf("result code = %d, want 0", result.ResultCode)
	}
	if result.AccessToken == "" {
		t.Error("expected an access token on result code 0")
	}
	if result.Message != "Login successful" {
		t.Errorf("message = %q", result.Message)
	}

	calls := gateway.callsTo("login")
	if len(calls) != 1 {
		t.Fatalf("login calls = %d, want 1", len(calls))
	}
	wantOrder := []string{"TccNum", "UserId", "pwd"}
	for i, name := range wantOrder {
		if calls[0].params[i].Name != name {
			t.Errorf("param %d = %q, want %q", i, calls[0].params[i].Name, name)
		}
	}
	if v, _ := paramValue(calls[0].params, "UserId"); v != "operator" {
		t.Errorf("UserId = %q, want the supplied override", v)
	}
}

func TestLoginNonZeroResultReturnsNoToken(t *testing.T) {
	gateway := newGatewayStub()
	gateway.replies["login"] = domain.TextValue("5")

	auth, _, _ := newTestAuthService(t, gateway)

	result, err := auth.Login(context.Background(), 15, "", "")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.ResultCode != 5 {
		t.Errorf("result code = %d, want 5", result.ResultCode)
	}
	if result.AccessToken != "" {
		t.Error("no token must be issued on a non-zero result code")
	}
	if result.Message != "Login failed (code 5)" {
		t.Errorf("message = %q", result.Message)
	}
}

func TestLoginDefaultsToConfiguredCredentials(t *testing.T) {
	gateway := newGatewayStub()
	gateway.replies["login"] = domain.TextValue("0")

	auth, _, _ := newTestAuthService(t, gateway)

	if _, err := auth.Login(context.Background(), 15, "", ""); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	calls := gateway.callsTo("login")
	if v, _ := paramValue(calls[0].params, "UserId"); v != "svc-user" {
		t.Errorf("UserId = %q, want configured default", v)
	}
	if v, _ := paramValue(calls[0].params, "pwd"); v != "svc-pass" {
		t.Errorf("pwd = %q, want configured default", v)
	}
}

func TestLoginRejectsForeignTCC(t *testing.T) {
	gateway := newGatewayStub()
	auth, _, _ := newTestAuthService(t, gateway)

	_, err := auth.Login(context.Background(), 99, "", "")
	if !errors.Is(err, ErrTCCNotAuthorized) {
		t.Fatalf("err = %v, want ErrTCCNotAuthorized", err)
	}
	if len(gateway.calls) != 0 {
		t.Error("no backend call may be issued for an unauthorized TCC")
	}
}

func TestLogoffRevokesTokenEvenWhenBackendReportsFailure(t *testing.T) {
	gateway := newGatewayStub()
	gateway.replies["logoff"] = domain.TextValue("false")

	auth, tokens, revoked := newTestAuthService(t, gateway)

	token, err := tokens.Issue(20, "operator")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	success, err := auth.Logoff(context.Background(), 20, token)
	if err != nil {
		t.Fatalf("Logoff returned error: %v", err)
	}
	if success {
		t.Error("success = true, want false for a 'false' backend reply")
	}
	if !revoked.IsRevoked(token) {
		t.Error("token must be revoked even when the backend reports failure")
	}
}

func TestLogoffRejectsForeignTCC(t *testing.T) {
	gateway := newGatewayStub()
	auth, _, _ := newTestAuthService(t, gateway)

	_, err := auth.Logoff(context.Background(), 15, "some-token")
	if !errors.Is(err, ErrTCCNotAuthorized) {
		t.Fatalf("err = %v, want ErrTCCNotAuthorized", err)
	}
	if len(gateway.calls) != 0 {
		t.Error("no backend call may be issued for an unauthorized TCC")
	}
}

func TestAuthorizeChecksRevocationBeforeSignature(t *testing.T) {
	gateway := newGatewayStub()
	auth, tokens, _ := newTestAuthService(t, gateway)

	token, err := tokens.Issue(15, "operator")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := auth.Authorize(token); err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}

	auth.Revoke(token)

	if _, err := auth.Authorize(token); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("err = %v, want ErrTokenRevoked for a revoked but valid token", err)
	}

	// A revoked garbage token reports revocation, not a signature failure.
	auth.Revoke("not-even-a-jwt")
	if _, err := auth.Authorize("not-even-a-jwt"); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("err = %v, want ErrTokenRevoked ahead of signature verification", err)
	}
}

func TestAuthorizeRejectsInvalidToken(t *testing.T) {
	gateway := newGatewayStub()
	auth, _, _ := newTestAuthService(t, gateway)

	if _, err := auth.Authorize("garbage.token.value"); !errors.Is(err, security.ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestRevokeIsIdempotent(t *testing.T) {
	gateway := newGatewayStub()
	auth, tokens, _ := newTestAuthService(t, gateway)

	token, err := tokens.Issue(15, "operator")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	auth.Revoke(token)
	auth.Revoke(token)

	if _, err := auth.Authorize(token); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("err = %v, want ErrTokenRevoked after double revoke", err)
	}
}
