package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anipesuryateja/designa-gateway/internal/infra/config"
	"github.com/anipesuryateja/designa-gateway/internal/infra/security"
	"github.com/anipesuryateja/designa-gateway/internal/repository/memory"
	"github.com/anipesuryateja/designa-gateway/internal/usecase"
)

func newGateRig(t *testing.T) (*gin.Engine, *security.TokenManager, *usecase.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := security.NewTokenManager("test-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("init token manager: %v", err)
	}

	cfg := &config.AppConfig{
		Designa: config.DesignaSettings{TCCEntry: 15, TCCExit: 20},
	}
	auth := usecase.NewAuthService(cfg, nil, tokens, memory.NewRevocationSet(), nil)

	r := gin.New()
	r.Use(EnrichContext())
	r.GET("/protected", RequireAuth(auth), func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "claims missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tcc_num": claims.TCCNum})
	})

	return r, tokens, auth
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	r, _, _ := newGateRig(t)

	if w := doGet(r, ""); w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRequireAuthRejectsNonBearerScheme(t *testing.T) {
	r, _, _ := newGateRig(t)

	if w := doGet(r, "Basic dXNlcjpwYXNz"); w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRequireAuthRejectsInvalidToken(t *testing.T) {
	r, _, _ := newGateRig(t)

	w := doGet(r, "Bearer garbage.token.value")
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid or expired token") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	r, tokens, _ := newGateRig(t)

	token, err := tokens.Issue(15, "operator")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	w := doGet(r, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"tcc_num":15`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRequireAuthRejectsRevokedTokenBeforeSignatureCheck(t *testing.T) {
	r, tokens, auth := newGateRig(t)

	token, err := tokens.Issue(15, "operator")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if w := doGet(r, "Bearer "+token); w.Code != http.StatusOK {
		t.Fatalf("fresh token rejected with %d", w.Code)
	}

	auth.Revoke(token)

	w := doGet(r, "Bearer "+token)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 for a revoked token", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Token has been invalidated") {
		t.Errorf("body = %s", w.Body.String())
	}
}
