package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
	"github.com/anipesuryateja/designa-gateway/internal/core/port"
	"github.com/anipesuryateja/designa-gateway/internal/infra/config"
	"github.com/anipesuryateja/designa-gateway/internal/infra/security"
)

var (
	// ErrTokenRevoked indicates the presented token was invalidated by a
	// prior logoff.
	ErrTokenRevoked = errors.New("token has been invalidated")
	// ErrTCCNotAuthorized indicates the request names a terminal the
	// gateway is not configured to serve.
	ErrTCCNotAuthorized = errors.New("tcc is not authorized")
)

// LoginResult carries the backend's result code and, on success, a signed
// access token.
type LoginResult struct {
	ResultCode  int
	Message     string
	AccessToken string
}

// AuthService opens and closes backend sessions and guards protected
// operations. The revocation check always runs before signature and
// expiry verification so that a revoked token stays rejected even while
// its signature would still validate.
type AuthService struct {
	cfg       *config.AppConfig
	cashpoint port.RemoteGateway
	tokens    *security.TokenManager
	revoked   port.RevocationSet
	log       *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(cfg *config.AppConfig, cashpoint port.RemoteGateway, tokens *security.TokenManager, revoked port.RevocationSet, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		cfg:       cfg,
		cashpoint: cashpoint,
		tokens:    tokens,
		revoked:   revoked,
		log:       log,
	}
}

// Login authenticates against the backend's login operation. Result code
// zero issues a token; a non-zero code returns a failure message and no
// token, without being an error.
func (s *AuthService) Login(ctx context.Context, tccNum int, userID, password string) (*LoginResult, error) {
	if tccNum != s.cfg.Designa.TCCEntry {
		return nil, fmt.Errorf("%w: TCC %d", ErrTCCNotAuthorized, tccNum)
	}

	user := userID
	if user == "" {
		user = s.cfg.Designa.User
	}
	pwd := password
	if pwd == "" {
		pwd = s.cfg.Designa.Password
	}
	if user == "" || pwd == "" {
		return nil, fmt.Errorf("missing backend credentials")
	}

	s.log.Info("calling login", zap.Int("tcc_num", tccNum), zap.String("user", user))

	value, err := s.cashpoint.Call(ctx, "login", []domain.Param{
		{Name: "TccNum", Value: strconv.Itoa(tccNum)},
		{Name: "UserId", Value: user},
		{Name: "pwd", Value: pwd},
	})
	if err != nil {
		return nil, fmt.Errorf("login for TCC %d: %w", tccNum, err)
	}

	code, err := strconv.Atoi(strings.TrimSpace(value.Text))
	if err != nil {
		return nil, fmt.Errorf("login for TCC %d: unexpected result %q", tccNum, value.String())
	}

	if code != 0 {
		return &LoginResult{
			ResultCode: code,
			Message:    fmt.Sprintf("Login failed (code %d)", code),
		}, nil
	}

	token, err := s.tokens.Issue(tccNum, userID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{
		ResultCode:  0,
		Message:     "Login successful",
		AccessToken: token,
	}, nil
}

// Logoff closes the backend session for the exit terminal and revokes the
// presented token. The token is revoked even when the backend reports the
// logoff as unsuccessful; the session credential must not outlive the
// client's intent to end it.
func (s *AuthService) Logoff(ctx context.Context, tccNum int, token string) (bool, error) {
	if tccNum != s.cfg.Designa.TCCExit {
		return false, fmt.Errorf("%w: TCC %d", ErrTCCNotAuthorized, tccNum)
	}

	value, err := s.cashpoint.Call(ctx, "logoff", []domain.Param{
		{Name: "TccNum", Value: strconv.Itoa(tccNum)},
	})
	if err != nil {
		return false, fmt.Errorf("logoff for TCC %d: %w", tccNum, err)
	}

	if token != "" {
		s.revoked.Revoke(token)
	}

	return strings.EqualFold(strings.TrimSpace(value.Text), "true"), nil
}

// Authorize validates a bearer token: revocation first, then signature
// and expiry. Returns the decoded identity claims on success.
func (s *AuthService) Authorize(token string) (*security.Claims, error) {
	if s.revoked.IsRevoked(token) {
		return nil, ErrTokenRevoked
	}
	return s.tokens.Parse(token)
}

// Revoke unconditionally invalidates the token. Idempotent.
func (s *AuthService) Revoke(token string) {
	s.revoked.Revoke(token)
}
