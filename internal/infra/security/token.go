package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates the token is malformed or its signature does
// not verify against the shared secret.
var ErrInvalidToken = errors.New("token: invalid token")

// ErrExpiredToken indicates the token's embedded expiry has passed.
var ErrExpiredToken = errors.New("token: token expired")

// Claims carries the identity embedded in an access token: the terminal
// (TCC) the session was opened for and the backend user it authenticated as.
type Claims struct {
	TCCNum int    `json:"tcc_num"`
	UserID string `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies access tokens with an HMAC shared secret.
type TokenManager struct {
	secret   []byte
	method   jwt.SigningMethod
	tokenTTL time.Duration
	now      func() time.Time
}

// NewTokenManager constructs a TokenManager. algorithm must name an HMAC
// signing method (HS256, HS384, or HS512).
func NewTokenManager(secret, algorithm string, tokenTTL time.Duration) (*TokenManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("token: signing secret is required")
	}

	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("token: unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token: algorithm %q is not an HMAC method", algorithm)
	}

	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}

	return &TokenManager{
		secret:   []byte(secret),
		method:   method,
		tokenTTL: tokenTTL,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// WithClock overrides the internal clock for deterministic testing.
func (m *TokenManager) WithClock(clock func() time.Time) *TokenManager {
	if clock != nil {
		m.now = clock
	}
	return m
}

// Issue signs a token for the supplied identity with the configured TTL.
func (m *TokenManager) Issue(tccNum int, userID string) (string, error) {
	now := m.now()
	claims := Claims{
		TCCNum: tccNum,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(m.method, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Parse verifies signature and expiry and returns the decoded claims.
func (m *TokenManager) Parse(token string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != m.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
