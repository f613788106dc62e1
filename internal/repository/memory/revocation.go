// Package memory holds in-process repository implementations. The gateway
// keeps no durable state; the revocation set below is the single piece of
// process-wide mutable state in the service.
package memory

import (
	"sync"

	"github.com/anipesuryateja/designa-gateway/internal/core/port"
)

// RevocationSet is a mutex-guarded set of revoked token strings. Entries
// accumulate for the life of the process: tokens are short-lived relative
// to the deployment's restart cycle, so no eviction sweep runs.
type RevocationSet struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

// NewRevocationSet constructs an empty revocation set.
func NewRevocationSet() *RevocationSet {
	return &RevocationSet{tokens: make(map[string]struct{})}
}

// Revoke inserts the token. Idempotent.
func (s *RevocationSet) Revoke(token string) {
	if token == "" {
		return
	}
	s.mu.Lock()
	s.tokens[token] = struct{}{}
	s.mu.Unlock()
}

// IsRevoked reports whether the token has been revoked.
func (s *RevocationSet) IsRevoked(token string) bool {
	s.mu.RLock()
	_, ok := s.tokens[token]
	s.mu.RUnlock()
	return ok
}

// Len returns the number of revoked tokens currently held.
func (s *RevocationSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}

var _ port.RevocationSet = (*RevocationSet)(nil)
