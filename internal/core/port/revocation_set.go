package port

// RevocationSet records tokens that must be rejected regardless of
// signature or expiry validity. Implementations must be safe under
// concurrent revocation and lookup; entries live for the process lifetime.
type RevocationSet interface {
	// Revoke inserts the token. Revoking twice is a no-op.
	Revoke(token string)
	// IsRevoked reports membership.
	IsRevoked(token string) bool
}
