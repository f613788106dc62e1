package port

import (
	"context"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
)

// RemoteGateway issues a named operation against a structured
// remote-procedure endpoint and decodes the typed reply into the
// RemoteValue union. Failures are classified as *domain.FaultError for
// application-level faults and *domain.TransportError for network,
// timeout, and certificate failures. Calls are bounded by the configured
// timeout and never retried.
type RemoteGateway interface {
	Call(ctx context.Context, operation string, params []domain.Param) (domain.RemoteValue, error)
}

// TerminalGateway POSTs a rendered transaction envelope to the payment
// terminal endpoint. A well-formed XML reply becomes a map of top-level
// element name to text content; a malformed reply degrades to a map
// carrying the raw body under "raw_response" rather than an error.
type TerminalGateway interface {
	Send(ctx context.Context, req domain.TerminalRequest) (map[string]string, error)
}
