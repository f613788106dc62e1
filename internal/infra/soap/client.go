// Package soap implements a minimal SOAP 1.1 client for the DESIGNA
// parking backend. The backend publishes document-style operations with
// ordered named parameters and loosely shaped replies, which are decoded
// into the domain.RemoteValue union rather than per-operation structs.
package soap

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
	"github.com/anipesuryateja/designa-gateway/internal/core/port"
)

const defaultNamespace = "http://designa.de/abacus"

// Options configures a Client.
type Options struct {
	// Endpoint is the service URL requests are POSTed to.
	Endpoint string
	// Namespace qualifies operation elements; defaults to the DESIGNA
	// abacus namespace.
	Namespace string
	// Timeout bounds every call end to end. Defaults to 30 seconds.
	Timeout time.Duration
	// InsecureSkipVerify disables TLS certificate verification. The
	// backend ships with self-signed certificates on most installations.
	InsecureSkipVerify bool
	Logger             *zap.Logger
}

// Client issues SOAP calls against a single endpoint. There is no retry:
// a failed call surfaces immediately to the caller.
type Client struct {
	endpoint  string
	namespace string
	http      *http.Client
	log       *zap.Logger
}

// NewClient constructs a Client for the supplied options.
func NewClient(opts Options) *Client {
	if opts.Namespace == "" {
		opts.Namespace = defaultNamespace
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	transport := http.DefaultTransport
	if opts.InsecureSkipVerify {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		endpoint:  opts.Endpoint,
		namespace: opts.Namespace,
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		log: opts.Logger,
	}
}

// Call invokes the named operation with the supplied ordered parameters
// and decodes the reply. Application faults surface as *domain.FaultError,
// everything else as *domain.TransportError.
func (c *Client) Call(ctx context.Context, operation string, params []domain.Param) (domain.RemoteValue, error) {
	body, err := buildEnvelope(c.namespace, operation, params)
	if err != nil {
		return domain.RemoteValue{}, fmt.Errorf("soap: build envelope for %s: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.RemoteValue{}, fmt.Errorf("soap: build request for %s: %w", operation, err)
	}
	req.Header.Set("Content-Type", `text/xml; charset="utf-8"`)
	req.Header.Set("SOAPAction", c.namespace+"/"+operation)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observeCall(operation, outcomeTransportError)
		return domain.RemoteValue{}, &domain.TransportError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		observeCall(operation, outcomeTransportError)
		return domain.RemoteValue{}, &domain.TransportError{Operation: operation, Err: err}
	}

	value, fault, err := decodeEnvelope(raw)
	if err != nil {
		// A non-2xx status with an unparseable body is a transport-level
		// failure; faults are carried inside well-formed envelopes.
		observeCall(operation, outcomeTransportError)
		return domain.RemoteValue{}, &domain.TransportError{
			Operation: operation,
			Err:       fmt.Errorf("decode reply (status %d): %w", resp.StatusCode, err),
		}
	}
	if fault != nil {
		observeCall(operation, outcomeFault)
		c.log.Warn("soap fault",
			zap.String("operation", operation),
			zap.String("fault_code", fault.Code),
			zap.String("fault_reason", fault.Reason))
		fault.Operation = operation
		return domain.RemoteValue{}, fault
	}
	if resp.StatusCode != http.StatusOK {
		observeCall(operation, outcomeTransportError)
		return domain.RemoteValue{}, &domain.TransportError{
			Operation: operation,
			Err:       fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	observeCall(operation, outcomeOK)
	c.log.Info("soap call completed",
		zap.String("operation", operation),
		zap.Duration("latency", time.Since(start)))

	return value, nil
}

// buildEnvelope renders the request envelope with one element per
// parameter, preserving parameter order. All values are XML-escaped.
func buildEnvelope(namespace, operation string, params []domain.Param) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">`)
	buf.WriteString(`<soap:Body>`)

	buf.WriteByte('<')
	buf.WriteString(operation)
	buf.WriteString(` xmlns="`)
	if err := xml.EscapeText(&buf, []byte(namespace)); err != nil {
		return nil, err
	}
	buf.WriteString(`">`)

	for _, p := range params {
		buf.WriteByte('<')
		buf.WriteString(p.Name)
		buf.WriteByte('>')
		if err := xml.EscapeText(&buf, []byte(p.Value)); err != nil {
			return nil, err
		}
		buf.WriteString("</")
		buf.WriteString(p.Name)
		buf.WriteByte('>')
	}

	buf.WriteString("</")
	buf.WriteString(operation)
	buf.WriteByte('>')
	buf.WriteString(`</soap:Body>`)
	buf.WriteString(`</soap:Envelope>`)
	return buf.Bytes(), nil
}

var _ port.RemoteGateway = (*Client)(nil)
