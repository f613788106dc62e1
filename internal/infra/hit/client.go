// Package hit implements the Windcave HIT payment terminal integration:
// transaction envelopes rendered as <Scr> XML documents and POSTed to the
// terminal gateway endpoint.
package hit

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
	"github.com/anipesuryateja/designa-gateway/internal/core/port"
)

// RawResponseKey carries the unparsed reply body when the terminal returns
// something that is not well-formed XML. The caller interprets it.
const RawResponseKey = "raw_response"

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "gateway",
	Subsystem: "hit",
	Name:      "requests_total",
	Help:      "Total outbound HIT terminal requests partitioned by outcome.",
}, []string{"outcome"})

// Options configures a Client.
type Options struct {
	// Endpoint receives the POSTed envelopes.
	Endpoint string
	// Timeout bounds every request. Defaults to 30 seconds.
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client POSTs transaction envelopes to the terminal endpoint. No retry:
// a failed request surfaces immediately.
type Client struct {
	endpoint string
	http     *http.Client
	log      *zap.Logger
}

// NewClient constructs a Client for the supplied options.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		endpoint: opts.Endpoint,
		http:     &http.Client{Timeout: opts.Timeout},
		log:      opts.Logger,
	}
}

// Send renders the envelope and POSTs it. A well-formed XML reply becomes
// a map of top-level element name to text content. A malformed reply is
// not an error: it degrades to a map holding the raw body so the caller
// can still inspect it.
func (c *Client) Send(ctx context.Context, treq domain.TerminalRequest) (map[string]string, error) {
	body, err := renderEnvelope(treq)
	if err != nil {
		return nil, fmt.Errorf("hit: render envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("hit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/xml")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues("transport_error").Inc()
		return nil, &domain.TransportError{Operation: txnTypeOf(treq), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		requestsTotal.WithLabelValues("transport_error").Inc()
		return nil, &domain.TransportError{Operation: txnTypeOf(treq), Err: err}
	}

	c.log.Info("hit request completed",
		zap.String("txn_type", txnTypeOf(treq)),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	parsed, ok := parseReply(raw)
	if !ok {
		requestsTotal.WithLabelValues("unparsed").Inc()
		return map[string]string{RawResponseKey: string(raw)}, nil
	}

	requestsTotal.WithLabelValues("ok").Inc()
	return parsed, nil
}

// parseReply flattens the reply's top-level children into a map. Returns
// false when the body is not well-formed XML.
func parseReply(raw []byte) (map[string]string, bool) {
	dec := xml.NewDecoder(bytes.NewReader(raw))

	var root xml.StartElement
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		if start, ok := tok.(xml.StartElement); ok {
			root = start
			break
		}
	}

	result := make(map[string]string)
	depth := 0
	var current string
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				current = t.Name.Local
				text.Reset()
			}
		case xml.CharData:
			if depth == 1 {
				text.Write(t)
			}
		case xml.EndElement:
			if depth == 0 {
				// Closing the root element.
				if t.Name.Local != root.Name.Local {
					return nil, false
				}
				return result, true
			}
			if depth == 1 {
				result[current] = text.String()
			}
			depth--
		}
	}
	return result, true
}

func txnTypeOf(treq domain.TerminalRequest) string {
	for _, f := range treq.Fields {
		if f.Name == "TxnType" {
			return f.Value
		}
	}
	return "unknown"
}

var _ port.TerminalGateway = (*Client)(nil)
