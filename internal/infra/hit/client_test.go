package hit

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
)

func purchaseRequest() domain.TerminalRequest {
	return domain.TerminalRequest{
		Credentials: domain.TerminalCredentials{User: "u1", Key: "k1"},
		Fields: []domain.Param{
			{Name: "Amount", Value: "10.00"},
			{Name: "TxnType", Value: "Purchase"},
		},
	}
}

func TestSendParsesWellFormedReply(t *testing.T) {
	var gotContentType string
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`<Scr><ReCo>00</ReCo><ResponseText>APPROVED</ResponseText></Scr>`))
	}))
	defer srv.Close()

	client := NewClient(Options{Endpoint: srv.URL})

	resp, err := client.Send(context.Background(), purchaseRequest())
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotContentType != "application/xml" {
		t.Errorf("content type = %q", gotContentType)
	}
	if !strings.Contains(gotBody, `<Scr action="doScrHIT" user="u1" key="k1">`) {
		t.Errorf("envelope = %s", gotBody)
	}
	if resp["ReCo"] != "00" || resp["ResponseText"] != "APPROVED" {
		t.Errorf("resp = %v", resp)
	}
}

func TestSendDegradesToRawTextOnMalformedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("TERMINAL BUSY -- TRY AGAIN"))
	}))
	defer srv.Close()

	client := NewClient(Options{Endpoint: srv.URL})

	resp, err := client.Send(context.Background(), purchaseRequest())
	if err != nil {
		t.Fatalf("a malformed reply must not be an error, got %v", err)
	}
	if resp[RawResponseKey] != "TERMINAL BUSY -- TRY AGAIN" {
		t.Errorf("resp = %v, want raw text fallback", resp)
	}
}

func TestSendDegradesToRawTextOnTruncatedXML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<Scr><ReCo>00</ReCo>`))
	}))
	defer srv.Close()

	client := NewClient(Options{Endpoint: srv.URL})

	resp, err := client.Send(context.Background(), purchaseRequest())
	if err != nil {
		t.Fatalf("a truncated reply must not be an error, got %v", err)
	}
	if _, ok := resp[RawResponseKey]; !ok {
		t.Errorf("resp = %v, want raw text fallback", resp)
	}
}

func TestSendSurfacesTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(Options{Endpoint: srv.URL})

	_, err := client.Send(context.Background(), purchaseRequest())
	var transport *domain.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("err = %v, want TransportError", err)
	}
	if transport.Operation != "Purchase" {
		t.Errorf("operation = %q, want the transaction type", transport.Operation)
	}
}
