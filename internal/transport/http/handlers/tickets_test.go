package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
	"github.com/anipesuryateja/designa-gateway/internal/infra/config"
	"github.com/anipesuryateja/designa-gateway/internal/usecase"
)

type scriptedGateway struct {
	replies map[string]domain.RemoteValue
	errs    map[string]error
	calls   []string
}

func (g *scriptedGateway) Call(_ context.Context, operation string, _ []domain.Param) (domain.RemoteValue, error) {
	g.calls = append(g.calls, operation)
	if err, ok := g.errs[operation]; ok {
		return domain.RemoteValue{}, err
	}
	return g.replies[operation], nil
}

func newTicketRig(gateway *scriptedGateway) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		Designa: config.DesignaSettings{
			User:     "svc",
			Password: "pw",
			TCCEntry: 15,
			TCCExit:  20,
		},
	}
	tickets := usecase.NewTicketService(cfg, gateway, nil)

	r := gin.New()
	handler := NewTicketHandler(tickets, cfg.Designa.TCCEntry)
	handler.RegisterRoutes(r.Group("/tickets"))
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSettleEndpointCommits(t *testing.T) {
	gateway := &scriptedGateway{replies: map[string]domain.RemoteValue{
		"getAmountDue":      domain.TextValue("15.00"),
		"setCardSettlement": domain.TextValue("OK"),
	}}
	r := newTicketRig(gateway)

	w := postJSON(r, "/tickets/PM01/settlements?tcc_num=15", `{"amount_paid": 10.0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"amount_due_before_payment":"15.00"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestSettleEndpointMapsOverpaymentTo400(t *testing.T) {
	gateway := &scriptedGateway{replies: map[string]domain.RemoteValue{
		"getAmountDue": domain.TextValue("10.00"),
	}}
	r := newTicketRig(gateway)

	w := postJSON(r, "/tickets/PM01/settlements?tcc_num=15", `{"amount_paid": 12.0}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	for _, op := range gateway.calls {
		if op == "setCardSettlement" {
			t.Error("overpayment must not reach the backend write")
		}
	}
}

func TestSettleEndpointMapsFaultTo502(t *testing.T) {
	gateway := &scriptedGateway{errs: map[string]error{
		"getAmountDue": &domain.FaultError{Operation: "getAmountDue", Code: "soap:Server", Reason: "down"},
	}}
	r := newTicketRig(gateway)

	w := postJSON(r, "/tickets/PM01/settlements?tcc_num=15", `{"amount_paid": 5.0}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}

func TestSettleEndpointRejectsMissingAmount(t *testing.T) {
	gateway := &scriptedGateway{}
	r := newTicketRig(gateway)

	w := postJSON(r, "/tickets/PM01/settlements?tcc_num=15", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if len(gateway.calls) != 0 {
		t.Error("a malformed request must not reach the backend")
	}
}

func TestLookupDefaultsToEntryTCC(t *testing.T) {
	gateway := &scriptedGateway{replies: map[string]domain.RemoteValue{
		"getAmountDue": domain.TextValue("4.50"),
	}}
	r := newTicketRig(gateway)

	req := httptest.NewRequest(http.MethodGet, "/tickets/PM01", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"amount_due":"4.50"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestLookupByPlateRequiresTCC(t *testing.T) {
	gateway := &scriptedGateway{replies: map[string]domain.RemoteValue{
		"getAmountDue": domain.TextValue("4.50"),
	}}
	r := newTicketRig(gateway)

	req := httptest.NewRequest(http.MethodGet, "/tickets/by-plate/ABC123", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 without tcc_num", w.Code)
	}
}
