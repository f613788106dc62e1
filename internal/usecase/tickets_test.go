package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
)

func newTestTicketService(gateway *gatewayStub) *TicketService {
	svc := NewTicketService(testConfig(), gateway, nil)
	return svc.WithClock(func() time.Time {
		return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	})
}

func TestSettleCommitsWhenPaidWithinDue(t *testing.T) {
	gateway := newGatewayStub()
	gateway.replies["getAmountDue"] = domain.TextValue("15.00")
	gateway.replies["setCardSettlement"] = domain.TextValue("OK")

	svc := newTestTicketService(gateway)

	result, err := svc.Settle(context.Background(), 15, "PM0101001501", decimal.NewFromFloat(10))
	if err != nil {
		t.Fatalf("Settle returned error: %v", err)
	}

	if !result.AmountDueBefore.Equal(decimal.RequireFromString("15.00")) {
		t.Errorf("amount due before = %s, want 15.00", result.AmountDueBefore)
	}
	if result.Confirmation.Text != "OK" {
		t.Errorf("confirmation = %q, want OK", result.Confirmation.Text)
	}

	writes := gateway.callsTo("setCardSettlement")
	if len(writes) != 1 {
		t.Fatalf("settlement writes = %d, want 1", len(writes))
	}
	if v, _ := paramValue(writes[0].params, "AmountPaid"); v != "10" {
		t.Errorf("AmountPaid = %q, want 10", v)
	}
	if v, _ := paramValue(writes[0].params, "SettlementTime"); v != "2026-03-14T09:30:00Z" {
		t.Errorf("SettlementTime = %q, want the injected clock value", v)
	}
	if v, _ := paramValue(writes[0].params, "TccNum"); v != "15" {
		t.Errorf("TccNum = %q, want 15", v)
	}
}

func TestSettleRejectsZeroDueWithoutWrite(t *testing.T) {
	gateway := newGatewayStub()
	gateway.replies["getAmountDue"] = domain.TextValue("0")

	svc := newTestTicketService(gateway)

	_, err := svc.Settle(context.Background(), 15, "PM0101001501", decimal.NewFromFloat(5))
	if !errors.Is(err, ErrNoOutstandingDue) {
		t.Fatalf("err = %v, want ErrNoOutstandingDue", err)
	}
	if writes := gateway.callsTo("setCardSettlement"); len(writes) != 0 {
		t.Error("no settlement write may be issued when nothing is due")
	}
}

func TestSettleRejectsOverpaymentWithoutWrite(t *testing.T) {
	gateway := newGatewayStub()
	gateway.replies["getAmountDue"] = domain.TextValue("10.00")

	svc := newTestTicketService(gateway)

	_, err := svc.Settle(context.Background(), 15, "PM0101001501", decimal.NewFromFloat(12))
	if !errors.Is(err, ErrOverpayment) {
		t.Fatalf("err = %v, want ErrOverpayment", err)
	}
	if writes := gateway.callsTo("setCardSettlement"); len(writes) != 0 {
		t.Error("no settlement write may be issued on overpayment")
	}
}

func TestSettleAllowsExactPayment(t *testing.T) {
	gateway := newGatewayStub()
	gateway.replies["getAmountDue"] = domain.TextValue("10.00")
	gateway.replies["setCardSettlement"] = domain.TextValue("OK")

	svc := newTestTicketService(gateway)

	if _, err := svc.Settle(context.Background(), 15, "PM0101001501", decimal.NewFromFloat(10)); err != nil {
		t.Fatalf("exact payment rejected: %v", err)
	}
}

func TestSettleRejectsUnparseableDue(t *testing.T) {
	gateway := newGatewayStub()
	gateway.replies["getAmountDue"] = domain.TextValue("card not found")

	svc := newTestTicketService(gateway)

	_, err := svc.Settle(context.Background(), 15, "PM0101001501", decimal.NewFromFloat(5))
	if !errors.Is(err, ErrDueUnparseable) {
		t.Fatalf("err = %v, want ErrDueUnparseable", err)
	}
	if writes := gateway.callsTo("setCardSettlement"); len(writes) != 0 {
		t.Error("no settlement write may be issued for an unparseable due")
	}
}

func TestSettleSurfacesReadFailureWithoutWrite(t *testing.T) {
	gateway := newGatewayStub()
	gateway.errs["getAmountDue"] = &domain.TransportError{Operation: "getAmountDue", Err: errors.New("timeout")}

	svc := newTestTicketService(gateway)

	_, err := svc.Settle(context.Background(), 15, "PM0101001501", decimal.NewFromFloat(5))
	if err == nil {
		t.Fatal("expected the read failure to surface")
	}
	var transport *domain.TransportError
	if !errors.As(err, &transport) {
		t.Errorf("err = %v, want a wrapped TransportError", err)
	}
	if writes := gateway.callsTo("setCardSettlement"); len(writes) != 0 {
		t.Error("no settlement write may follow a failed due read")
	}
}

func TestAmountDueRejectsStructuredReply(t *testing.T) {
	gateway := newGatewayStub()
	gateway.replies["getAmountDue"] = domain.RemoteValue{
		Kind: domain.KindMap,
		Fields: []domain.RemoteField{
			{Name: "Error", Value: domain.TextValue("no such card")},
		},
	}

	svc := newTestTicketService(gateway)

	if _, err := svc.AmountDue(context.Background(), 15, "PM0101001501"); err == nil {
		t.Fatal("expected a structured reply to be rejected")
	}
}

func TestRebatePassesDiscountFields(t *testing.T) {
	gateway := newGatewayStub()
	gateway.replies["setRebate"] = domain.TextValue("applied")

	svc := newTestTicketService(gateway)

	result, err := svc.Rebate(context.Background(), "PM0101001501", 2, 50, 7)
	if err != nil {
		t.Fatalf("Rebate returned error: %v", err)
	}
	if result != "applied" {
		t.Errorf("result = %q, want applied", result)
	}

	calls := gateway.callsTo("setRebate")
	if len(calls) != 1 {
		t.Fatalf("setRebate calls = %d, want 1", len(calls))
	}
	if v, _ := paramValue(calls[0].params, "DiscountValue"); v != "50" {
		t.Errorf("DiscountValue = %q, want 50", v)
	}
}

func TestClearRejectsErrorMarkerReply(t *testing.T) {
	gateway := newGatewayStub()
	gateway.replies["setCleared"] = domain.TextValue("Error: still occupied")

	svc := newTestTicketService(gateway)

	_, err := svc.Clear(context.Background(), 15, "PM0101001501", "", "")
	if !errors.Is(err, ErrClearRejected) {
		t.Fatalf("err = %v, want ErrClearRejected", err)
	}
}

func TestClearRejectsEmptyReply(t *testing.T) {
	gateway := newGatewayStub()
	gateway.replies["setCleared"] = domain.RemoteValue{Kind: domain.KindEmpty}

	svc := newTestTicketService(gateway)

	_, err := svc.Clear(context.Background(), 15, "PM0101001501", "", "")
	if !errors.Is(err, ErrClearRejected) {
		t.Fatalf("err = %v, want ErrClearRejected", err)
	}
}

func TestClearDefaultsCredentials(t *testing.T) {
	gateway := newGatewayStub()
	gateway.replies["setCleared"] = domain.TextValue("cleared")

	svc := newTestTicketService(gateway)

	result, err := svc.Clear(context.Background(), 15, "PM0101001501", "", "")
	if err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if result != "cleared" {
		t.Errorf("result = %q, want cleared", result)
	}

	calls := gateway.callsTo("setCleared")
	if v, _ := paramValue(calls[0].params, "UserID"); v != "svc-user" {
		t.Errorf("UserID = %q, want configured default", v)
	}
}
