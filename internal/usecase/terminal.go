package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
	"github.com/anipesuryateja/designa-gateway/internal/core/port"
)

var (
	// ErrInvalidButtonName indicates a UI button outside the two the
	// terminal exposes.
	ErrInvalidButtonName = errors.New("invalid button name: must be B1 or B2")
	// ErrInvalidButtonValue indicates a button response outside the
	// terminal's fixed vocabulary.
	ErrInvalidButtonValue = errors.New("invalid button val: must be YES, NO, CANCEL")
)

// TerminalService renders and dispatches payment terminal transactions.
// Each operation builds its fixed field list, sends one envelope, and
// merges selected request fields back into the parsed reply so callers
// always see the transaction context alongside the terminal's answer.
type TerminalService struct {
	gateway port.TerminalGateway
	log     *zap.Logger
}

// NewTerminalService constructs a TerminalService.
func NewTerminalService(gateway port.TerminalGateway, log *zap.Logger) *TerminalService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TerminalService{gateway: gateway, log: log}
}

// Purchase starts a purchase transaction.
func (s *TerminalService) Purchase(ctx context.Context, p domain.TerminalPurchase) (map[string]string, error) {
	resp, err := s.send(ctx, p.Credentials, []domain.Param{
		{Name: "Amount", Value: p.Amount},
		{Name: "Cur", Value: p.Currency},
		{Name: "TxnType", Value: "Purchase"},
		{Name: "Station", Value: p.Station},
		{Name: "TxnRef", Value: p.TxnRef},
		{Name: "DeviceId", Value: p.DeviceID},
		{Name: "PosName", Value: p.PosName},
		{Name: "PosVersion", Value: p.PosVersion},
		{Name: "VendorId", Value: p.VendorID},
		{Name: "MRef", Value: p.MRef},
	})
	if err != nil {
		return nil, err
	}
	resp["TxnType"] = "Purchase"
	return resp, nil
}

// Refund refunds a prior purchase matched by its DpsTxnRef.
func (s *TerminalService) Refund(ctx context.Context, r domain.TerminalRefund) (map[string]string, error) {
	resp, err := s.send(ctx, r.Credentials, []domain.Param{
		{Name: "Amount", Value: r.Amount},
		{Name: "Cur", Value: r.Currency},
		{Name: "TxnType", Value: "Refund"},
		{Name: "Station", Value: r.Station},
		{Name: "TxnRef", Value: r.TxnRef},
		{Name: "DpsTxnRef", Value: r.DpsTxnRef},
		{Name: "DeviceId", Value: r.DeviceID},
		{Name: "PosName", Value: r.PosName},
		{Name: "VendorId", Value: r.VendorID},
		{Name: "MRef", Value: r.MRef},
	})
	if err != nil {
		return nil, err
	}
	resp["TxnType"] = "Refund"
	resp["DpsTxnRef"] = r.DpsTxnRef
	resp["DeviceId"] = r.DeviceID
	resp["Station"] = r.Station
	return resp, nil
}

// UnmatchedRefund refunds without a matching purchase reference.
func (s *TerminalService) UnmatchedRefund(ctx context.Context, r domain.TerminalUnmatchedRefund) (map[string]string, error) {
	resp, err := s.send(ctx, r.Credentials, []domain.Param{
		{Name: "Amount", Value: r.Amount},
		{Name: "Cur", Value: r.Currency},
		{Name: "TxnType", Value: "Refund"},
		{Name: "Station", Value: r.Station},
		{Name: "TxnRef", Value: r.TxnRef},
		{Name: "DeviceId", Value: r.DeviceID},
		{Name: "PosName", Value: r.PosName},
		{Name: "VendorId", Value: r.VendorID},
		{Name: "MRef", Value: r.MRef},
	})
	if err != nil {
		return nil, err
	}
	resp["TxnType"] = "Refund"
	resp["DeviceId"] = r.DeviceID
	resp["Station"] = r.Station
	resp["MRef"] = r.MRef
	return resp, nil
}

// Reversal voids a transaction by reference.
func (s *TerminalService) Reversal(ctx context.Context, r domain.TerminalReversal) (map[string]string, error) {
	resp, err := s.send(ctx, r.Credentials, []domain.Param{
		{Name: "TxnType", Value: "Reversal"},
		{Name: "Station", Value: r.Station},
		{Name: "TxnRef", Value: r.TxnRef},
	})
	if err != nil {
		return nil, err
	}
	resp["TxnType"] = "Reversal"
	resp["TxnRef"] = r.TxnRef
	resp["Station"] = r.Station
	return resp, nil
}

// Status queries the outcome of a transaction by reference.
func (s *TerminalService) Status(ctx context.Context, r domain.TerminalStatus) (map[string]string, error) {
	resp, err := s.send(ctx, r.Credentials, []domain.Param{
		{Name: "TxnType", Value: "Status"},
		{Name: "Station", Value: r.Station},
		{Name: "TxnRef", Value: r.TxnRef},
	})
	if err != nil {
		return nil, err
	}
	resp["TxnType"] = "Status"
	resp["TxnRef"] = r.TxnRef
	resp["Station"] = r.Station
	return resp, nil
}

// Receipt retrieves a receipt; with Action set to "Print" the terminal
// prints it instead of returning the text.
func (s *TerminalService) Receipt(ctx context.Context, r domain.TerminalReceipt) (map[string]string, error) {
	fields := []domain.Param{
		{Name: "Station", Value: r.Station},
		{Name: "TxnType", Value: "Receipt"},
		{Name: "TxnRef", Value: r.TxnRef},
		{Name: "ReceiptType", Value: strconv.Itoa(r.ReceiptType)},
		{Name: "DuplicateFlag", Value: strconv.Itoa(r.DuplicateFlag)},
		{Name: "Printer", Value: r.Printer},
		{Name: "Action", Value: r.Action},
	}
	resp, err := s.send(ctx, r.Credentials, fields)
	if err != nil {
		return nil, err
	}
	resp["TxnType"] = "Receipt"
	return resp, nil
}

// EnterData prompts for operator input on the pinpad.
func (s *TerminalService) EnterData(ctx context.Context, r domain.TerminalEnterData) (map[string]string, error) {
	resp, err := s.send(ctx, r.Credentials, []domain.Param{
		{Name: "Station", Value: r.Station},
		{Name: "TxnType", Value: "EnterData"},
		{Name: "CmdSeq", Value: strconv.Itoa(r.CmdSeq)},
		{Name: "PromptId", Value: strconv.Itoa(r.PromptID)},
		{Name: "Timeout", Value: strconv.Itoa(r.Timeout)},
	})
	if err != nil {
		return nil, err
	}
	resp["TxnType"] = "EnterData"
	return resp, nil
}

// PinpadDisplay pushes a display prompt to the pinpad.
func (s *TerminalService) PinpadDisplay(ctx context.Context, r domain.TerminalPinpadDisplay) (map[string]string, error) {
	return s.generic(ctx, r.Credentials, "PinpadDisplay", []domain.Param{
		{Name: "Station", Value: r.Station},
		{Name: "CmdSeq", Value: strconv.Itoa(r.CmdSeq)},
		{Name: "PromptId", Value: strconv.Itoa(r.PromptID)},
		{Name: "Param1", Value: r.Param1},
		{Name: "Param2", Value: r.Param2},
		{Name: "Timeout", Value: strconv.Itoa(r.Timeout)},
	})
}

// ReadCard requests a card read.
func (s *TerminalService) ReadCard(ctx context.Context, r domain.TerminalReadCard) (map[string]string, error) {
	return s.generic(ctx, r.Credentials, "ReadCard", []domain.Param{
		{Name: "Station", Value: r.Station},
		{Name: "TxnRef", Value: r.TxnRef},
	})
}

// SettlementSummary requests the terminal's settlement totals.
func (s *TerminalService) SettlementSummary(ctx context.Context, r domain.TerminalSettlementSummary) (map[string]string, error) {
	return s.generic(ctx, r.Credentials, "SettlementSummary", []domain.Param{
		{Name: "Station", Value: r.Station},
	})
}

// Ping checks terminal connectivity.
func (s *TerminalService) Ping(ctx context.Context, r domain.TerminalPing) (map[string]string, error) {
	return s.generic(ctx, r.Credentials, "Ping", nil)
}

// ButtonPress answers an on-screen prompt. Name and Val are validated
// against the terminal's fixed vocabulary before any request is sent.
func (s *TerminalService) ButtonPress(ctx context.Context, r domain.TerminalButtonPress) (map[string]string, error) {
	if r.Name != "B1" && r.Name != "B2" {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidButtonName, r.Name)
	}
	if r.Val != "YES" && r.Val != "NO" && r.Val != "CANCEL" {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidButtonValue, r.Val)
	}

	resp, err := s.send(ctx, r.Credentials, []domain.Param{
		{Name: "Station", Value: r.Station},
		{Name: "TxnType", Value: "UI"},
		{Name: "UiType", Value: "Bn"},
		{Name: "Name", Value: r.Name},
		{Name: "Val", Value: r.Val},
		{Name: "TxnRef", Value: r.TxnRef},
	})
	if err != nil {
		return nil, err
	}
	resp["TxnType"] = "UI"
	resp["UiType"] = "Bn"
	resp["ButtonName"] = r.Name
	resp["ButtonValue"] = r.Val
	resp["Station"] = r.Station
	resp["TxnRef"] = r.TxnRef
	return resp, nil
}

// generic sends operations whose envelope is just the supplied fields
// with the transaction type appended last.
func (s *TerminalService) generic(ctx context.Context, creds domain.TerminalCredentials, txnType string, fields []domain.Param) (map[string]string, error) {
	fields = append(fields, domain.Param{Name: "TxnType", Value: txnType})
	resp, err := s.send(ctx, creds, fields)
	if err != nil {
		return nil, err
	}
	resp["TxnType"] = txnType
	return resp, nil
}

func (s *TerminalService) send(ctx context.Context, creds domain.TerminalCredentials, fields []domain.Param) (map[string]string, error) {
	return s.gateway.Send(ctx, domain.TerminalRequest{
		Credentials: creds,
		Fields:      fields,
	})
}
