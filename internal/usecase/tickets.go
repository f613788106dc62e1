package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
	"github.com/anipesuryateja/designa-gateway/internal/core/port"
	"github.com/anipesuryateja/designa-gateway/internal/infra/config"
	"github.com/anipesuryateja/designa-gateway/internal/infra/logger"
)

var (
	// ErrDueUnparseable indicates the backend's due amount could not be
	// read as a number; the ticket number or TCC is likely wrong.
	ErrDueUnparseable = errors.New("unable to determine outstanding due for this ticket")
	// ErrNoOutstandingDue indicates the card carries no due; payment is
	// not required.
	ErrNoOutstandingDue = errors.New("no outstanding due; payment not required")
	// ErrOverpayment indicates the tendered amount exceeds the due.
	ErrOverpayment = errors.New("amount paid exceeds outstanding due")
	// ErrClearRejected indicates the backend refused or failed the
	// clear request.
	ErrClearRejected = errors.New("invalid or failed setCleared response")
)

// TicketService exposes ticket operations against the cashpoint endpoint:
// due lookup, rebates, the settlement flow, and clearing.
type TicketService struct {
	cfg       *config.AppConfig
	cashpoint port.RemoteGateway
	log       *zap.Logger
	now       func() time.Time
}

// NewTicketService constructs a TicketService.
func NewTicketService(cfg *config.AppConfig, cashpoint port.RemoteGateway, log *zap.Logger) *TicketService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TicketService{
		cfg:       cfg,
		cashpoint: cashpoint,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the settlement timestamp source for deterministic
// testing.
func (s *TicketService) WithClock(clock func() time.Time) *TicketService {
	if clock != nil {
		s.now = clock
	}
	return s
}

// AmountDue fetches the outstanding due for a card. The backend answers
// with a primitive; a structured or empty reply means the ticket could
// not be resolved.
func (s *TicketService) AmountDue(ctx context.Context, tccNum int, cardNumber string) (string, error) {
	value, err := s.cashpoint.Call(ctx, "getAmountDue", []domain.Param{
		{Name: "TccNum", Value: strconv.Itoa(tccNum)},
		{Name: "CardNumber", Value: cardNumber},
	})
	if err != nil {
		return "", fmt.Errorf("getAmountDue for card %s: %w", logger.MaskCard(cardNumber), err)
	}

	if value.Kind != domain.KindText || value.IsEmpty() {
		return "", fmt.Errorf("getAmountDue for card %s: unexpected reply %q", logger.MaskCard(cardNumber), value.String())
	}

	return value.Text, nil
}

// Rebate applies a discount to the card via setRebate. There is no due
// check on this path.
func (s *TicketService) Rebate(ctx context.Context, cardNumber string, discountType, discountValue, discountAccount int) (string, error) {
	s.log.Info("calling setRebate",
		zap.String("card", logger.MaskCard(cardNumber)),
		zap.Int("discount_type", discountType),
		zap.Int("discount_value", discountValue),
		zap.Int("discount_account", discountAccount))

	value, err := s.cashpoint.Call(ctx, "setRebate", []domain.Param{
		{Name: "UserID", Value: s.cfg.Designa.User},
		{Name: "UserPWD", Value: s.cfg.Designa.Password},
		{Name: "CardNumber", Value: cardNumber},
		{Name: "DiscountType", Value: strconv.Itoa(discountType)},
		{Name: "DiscountValue", Value: strconv.Itoa(discountValue)},
		{Name: "DiscountAccount", Value: strconv.Itoa(discountAccount)},
	})
	if err != nil {
		return "", fmt.Errorf("setRebate for card %s: %w", logger.MaskCard(cardNumber), err)
	}

	return value.String(), nil
}

// Settle performs the settlement flow: fetch the outstanding due, validate
// the tendered amount against it, and only then commit the settlement.
//
// The due read and the settlement write are two independent backend calls
// with no transactional wrapper. A due amount changing in between (other
// terminal activity on the same card) is an accepted risk of the
// single-terminal deployment; the backend remains authoritative.
func (s *TicketService) Settle(ctx context.Context, tccNum int, cardNumber string, amountPaid decimal.Decimal) (*domain.SettlementResult, error) {
	rawDue, err := s.AmountDue(ctx, tccNum, cardNumber)
	if err != nil {
		return nil, err
	}

	s.log.Info("payment check",
		zap.String("card", logger.MaskCard(cardNumber)),
		zap.String("raw_due", rawDue))

	due, perr := decimal.NewFromString(strings.TrimSpace(rawDue))
	if perr != nil {
		return nil, fmt.Errorf("%w: backend returned %q", ErrDueUnparseable, rawDue)
	}

	if !due.IsPositive() {
		return nil, fmt.Errorf("%w: card %s", ErrNoOutstandingDue, logger.MaskCard(cardNumber))
	}

	if amountPaid.GreaterThan(due) {
		return nil, fmt.Errorf("%w: paid %s, due %s", ErrOverpayment, amountPaid.String(), due.String())
	}

	settlementTime := s.now().Format(time.RFC3339)
	s.log.Info("calling setCardSettlement",
		zap.String("card", logger.MaskCard(cardNumber)),
		zap.Int("tcc_num", tccNum),
		zap.String("amount_paid", amountPaid.String()),
		zap.String("settlement_time", settlementTime))

	confirmation, err := s.cashpoint.Call(ctx, "setCardSettlement", []domain.Param{
		{Name: "UserID", Value: s.cfg.Designa.User},
		{Name: "UserPWD", Value: s.cfg.Designa.Password},
		{Name: "TccNum", Value: strconv.Itoa(tccNum)},
		{Name: "CardNumber", Value: cardNumber},
		{Name: "SettlementTime", Value: settlementTime},
		{Name: "AmountPaid", Value: amountPaid.String()},
	})
	if err != nil {
		return nil, fmt.Errorf("setCardSettlement for card %s: %w", logger.MaskCard(cardNumber), err)
	}

	return &domain.SettlementResult{
		Message:         "Payment processed successfully.",
		AmountDueBefore: due,
		Confirmation:    confirmation,
	}, nil
}

// Clear marks the ticket cleared via setCleared. The backend signals
// failure in-band: an empty reply or a reply containing an error marker.
func (s *TicketService) Clear(ctx context.Context, tccNum int, cardNumber, userID, password string) (string, error) {
	user := userID
	if user == "" {
		user = s.cfg.Designa.User
	}
	pwd := password
	if pwd == "" {
		pwd = s.cfg.Designa.Password
	}

	value, err := s.cashpoint.Call(ctx, "setCleared", []domain.Param{
		{Name: "UserID", Value: user},
		{Name: "UserPWD", Value: pwd},
		{Name: "TccNum", Value: strconv.Itoa(tccNum)},
		{Name: "CardNumber", Value: cardNumber},
	})
	if err != nil {
		return "", fmt.Errorf("setCleared for card %s: %w", logger.MaskCard(cardNumber), err)
	}

	rendered := value.String()
	if value.IsEmpty() || strings.Contains(rendered, "Error") {
		return "", fmt.Errorf("%w: %s", ErrClearRejected, rendered)
	}

	return rendered, nil
}
