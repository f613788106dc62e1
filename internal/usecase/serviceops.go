package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
	"github.com/anipesuryateja/designa-gateway/internal/core/port"
	"github.com/anipesuryateja/designa-gateway/internal/infra/config"
	"github.com/anipesuryateja/designa-gateway/internal/infra/logger"
)

// ErrEmptyReply indicates a lookup that requires a payload came back with
// nothing.
var ErrEmptyReply = errors.New("empty reply from backend")

// ServiceOpsService groups the pass-through reads against the backend's
// service-operation endpoint, plus the card info lookup on the cashpoint
// endpoint. All operations are stateless pass-throughs: the mapper
// renames fields, nothing more.
type ServiceOpsService struct {
	cfg       *config.AppConfig
	cashpoint port.RemoteGateway
	service   port.RemoteGateway
	log       *zap.Logger
}

// NewServiceOpsService constructs a ServiceOpsService.
func NewServiceOpsService(cfg *config.AppConfig, cashpoint, service port.RemoteGateway, log *zap.Logger) *ServiceOpsService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ServiceOpsService{cfg: cfg, cashpoint: cashpoint, service: service, log: log}
}

// Customer fetches customer master data by person id and shapes the reply
// to the fixed outbound fields.
func (s *ServiceOpsService) Customer(ctx context.Context, user, pwd string, personID int) (domain.RemoteValue, error) {
	value, err := s.service.Call(ctx, "GetCustomer", []domain.Param{
		{Name: "user", Value: user},
		{Name: "pwd", Value: pwd},
		{Name: "personId", Value: strconv.Itoa(personID)},
	})
	if err != nil {
		return domain.RemoteValue{}, fmt.Errorf("GetCustomer for person %d: %w", personID, err)
	}
	if value.IsEmpty() {
		return domain.RemoteValue{}, fmt.Errorf("GetCustomer for person %d: %w", personID, ErrEmptyReply)
	}

	address, _ := value.Get("Address")
	details, _ := value.Get("Details")

	return domain.RemoteValue{
		Kind: domain.KindMap,
		Fields: []domain.RemoteField{
			{Name: "FirstName", Value: domain.TextValue(value.GetText("FirstName"))},
			{Name: "LastName", Value: domain.TextValue(value.GetText("LastName"))},
			{Name: "Address", Value: address},
			{Name: "Details", Value: details},
		},
	}, nil
}

// CardByCarrier resolves a card by its carrier number.
func (s *ServiceOpsService) CardByCarrier(ctx context.Context, user, pwd, cardCarrierNr string) (domain.RemoteValue, error) {
	value, err := s.service.Call(ctx, "getCardByCarrier", []domain.Param{
		{Name: "user", Value: user},
		{Name: "pwd", Value: pwd},
		{Name: "cardCarrierNr", Value: cardCarrierNr},
	})
	if err != nil {
		return domain.RemoteValue{}, fmt.Errorf("getCardByCarrier for carrier %s: %w", cardCarrierNr, err)
	}
	return value, nil
}

// PMString fetches the PM string for a short card number using explicit
// credentials.
func (s *ServiceOpsService) PMString(ctx context.Context, user, pwd, shortCardNr string) (string, error) {
	value, err := s.service.Call(ctx, "getPMString", []domain.Param{
		{Name: "user", Value: user},
		{Name: "pwd", Value: pwd},
		{Name: "shortCardNr", Value: shortCardNr},
	})
	if err != nil {
		return "", fmt.Errorf("getPMString for %s: %w", shortCardNr, err)
	}
	if value.IsEmpty() {
		return "", fmt.Errorf("getPMString for %s: %w", shortCardNr, ErrEmptyReply)
	}
	return value.Text, nil
}

// ShortCard is the credential-less variant of the PM string lookup used
// by the cash point.
func (s *ServiceOpsService) ShortCard(ctx context.Context, shortCardNr string) (string, error) {
	value, err := s.service.Call(ctx, "getPMString", []domain.Param{
		{Name: "shortCardNr", Value: shortCardNr},
	})
	if err != nil {
		return "", fmt.Errorf("getPMString for %s: %w", shortCardNr, err)
	}
	if value.IsEmpty() {
		return "", fmt.Errorf("getPMString for %s: %w", shortCardNr, ErrEmptyReply)
	}
	return value.Text, nil
}

// CardInfo fetches card details from the cashpoint endpoint using the
// configured backend credentials.
func (s *ServiceOpsService) CardInfo(ctx context.Context, tccNum int, cardNumber string) (domain.RemoteValue, error) {
	value, err := s.cashpoint.Call(ctx, "GetCardInfo", []domain.Param{
		{Name: "UserID", Value: s.cfg.Designa.User},
		{Name: "UserPWD", Value: s.cfg.Designa.Password},
		{Name: "TccNum", Value: strconv.Itoa(tccNum)},
		{Name: "CardNumber", Value: cardNumber},
	})
	if err != nil {
		return domain.RemoteValue{}, fmt.Errorf("GetCardInfo for card %s: %w", logger.MaskCard(cardNumber), err)
	}
	if value.IsEmpty() {
		return domain.RemoteValue{}, fmt.Errorf("GetCardInfo for card %s: %w", logger.MaskCard(cardNumber), ErrEmptyReply)
	}
	return value, nil
}

// DeviceState reads the backend's device state overview.
func (s *ServiceOpsService) DeviceState(ctx context.Context) (domain.RemoteValue, error) {
	value, err := s.service.Call(ctx, "getServiceOperationState", nil)
	if err != nil {
		return domain.RemoteValue{}, fmt.Errorf("getServiceOperationState: %w", err)
	}
	return value, nil
}

// Counters reads the extended carpark occupancy counters.
func (s *ServiceOpsService) Counters(ctx context.Context) (domain.RemoteValue, error) {
	value, err := s.service.Call(ctx, "getCarParkCounterExt", nil)
	if err != nil {
		return domain.RemoteValue{}, fmt.Errorf("getCarParkCounterExt: %w", err)
	}
	return value, nil
}
