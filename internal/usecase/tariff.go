package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
	"github.com/anipesuryateja/designa-gateway/internal/core/port"
	"github.com/anipesuryateja/designa-gateway/internal/infra/config"
)

// TariffService calculates parking fees for manual (surrogate) tickets.
type TariffService struct {
	cfg       *config.AppConfig
	cashpoint port.RemoteGateway
	log       *zap.Logger
}

// NewTariffService constructs a TariffService.
func NewTariffService(cfg *config.AppConfig, cashpoint port.RemoteGateway, log *zap.Logger) *TariffService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TariffService{cfg: cfg, cashpoint: cashpoint, log: log}
}

// Calc runs the backend's calcTariff computation for the supplied stay.
// Read-only; nothing is persisted on either side.
func (s *TariffService) Calc(ctx context.Context, carparkNr, cardType, tariffID int, timeEntry, timeExit time.Time) (domain.RemoteValue, error) {
	entry := timeEntry.UTC().Format(time.RFC3339)
	exit := timeExit.UTC().Format(time.RFC3339)

	s.log.Info("calling calcTariff",
		zap.Int("carpark_nr", carparkNr),
		zap.Int("card_type", cardType),
		zap.Int("tariff_id", tariffID),
		zap.String("time_entry", entry),
		zap.String("time_exit", exit))

	value, err := s.cashpoint.Call(ctx, "calcTariff", []domain.Param{
		{Name: "UserID", Value: s.cfg.Designa.User},
		{Name: "UserPWD", Value: s.cfg.Designa.Password},
		{Name: "CarparkNr", Value: strconv.Itoa(carparkNr)},
		{Name: "CardType", Value: strconv.Itoa(cardType)},
		{Name: "TariffId", Value: strconv.Itoa(tariffID)},
		{Name: "TimeEntry", Value: entry},
		{Name: "TimeExit", Value: exit},
	})
	if err != nil {
		return domain.RemoteValue{}, fmt.Errorf("calcTariff for carpark %d: %w", carparkNr, err)
	}

	return value, nil
}
