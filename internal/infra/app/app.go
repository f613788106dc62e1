package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anipesuryateja/designa-gateway/internal/infra/config"
	"github.com/anipesuryateja/designa-gateway/internal/infra/hit"
	"github.com/anipesuryateja/designa-gateway/internal/infra/logger"
	"github.com/anipesuryateja/designa-gateway/internal/infra/security"
	"github.com/anipesuryateja/designa-gateway/internal/infra/soap"
	"github.com/anipesuryateja/designa-gateway/internal/repository/memory"
	"github.com/anipesuryateja/designa-gateway/internal/transport/http/middleware"
	"github.com/anipesuryateja/designa-gateway/internal/transport/http/routes"
	"github.com/anipesuryateja/designa-gateway/internal/usecase"
)

// Application wires the gateway: two SOAP clients against the DESIGNA
// backend, one HIT client against the payment terminal, and the HTTP
// surface in front of them.
type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	tokenManager, err := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Algorithm,
		time.Duration(cfg.JWT.TokenTTLMinutes)*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("init token manager: %w", err)
	}

	revocationSet := memory.NewRevocationSet()

	cashpointClient := soap.NewClient(soap.Options{
		Endpoint:           cfg.Designa.CashpointURL,
		Timeout:            cfg.Designa.CallTimeout,
		InsecureSkipVerify: !cfg.Designa.SSLVerify,
		Logger:             log,
	})
	serviceClient := soap.NewClient(soap.Options{
		Endpoint:           cfg.Designa.ServiceURL,
		Timeout:            cfg.Designa.CallTimeout,
		InsecureSkipVerify: !cfg.Designa.SSLVerify,
		Logger:             log,
	})
	hitClient := hit.NewClient(hit.Options{
		Endpoint: cfg.Hit.Endpoint,
		Timeout:  cfg.Hit.CallTimeout,
		Logger:   log,
	})

	authService := usecase.NewAuthService(cfg, cashpointClient, tokenManager, revocationSet, log)
	ticketService := usecase.NewTicketService(cfg, cashpointClient, log)
	tariffService := usecase.NewTariffService(cfg, cashpointClient, log)
	serviceOpsService := usecase.NewServiceOpsService(cfg, cashpointClient, serviceClient, log)
	terminalService := usecase.NewTerminalService(hitClient, log)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	engine := routes.Register(routes.Dependencies{
		Config:  cfg,
		Logger:  log,
		Metrics: metrics,
		Services: routes.ServiceSet{
			Auth:       authService,
			Tickets:    ticketService,
			Tariffs:    tariffService,
			ServiceOps: serviceOpsService,
			Terminal:   terminalService,
		},
	})

	return &Application{
		cfg:    cfg,
		engine: engine,
		logger: log,
	}, nil
}

func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting gateway API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
