package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/anipesuryateja/designa-gateway/internal/infra/config"
	"github.com/anipesuryateja/designa-gateway/internal/transport/http/handlers"
	"github.com/anipesuryateja/designa-gateway/internal/transport/http/middleware"
	"github.com/anipesuryateja/designa-gateway/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth       *usecase.AuthService
	Tickets    *usecase.TicketService
	Tariffs    *usecase.TariffService
	ServiceOps *usecase.ServiceOpsService
	Terminal   *usecase.TerminalService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Metrics  *middleware.HTTPMetrics
	Services ServiceSet
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	authMiddleware := middleware.RequireAuth(deps.Services.Auth)

	healthHandler := handlers.NewHealthHandler()
	r.GET("/healthz", healthHandler.Status)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(deps.Services.Auth)
	authHandler.RegisterRoutes(r, authMiddleware)

	ticketGroup := r.Group("/tickets")
	ticketGroup.Use(authMiddleware)
	ticketHandler := handlers.NewTicketHandler(deps.Services.Tickets, deps.Config.Designa.TCCEntry)
	ticketHandler.RegisterRoutes(ticketGroup)

	manualGroup := r.Group("/manual-tickets")
	manualGroup.Use(authMiddleware)
	manualHandler := handlers.NewManualTicketHandler(deps.Services.Tariffs, deps.Services.Tickets)
	manualHandler.RegisterRoutes(manualGroup)

	deviceGroup := r.Group("/devices")
	deviceGroup.Use(authMiddleware)
	opsHandler := handlers.NewOpsHandler(deps.Services.ServiceOps)
	opsHandler.RegisterRoutes(deviceGroup)

	customerGroup := r.Group("/customers")
	customerGroup.Use(authMiddleware)
	customerHandler := handlers.NewCustomerHandler(deps.Services.ServiceOps)
	customerHandler.RegisterRoutes(customerGroup)

	plateGroup := r.Group("/plates")
	plateGroup.Use(authMiddleware)
	plateHandler := handlers.NewPlateHandler(deps.Services.ServiceOps)
	plateHandler.RegisterRoutes(plateGroup)

	serviceGroup := r.Group("/service")
	serviceGroup.Use(authMiddleware)
	serviceHandler := handlers.NewServiceHandler(deps.Services.ServiceOps)
	serviceHandler.RegisterRoutes(serviceGroup)

	hitGroup := r.Group("/hit")
	hitGroup.Use(authMiddleware)
	hitHandler := handlers.NewHitHandler(deps.Services.Terminal)
	hitHandler.RegisterRoutes(hitGroup)

	return r
}
