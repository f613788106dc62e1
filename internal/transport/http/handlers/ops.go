package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anipesuryateja/designa-gateway/internal/usecase"
)

// OpsHandler exposes read-only device monitoring endpoints.
type OpsHandler struct {
	serviceOps *usecase.ServiceOpsService
}

// NewOpsHandler constructs OpsHandler.
func NewOpsHandler(serviceOps *usecase.ServiceOpsService) *OpsHandler {
	return &OpsHandler{serviceOps: serviceOps}
}

// RegisterRoutes binds the device routes.
func (h *OpsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/state", h.state)
	r.GET("/counters", h.counters)
}

func (h *OpsHandler) state(c *gin.Context) {
	state, err := h.serviceOps.DeviceState(c.Request.Context())
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "device state lookup failed")
		return
	}

	c.JSON(http.StatusOK, DeviceStateResponse{State: state})
}

func (h *OpsHandler) counters(c *gin.Context) {
	counters, err := h.serviceOps.Counters(c.Request.Context())
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "counter lookup failed")
		return
	}

	c.JSON(http.StatusOK, CountersResponse{Counters: counters})
}
