package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anipesuryateja/designa-gateway/internal/usecase"
)

// PlateHandler exposes card carrier lookups used by plate recognition.
type PlateHandler struct {
	serviceOps *usecase.ServiceOpsService
}

// NewPlateHandler constructs PlateHandler.
func NewPlateHandler(serviceOps *usecase.ServiceOpsService) *PlateHandler {
	return &PlateHandler{serviceOps: serviceOps}
}

// RegisterRoutes binds the plate routes.
func (h *PlateHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/api/getCardByCarrier", h.getCardByCarrier)
}

func (h *PlateHandler) getCardByCarrier(c *gin.Context) {
	var req CardCarrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid card carrier payload"))
		return
	}

	card, err := h.serviceOps.CardByCarrier(c.Request.Context(), req.User, req.Pwd, req.CardCarrierNr)
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "card carrier lookup failed")
		return
	}

	c.JSON(http.StatusOK, card)
}
