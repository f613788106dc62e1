package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/anipesuryateja/designa-gateway/internal/usecase"
)

// ManualTicketHandler exposes surrogate ticket operations for entries
// verified outside the normal lane flow: tariff calculation and
// settlement.
type ManualTicketHandler struct {
	tariffs *usecase.TariffService
	tickets *usecase.TicketService
}

// NewManualTicketHandler constructs ManualTicketHandler.
func NewManualTicketHandler(tariffs *usecase.TariffService, tickets *usecase.TicketService) *ManualTicketHandler {
	return &ManualTicketHandler{tariffs: tariffs, tickets: tickets}
}

// RegisterRoutes binds the manual ticket routes.
func (h *ManualTicketHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.create)
	r.POST("/:card_number/settlements", h.settle)
}

func (h *ManualTicketHandler) create(c *gin.Context) {
	var req ManualTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid manual ticket payload"))
		return
	}

	result, err := h.tariffs.Calc(c.Request.Context(),
		*req.CarparkNr, *req.CardType, *req.TariffID, req.TimeEntry, req.TimeExit)
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "tariff calculation failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ManualTicketHandler) settle(c *gin.Context) {
	cardNumber := c.Param("card_number")

	raw := c.Query("tcc_num")
	if raw == "" {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "tcc_num query parameter is required"))
		return
	}
	tccNum, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "tcc_num must be an integer"))
		return
	}

	var req SettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid settlement payload"))
		return
	}

	result, err := h.tickets.Settle(c.Request.Context(), tccNum, cardNumber,
		decimal.NewFromFloat(req.AmountPaid))
	if err != nil {
		RespondWithMappedError(c, err, settlementErrorCases(),
			http.StatusInternalServerError, "settlement failed")
		return
	}

	c.JSON(http.StatusOK, SettlementResponse{
		Result:                 result.Message,
		AmountDueBeforePayment: result.AmountDueBefore.String(),
		SoapResponse:           result.Confirmation,
	})
}
