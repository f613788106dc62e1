package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/anipesuryateja/designa-gateway/internal/usecase"
)

// TicketHandler exposes the ticket endpoints: due lookup, rebates, the
// settlement flow, and clearing.
type TicketHandler struct {
	tickets    *usecase.TicketService
	defaultTCC int
}

// NewTicketHandler constructs TicketHandler. defaultTCC is used for the
// lookup endpoint when the caller does not name a terminal.
func NewTicketHandler(tickets *usecase.TicketService, defaultTCC int) *TicketHandler {
	return &TicketHandler{tickets: tickets, defaultTCC: defaultTCC}
}

// RegisterRoutes binds the ticket routes.
func (h *TicketHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/by-plate/:plate", h.lookupByPlate)
	r.GET("/:card_number", h.lookup)
	r.POST("/:card_number/rebates", h.rebate)
	r.POST("/:card_number/settlements", h.settle)
	r.POST("/:card_number/clear", h.clear)
}

func (h *TicketHandler) lookup(c *gin.Context) {
	cardNumber := c.Param("card_number")

	tccNum, ok := h.tccFromQuery(c, h.defaultTCC)
	if !ok {
		return
	}

	due, err := h.tickets.AmountDue(c.Request.Context(), tccNum, cardNumber)
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "ticket lookup failed")
		return
	}

	c.JSON(http.StatusOK, AmountDueResponse{CardNumber: cardNumber, AmountDue: due})
}

// lookupByPlate resolves a ticket by license plate. The backend keys due
// lookups by card number; plates map one-to-one onto card numbers here.
func (h *TicketHandler) lookupByPlate(c *gin.Context) {
	plate := c.Param("plate")

	tccNum, ok := h.tccFromQuery(c, 0)
	if !ok {
		return
	}

	due, err := h.tickets.AmountDue(c.Request.Context(), tccNum, plate)
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "plate lookup failed")
		return
	}

	c.JSON(http.StatusOK, AmountDueResponse{CardNumber: plate, AmountDue: due})
}

func (h *TicketHandler) rebate(c *gin.Context) {
	cardNumber := c.Param("card_number")

	var req RebateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid rebate payload"))
		return
	}

	result, err := h.tickets.Rebate(c.Request.Context(), cardNumber,
		*req.DiscountType, *req.DiscountValue, *req.DiscountAccount)
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "rebate failed")
		return
	}

	c.JSON(http.StatusOK, RebateResponse{Result: result})
}

func (h *TicketHandler) settle(c *gin.Context) {
	cardNumber := c.Param("card_number")

	tccNum, ok := h.tccFromQuery(c, 0)
	if !ok {
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

func (h *TicketHandler) clear(c *gin.Context) {
	cardNumber := c.Param("card_number")

	tccNum, ok := h.tccFromQuery(c, 0)
	if !ok {
		return
	}

	result, err := h.tickets.Clear(c.Request.Context(), tccNum, cardNumber,
		c.Query("user_id"), c.Query("password"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrClearRejected, Status: http.StatusBadRequest, Message: "invalid or failed setCleared response"},
		}, http.StatusInternalServerError, "clear failed")
		return
	}

	c.JSON(http.StatusOK, ClearResponse{
		Message: "Ticket cleared successfully",
		Result:  result,
	})
}

// tccFromQuery reads the tcc_num query parameter. A zero fallback means
// the parameter is required.
func (h *TicketHandler) tccFromQuery(c *gin.Context, fallback int) (int, bool) {
	raw := c.Query("tcc_num")
	if raw == "" {
		if fallback > 0 {
			return fallback, true
		}
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "tcc_num query parameter is required"))
		return 0, false
	}

	tccNum, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "tcc_num must be an integer"))
		return 0, false
	}

	return tccNum, true
}

func settlementErrorCases() []ErrorCase {
	return []ErrorCase{
		{Err: usecase.ErrDueUnparseable, Status: http.StatusBadRequest, Message: "unable to determine outstanding due for this ticket"},
		{Err: usecase.ErrNoOutstandingDue, Status: http.StatusBadRequest, Message: "no outstanding due; payment not required"},
		{Err: usecase.ErrOverpayment, Status: http.StatusBadRequest, Message: "amount paid exceeds outstanding due"},
	}
}
