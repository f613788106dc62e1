package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
	"github.com/anipesuryateja/designa-gateway/internal/usecase"
)

// HitHandler exposes the payment terminal endpoints. Every endpoint
// renders one XML envelope, sends it, and returns the parsed reply
// merged with echoed request fields.
type HitHandler struct {
	terminal *usecase.TerminalService
}

// NewHitHandler constructs HitHandler.
func NewHitHandler(terminal *usecase.TerminalService) *HitHandler {
	return &HitHandler{terminal: terminal}
}

// RegisterRoutes binds the terminal routes.
func (h *HitHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/purchase", h.purchase)
	r.POST("/refund", h.refund)
	r.POST("/refund/unmatched", h.unmatchedRefund)
	r.POST("/reversal", h.reversal)
	r.POST("/status", h.status)
	r.POST("/receipt", h.receipt)
	r.POST("/receipt-print", h.receiptPrint)
	r.POST("/enter-data", h.enterData)
	r.POST("/pinpad_display", h.pinpadDisplay)
	r.POST("/read_card", h.readCard)
	r.POST("/settlement_summary", h.settlementSummary)
	r.POST("/ping", h.ping)
	r.POST("/ui/button", h.uiButton)
}

// formatAmount renders monetary values with two decimal places as the
// terminal expects.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func (h *HitHandler) respond(c *gin.Context, result map[string]string, err error) {
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidButtonName, Status: http.StatusBadRequest, Message: "name must be B1 or B2"},
			{Err: usecase.ErrInvalidButtonValue, Status: http.StatusBadRequest, Message: "val must be YES, NO, or CANCEL"},
		}, http.StatusInternalServerError, "terminal request failed")
		return
	}

	c.JSON(http.StatusOK, TerminalResponse{Status: "success", Windcave: result})
}

func (h *HitHandler) purchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid purchase payload"))
		return
	}

	result, err := h.terminal.Purchase(c.Request.Context(), domain.TerminalPurchase{
		Credentials: domain.TerminalCredentials{User: req.User, Key: req.Key},
		Amount:      formatAmount(req.Amount),
		Currency:    req.Currency,
		Station:     req.Station,
		TxnRef:      req.TxnRef,
		DeviceID:    req.DeviceID,
		PosName:     req.PosName,
		PosVersion:  req.PosVersion,
		VendorID:    req.VendorID,
		MRef:        req.MRef,
	})
	h.respond(c, result, err)
}

func (h *HitHandler) refund(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid refund payload"))
		return
	}

	result, err := h.terminal.Refund(c.Request.Context(), domain.TerminalRefund{
		Credentials: domain.TerminalCredentials{User: req.User, Key: req.Key},
		Amount:      formatAmount(req.Amount),
		Currency:    req.Currency,
		Station:     req.Station,
		TxnRef:      req.TxnRef,
		DpsTxnRef:   req.DpsTxnRef,
		DeviceID:    req.DeviceID,
		PosName:     req.PosName,
		VendorID:    req.VendorID,
		MRef:        req.MRef,
	})
	h.respond(c, result, err)
}

func (h *HitHandler) unmatchedRefund(c *gin.Context) {
	var req UnmatchedRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid unmatched refund payload"))
		return
	}

	result, err := h.terminal.UnmatchedRefund(c.Request.Context(), domain.TerminalUnmatchedRefund{
		Credentials: domain.TerminalCredentials{User: req.User, Key: req.Key},
		Amount:      formatAmount(req.Amount),
		Currency:    req.Currency,
		Station:     req.Station,
		TxnRef:      req.TxnRef,
		DeviceID:    req.DeviceID,
		PosName:     req.PosName,
		VendorID:    req.VendorID,
		MRef:        req.MRef,
	})
	h.respond(c, result, err)
}

func (h *HitHandler) reversal(c *gin.Context) {
	var req ReversalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid reversal payload"))
		return
	}

	result, err := h.terminal.Reversal(c.Request.Context(), domain.TerminalReversal{
		Credentials: domain.TerminalCredentials{User: req.User, Key: req.Key},
		Station:     req.Station,
		TxnRef:      req.TxnRef,
	})
	h.respond(c, result, err)
}

func (h *HitHandler) status(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid status payload"))
		return
	}

	result, err := h.terminal.Status(c.Request.Context(), domain.TerminalStatus{
		Credentials: domain.TerminalCredentials{User: req.User, Key: req.Key},
		Station:     req.Station,
		TxnRef:      req.TxnRef,
	})
	h.respond(c, result, err)
}

func (h *HitHandler) receipt(c *gin.Context) {
	var req ReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid receipt payload"))
		return
	}

	result, err := h.terminal.Receipt(c.Request.Context(), domain.TerminalReceipt{
		Credentials:   domain.TerminalCredentials{User: req.User, Key: req.Key},
		Station:       req.Station,
		TxnRef:        req.TxnRef,
		ReceiptType:   req.ReceiptType,
		DuplicateFlag: req.DuplicateFlag,
	})
	h.respond(c, result, err)
}

func (h *HitHandler) receiptPrint(c *gin.Context) {
	var req ReceiptPrintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid receipt print payload"))
		return
	}

	result, err := h.terminal.Receipt(c.Request.Context(), domain.TerminalReceipt{
		Credentials:   domain.TerminalCredentials{User: req.User, Key: req.Key},
		Station:       req.Station,
		TxnRef:        req.TxnRef,
		ReceiptType:   req.ReceiptType,
		DuplicateFlag: req.DuplicateFlag,
		Printer:       req.Printer,
		Action:        "Print",
	})
	h.respond(c, result, err)
}

func (h *HitHandler) enterData(c *gin.Context) {
	var req EnterDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid enter data payload"))
		return
	}

	result, err := h.terminal.EnterData(c.Request.Context(), domain.TerminalEnterData{
		Credentials: domain.TerminalCredentials{User: req.User, Key: req.Key},
		Station:     req.Station,
		CmdSeq:      req.CmdSeq,
		PromptID:    req.PromptID,
		Timeout:     req.Timeout,
	})
	h.respond(c, result, err)
}

func (h *HitHandler) pinpadDisplay(c *gin.Context) {
	var req PinpadDisplayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid pinpad display payload"))
		return
	}

	result, err := h.terminal.PinpadDisplay(c.Request.Context(), domain.TerminalPinpadDisplay{
		Credentials: domain.TerminalCredentials{User: req.User, Key: req.Key},
		Station:     req.Station,
		CmdSeq:      req.CmdSeq,
		PromptID:    req.PromptID,
		Param1:      req.Param1,
		Param2:      req.Param2,
		Timeout:     req.Timeout,
	})
	h.respond(c, result, err)
}

func (h *HitHandler) readCard(c *gin.Context) {
	var req ReadCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid read card payload"))
		return
	}

	result, err := h.terminal.ReadCard(c.Request.Context(), domain.TerminalReadCard{
		Credentials: domain.TerminalCredentials{User: req.User, Key: req.Key},
		Station:     req.Station,
		TxnRef:      req.TxnRef,
	})
	h.respond(c, result, err)
}

func (h *HitHandler) settlementSummary(c *gin.Context) {
	var req SettlementSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid settlement summary payload"))
		return
	}

	result, err := h.terminal.SettlementSummary(c.Request.Context(), domain.TerminalSettlementSummary{
		Credentials: domain.TerminalCredentials{User: req.User, Key: req.Key},
		Station:     req.Station,
	})
	h.respond(c, result, err)
}

func (h *HitHandler) ping(c *gin.Context) {
	var req PingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid ping payload"))
		return
	}

	result, err := h.terminal.Ping(c.Request.Context(), domain.TerminalPing{
		Credentials: domain.TerminalCredentials{User: req.User, Key: req.Key},
	})
	h.respond(c, result, err)
}

func (h *HitHandler) uiButton(c *gin.Context) {
	var req UIButtonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid UI button payload"))
		return
	}

	result, err := h.terminal.ButtonPress(c.Request.Context(), domain.TerminalButtonPress{
		Credentials: domain.TerminalCredentials{User: req.User, Key: req.Key},
		Station:     req.Station,
		Name:        req.Name,
		Val:         req.Val,
		TxnRef:      req.TxnRef,
	})
	h.respond(c, result, err)
}
