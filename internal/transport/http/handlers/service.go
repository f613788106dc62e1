package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anipesuryateja/designa-gateway/internal/usecase"
)

// ServiceHandler exposes the cash point service lookups: PM strings,
// short card numbers, and card details.
type ServiceHandler struct {
	serviceOps *usecase.ServiceOpsService
}

// NewServiceHandler constructs ServiceHandler.
func NewServiceHandler(serviceOps *usecase.ServiceOpsService) *ServiceHandler {
	return &ServiceHandler{serviceOps: serviceOps}
}

// RegisterRoutes binds the service routes.
func (h *ServiceHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/api/getPMString", h.getPMString)
	r.POST("/api/shortcardnr", h.shortCardNr)
	r.POST("/api/cardinfo", h.cardInfo)
}

func (h *ServiceHandler) getPMString(c *gin.Context) {
	var req PMStringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid PM string payload"))
		return
	}

	pmString, err := h.serviceOps.PMString(c.Request.Context(), req.User, req.Pwd, req.ShortCardNr)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrEmptyReply, Status: http.StatusNotFound, Message: "PM string not found"},
		}, http.StatusInternalServerError, "PM string lookup failed")
		return
	}

	c.JSON(http.StatusOK, PMStringResponse{PMString: pmString})
}

func (h *ServiceHandler) shortCardNr(c *gin.Context) {
	var req ShortCardNrRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid short card payload"))
		return
	}

	cardNr, err := h.serviceOps.ShortCard(c.Request.Context(), req.ShortCardNr)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrEmptyReply, Status: http.StatusNotFound, Message: "short card number not found"},
		}, http.StatusInternalServerError, "short card lookup failed")
		return
	}

	c.JSON(http.StatusOK, ShortCardNrResponse{ShortCardNr: cardNr})
}

func (h *ServiceHandler) cardInfo(c *gin.Context) {
	var req CardInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid card info payload"))
		return
	}

	info, err := h.serviceOps.CardInfo(c.Request.Context(), *req.TccNum, req.CardNumber)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrEmptyReply, Status: http.StatusNotFound, Message: "card not found"},
		}, http.StatusInternalServerError, "card info lookup failed")
		return
	}

	c.JSON(http.StatusOK, CardInfoResponse{CardInfo: info})
}
