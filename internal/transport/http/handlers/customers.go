package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anipesuryateja/designa-gateway/internal/usecase"
)

// CustomerHandler exposes customer master data lookups.
type CustomerHandler struct {
	serviceOps *usecase.ServiceOpsService
}

// NewCustomerHandler constructs CustomerHandler.
func NewCustomerHandler(serviceOps *usecase.ServiceOpsService) *CustomerHandler {
	return &CustomerHandler{serviceOps: serviceOps}
}

// RegisterRoutes binds the customer routes.
func (h *CustomerHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/api/getCustomer", h.getCustomer)
}

func (h *CustomerHandler) getCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid customer payload"))
		return
	}

	customer, err := h.serviceOps.Customer(c.Request.Context(), req.User, req.Pwd, *req.PersonID)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrEmptyReply, Status: http.StatusNotFound, Message: "customer not found"},
		}, http.StatusInternalServerError, "customer lookup failed")
		return
	}

	c.JSON(http.StatusOK, customer)
}
