package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
)

// ErrorCase maps a sentinel error to an HTTP status code and response message.
type ErrorCase struct {
	Err     error
	Status  int
	Message string
}

// RespondWithMappedError resolves the provided error against known cases,
// then against the remote failure taxonomy, or falls back to a generic
// response. Backend faults and transport failures always surface as 502
// so callers can distinguish a rejected request from an unreachable
// backend.
func RespondWithMappedError(c *gin.Context, err error, cases []ErrorCase, fallbackStatus int, fallbackMessage string) {
	if err == nil {
		c.Status(http.StatusOK)
		return
	}

	for _, cs := range cases {
		if cs.Err == nil {
			continue
		}
		if errors.Is(err, cs.Err) {
			c.JSON(cs.Status, NewErrorResponse(c, cs.Message))
			return
		}
	}

	var fault *domain.FaultError
	if errors.As(err, &fault) {
		c.JSON(http.StatusBadGateway,
			NewErrorResponse(c, fmt.Sprintf("backend fault in %s: %s", fault.Operation, fault.Reason)))
		return
	}

	var transport *domain.TransportError
	if errors.As(err, &transport) {
		c.JSON(http.StatusBadGateway,
			NewErrorResponse(c, fmt.Sprintf("backend unreachable during %s", transport.Operation)))
		return
	}

	c.JSON(fallbackStatus, NewErrorResponse(c, fallbackMessage))
}
