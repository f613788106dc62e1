package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anipesuryateja/designa-gateway/internal/transport/http/middleware"
	"github.com/anipesuryateja/designa-gateway/internal/usecase"
)

// AuthHandler exposes the session endpoints: login against the entry
// terminal and logoff against the exit terminal.
type AuthHandler struct {
	auth *usecase.AuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *usecase.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes binds the session routes. Login is the only open
// endpoint; logoff requires the auth middleware so the presented token
// can be revoked.
func (h *AuthHandler) RegisterRoutes(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	r.POST("/login", h.login)
	r.POST("/logoff", authMiddleware, h.logoff)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid login payload"))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.TCCNum, req.UserID, req.Password)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrTCCNotAuthorized, Status: http.StatusBadRequest, Message: "TCC is not authorized"},
		}, http.StatusInternalServerError, "login failed")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		ResultCode:  result.ResultCode,
		Message:     result.Message,
		AccessToken: result.AccessToken,
	})
}

func (h *AuthHandler) logoff(c *gin.Context) {
	var req LogoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid logoff payload"))
		return
	}

	token, _ := middleware.GetBearerToken(c)

	success, err := h.auth.Logoff(c.Request.Context(), req.TCCNum, token)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrTCCNotAuthorized, Status: http.StatusBadRequest, Message: "TCC is not authorized"},
		}, http.StatusInternalServerError, "logoff failed")
		return
	}

	message := "LogOff failed"
	if success {
		message = "LogOff successful"
	}

	c.JSON(http.StatusOK, LogoffResponse{Success: success, Message: message})
}
