package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/valora-web/internal/service"
)

// PasswordResetPath is the entry point for requesting a fresh reset link.
// Every invalid token lands here, regardless of why it was rejected.
const PasswordResetPath = "/password-reset"

// ResetHandler serves the password-reset confirmation flow.
type ResetHandler struct {
	Reset *service.ResetService
}

// NewResetHandler wires the handler.
func NewResetHandler(reset *service.ResetService) *ResetHandler {
	return &ResetHandler{Reset: reset}
}

// ConfirmReset renders the new-password form for a valid token. The token
// string is embedded in the form action so the POST carries the same signed
// proof; the server holds no session in between.
func (h *ResetHandler) ConfirmReset(c *gin.Context) {
	tokenString := c.Param("token")

	if _, err := h.Reset.Confirm(c.Request.Context(), tokenString); err != nil {
		c.Redirect(http.StatusFound, PasswordResetPath)
		return
	}

	c.HTML(http.StatusOK, "confirm_reset", gin.H{"Token": tokenString})
}

// CompleteReset consumes the token and the submitted password, then
// redirects to the role-specific destination with the session cookie set.
func (h *ResetHandler) CompleteReset(c *gin.Context) {
	tokenString := c.Param("token")
	password := c.PostForm("password")
	if strings.TrimSpace(password) == "" {
		c.HTML(http.StatusBadRequest, "confirm_reset", gin.H{"Token": tokenString})
		return
	}

	result, err := h.Reset.CompleteReset(c.Request.Context(), tokenString, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			c.Redirect(http.StatusFound, PasswordResetPath)
			return
		}
		// Collaborator failure after a valid token: generic page, the user
		// retries by resubmitting the form.
		c.HTML(http.StatusInternalServerError, "error", nil)
		return
	}

	http.SetCookie(c.Writer, result.Cookie)
	c.Redirect(http.StatusFound, result.RedirectURL)
}

// RequestReset renders the request-a-link page.
func (h *ResetHandler) RequestReset(c *gin.Context) {
	c.HTML(http.StatusOK, "request_reset", nil)
}

// SubmitResetRequest accepts an email and always answers neutrally.
func (h *ResetHandler) SubmitResetRequest(c *gin.Context) {
	email := c.PostForm("email")
	if strings.TrimSpace(email) == "" {
		c.HTML(http.StatusBadRequest, "request_reset", nil)
		return
	}

	_ = h.Reset.RequestReset(c.Request.Context(), email)
	c.HTML(http.StatusOK, "reset_sent", nil)
}
