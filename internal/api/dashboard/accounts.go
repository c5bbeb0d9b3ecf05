package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/toh-yonetim/dashboard/internal/service/auth"
)

type registerRequest struct {
	FullName      string `json:"full_name" binding:"required,notblank"`
	Username      string `json:"username" binding:"required,notblank"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	HabboUsername string `json:"habbo_username" binding:"required,notblank"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required,notblank"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account.
// POST /api/v1/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if !h.bind(c, &req) {
		return
	}

	account, err := h.auth.Register(c.Request.Context(), auth.RegisterInput{
		FullName:      req.FullName,
		Username:      req.Username,
		Email:         req.Email,
		Password:      req.Password,
		HabboUsername: req.HabboUsername,
	})
	if err != nil {
		h.handleServiceError(c, err, "register account")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// Login opens a session by username or email.
// POST /api/v1/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !h.bind(c, &req) {
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.handleServiceError(c, err, "log in")
		return
	}

	c.JSON(http.StatusOK, session)
}

// Logout closes the current session.
// POST /api/v1/auth/logout.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), sessionToken(c)); err != nil {
		h.handleServiceError(c, err, "log out")
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the account of the current session.
// GET /api/v1/auth/me.
func (h *Handler) Me(c *gin.Context) {
	account, err := h.auth.CurrentAccount(c.Request.Context(), sessionToken(c))
	if err != nil {
		h.handleServiceError(c, err, "resolve session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": account})
}
