package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/auth"
	"github.com/01moynul/storefront-golang/internal/middleware"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /api/auth/login
// Unknown email and wrong password get the same 401.
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Check Credentials ---
	admin, err := h.Auth.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.serverError(c, "Failed to log in", err)
		return
	}

	// 3. --- Issue Token ---
	token, expires, err := h.Tokens.GenerateToken(admin.ID, admin.Role)
	if err != nil {
		h.serverError(c, "Failed to generate token", err, zap.Int64("admin_id", admin.ID))
		return
	}

	h.setSessionCookie(c, token, int(time.Until(expires).Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": expires.UTC(),
		"admin":     admin,
	})
}

// Logout is the handler for POST /api/auth/logout
func (h *Handlers) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	success(c)
}

// Me is the handler for GET /api/admin/me
func (h *Handlers) Me(c *gin.Context) {
	id, ok := middleware.AdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	admin, err := h.Store.GetAdmin(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "Admin not found", "Failed to fetch admin", zap.Int64("admin_id", id))
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (h *Handlers) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", !h.Config.IsDevelopment(), true)
}
