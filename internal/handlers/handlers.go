package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/auth"
	"github.com/01moynul/storefront-golang/internal/catalog"
	"github.com/01moynul/storefront-golang/internal/config"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/patch"
	"github.com/01moynul/storefront-golang/internal/store"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store   *store.Store
	Catalog *catalog.Lister
	Auth    *auth.Authenticator
	Tokens  *auth.Manager
	Log     *zap.Logger
	Config  config.Config
}

// Health is the handler for GET /api/health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID reads an integer path parameter, answering 400 when it is not one.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// serverError logs err and answers 500. The raw error is only echoed in
// development.
func (h *Handlers) serverError(c *gin.Context, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("route", c.FullPath()), zap.Error(err))
	h.Log.Error(msg, fields...)
	_ = c.Error(err)

	body := gin.H{"error": msg}
	if h.Config.IsDevelopment() {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// storeError maps data-access and validation errors onto the response
// taxonomy. notFound is the 404 message for the addressed resource.
func (h *Handlers) storeError(c *gin.Context, err error, notFound, failure string, fields ...zap.Field) {
	var vErr *models.ValidationError
	var rErr *patch.RequiredError
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, store.ErrNoChanges):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
	case errors.Is(err, store.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrConflict), errors.Is(err, store.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &vErr), errors.As(err, &rErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.serverError(c, failure, err, fields...)
	}
}

// validator is implemented by every XxxPatch.
type validator interface {
	Validate() error
}

// bindPatch decodes a patch body and validates it, answering 400 on failure.
func bindPatch(c *gin.Context, p validator) bool {
	if err := c.ShouldBindJSON(p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	if err := p.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func created(c *gin.Context, id int64) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}
