package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

// UploadFile handles POST /api/admin/upload
// It saves the image under UPLOAD_DIR and returns its public URL.
func (h *Handlers) UploadFile(c *gin.Context) {
	// 1. Get the file from the request
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type " + ext})
		return
	}

	// 2. Create the upload directory if it doesn't exist
	if err := os.MkdirAll(h.Config.UploadDir, 0o755); err != nil {
		h.serverError(c, "Failed to prepare upload directory", err)
		return
	}

	// 3. Generate a safe unique filename (uuid + extension)
	newFilename := uuid.New().String() + ext
	savePath := filepath.Join(h.Config.UploadDir, newFilename)

	// 4. Save the file
	if err := c.SaveUploadedFile(file, savePath); err != nil {
		h.serverError(c, "Failed to save file", err, zap.String("path", savePath))
		return
	}

	// 5. Return the public URL
	c.JSON(http.StatusOK, gin.H{
		"url": fmt.Sprintf("%s/uploads/%s", h.Config.BaseURL, newFilename),
	})
}
