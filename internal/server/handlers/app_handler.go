package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/patisserie-app/admin/internal/shell"
)

// AppHandler answers the two informational calls the desktop shell exposed
// over IPC.
type AppHandler struct {
	logger *zap.Logger
}

// NewAppHandler constructs the shell-info handler.
func NewAppHandler(logger *zap.Logger) *AppHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppHandler{logger: logger}
}

// Version returns the application version.
func (h *AppHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": shell.AppVersion()})
}

// Path returns the application install path.
func (h *AppHandler) Path(c *gin.Context) {
	path, err := shell.AppPath()
	if err != nil {
		h.logger.Error("failed to resolve app path", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to resolve app path"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path})
}
