package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/patisserie-app/admin/internal/engine"
	"github.com/patisserie-app/admin/internal/schema"
	"github.com/patisserie-app/admin/internal/seed"
)

// TestDataHandler exposes the synthetic data facility: generate, purge, and
// the panel log.
type TestDataHandler struct {
	generator *seed.Generator
	logger    *zap.Logger
}

// NewTestDataHandler constructs the HTTP adapter over the generator.
func NewTestDataHandler(generator *seed.Generator, logger *zap.Logger) *TestDataHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TestDataHandler{generator: generator, logger: logger}
}

// Generate writes ?count random records (default 5) into one collection.
func (h *TestDataHandler) Generate(c *gin.Context) {
	count := 5
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
			return
		}
		count = n
	}

	err := h.generator.Generate(c.Request.Context(), c.Param("collection"), count)
	switch {
	case errors.Is(err, schema.ErrUnknownRecordType):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "generation failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"log": h.generator.Log()})
	}
}

// GenerateAll seeds every collection at the default counts. Failures inside
// the chain are logged to the panel, never surfaced as an HTTP error.
func (h *TestDataHandler) GenerateAll(c *gin.Context) {
	h.generator.GenerateAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"log": h.generator.Log()})
}

// Purge deletes every document in every collection after ?confirm=true.
func (h *TestDataHandler) Purge(c *gin.Context) {
	confirmed := c.Query("confirm") == "true"
	err := h.generator.DeleteAllCollections(c.Request.Context(), func(string) bool { return confirmed })
	switch {
	case errors.Is(err, engine.ErrConfirmationDeclined):
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation required"})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "purge failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"log": h.generator.Log()})
	}
}

// Log returns the accumulated panel log lines.
func (h *TestDataHandler) Log(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"log": h.generator.Log()})
}
