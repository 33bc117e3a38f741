package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/patisserie-app/admin/internal/engine"
	"github.com/patisserie-app/admin/internal/store"
)

// CRUDHandler adapts the mounted view engines to HTTP. One handler serves
// all six record types; the collection path segment picks the view.
type CRUDHandler struct {
	views  map[string]*engine.View
	logger *zap.Logger
}

// NewCRUDHandler constructs the HTTP adapter over the mounted views.
func NewCRUDHandler(views map[string]*engine.View, logger *zap.Logger) *CRUDHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CRUDHandler{views: views, logger: logger}
}

func (h *CRUDHandler) view(c *gin.Context) (*engine.View, bool) {
	name := c.Param("collection")
	v, ok := h.views[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return nil, false
	}
	return v, true
}

type recordPayload struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

func toPayload(docs []store.Document) []recordPayload {
	out := make([]recordPayload, 0, len(docs))
	for _, d := range docs {
		out = append(out, recordPayload{ID: d.ID, Fields: d.Fields})
	}
	return out
}

// List loads the collection and returns the working set; paged views accept
// ?page= and answer with the visible slice plus paging info.
func (h *CRUDHandler) List(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}

	if err := v.Load(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load collection"})
		return
	}

	state, sub := v.State()
	resp := gin.H{
		"state":    state,
		"subState": sub,
		"records":  toPayload(v.Records()),
	}

	if v.Paged() {
		if raw := c.Query("page"); raw != "" {
			if page, err := strconv.Atoi(raw); err == nil {
				v.SetPage(page)
			}
		}
		resp["page"] = v.Page()
		resp["pageCount"] = v.PageCount()
		resp["pageRecords"] = toPayload(v.PageRecords())
	}

	c.JSON(http.StatusOK, resp)
}

// Create runs the full create flow: open form, apply fields, submit. A
// submit missing an identifying field is the documented silent no-op and
// answers 204 with nothing written.
func (h *CRUDHandler) Create(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	v.BeginCreate()
	for name, value := range fields {
		v.SetCreateField(name, value)
	}

	err := v.SubmitCreate(c.Request.Context())
	switch {
	case errors.Is(err, engine.ErrValidationSkipped):
		v.CancelCreate()
		c.Status(http.StatusNoContent)
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create record"})
	default:
		c.JSON(http.StatusCreated, gin.H{"records": toPayload(v.Records())})
	}
}

// Update applies a partial edit to one record.
func (h *CRUDHandler) Update(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := v.Load(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load collection"})
		return
	}

	if err := v.BeginEdit(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	for name, value := range fields {
		v.SetEditField(name, value)
	}

	err := v.SubmitEdit(c.Request.Context())
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to update record"})
	default:
		c.JSON(http.StatusOK, gin.H{"records": toPayload(v.Records())})
	}
}

// DeleteOne removes a single record; the destructive-operation confirmation
// arrives as ?confirm=true.
func (h *CRUDHandler) DeleteOne(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}

	err := v.DeleteOne(c.Request.Context(), c.Param("id"), queryConfirm(c))
	switch {
	case errors.Is(err, engine.ErrConfirmationDeclined):
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation required"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete record"})
	default:
		c.JSON(http.StatusOK, gin.H{"records": toPayload(v.Records())})
	}
}

// DeleteAll wipes the whole collection; successes stand even when part of
// the batch fails.
func (h *CRUDHandler) DeleteAll(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}

	err := v.DeleteAll(c.Request.Context(), queryConfirm(c))
	switch {
	case errors.Is(err, engine.ErrConfirmationDeclined):
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation required"})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete collection"})
	default:
		c.JSON(http.StatusOK, gin.H{"records": toPayload(v.Records())})
	}
}

// queryConfirm turns the ?confirm=true query parameter into the engine's
// interactive confirmation callback.
func queryConfirm(c *gin.Context) engine.ConfirmFunc {
	confirmed := c.Query("confirm") == "true"
	return func(string) bool { return confirmed }
}
