// Package engine is the generic CRUD view engine: one View per record type,
// driven entirely by its schema. The six dashboard screens are six mounts of
// this one component; adding a seventh record type requires a schema entry
// and no new control flow.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/patisserie-app/admin/internal/schema"
	"github.com/patisserie-app/admin/internal/store"
)

var (
	// ErrValidationSkipped marks a create submit dropped because an
	// identifying field was absent. No record is written and the form
	// stays open; callers treat it as a non-event, not a failure.
	ErrValidationSkipped = errors.New("engine: create skipped, identifying field missing")
	// ErrConfirmationDeclined marks a destructive operation abandoned at the
	// confirmation step.
	ErrConfirmationDeclined = errors.New("engine: confirmation declined")
	// ErrNoDraft is returned when a submit arrives with no open form.
	ErrNoDraft = errors.New("engine: no draft in progress")
)

// ConfirmFunc answers an interactive confirmation prompt.
type ConfirmFunc func(prompt string) bool

// View is one mounted CRUD screen bound to a record-type schema and its
// backing collection.
type View struct {
	schema schema.RecordSchema
	store  store.DocumentStore
	logger *zap.Logger
	now    func() time.Time

	mu          sync.Mutex
	state       State
	sub         SubState
	records     []store.Document
	createDraft map[string]any
	editingID   string
	editBase    map[string]any
	editChanges map[string]any
	page        int
}

// NewView mounts a view instance for the given schema.
func NewView(s schema.RecordSchema, ds store.DocumentStore, logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &View{
		schema: s,
		store:  ds,
		logger: logger,
		now:    time.Now,
		state:  StateIdle,
		sub:    SubViewing,
		page:   1,
	}
}

// MountAll builds one view per registered record type, each with a child
// logger named after its collection.
func MountAll(reg *schema.Registry, ds store.DocumentStore, logger *zap.Logger) map[string]*View {
	if logger == nil {
		logger = zap.NewNop()
	}
	views := make(map[string]*View)
	for _, recordType := range reg.Types() {
		s, err := reg.Get(recordType)
		if err != nil {
			continue
		}
		views[recordType] = NewView(s, ds, logger.Named(recordType))
	}
	return views
}

// Schema returns the schema the view is bound to.
func (v *View) Schema() schema.RecordSchema { return v.schema }

// State reports the current outer and layered states.
func (v *View) State() (State, SubState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state, v.sub
}

// Records returns a copy of the working set.
func (v *View) Records() []store.Document {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]store.Document(nil), v.records...)
}

// Load fetches the whole collection and replaces the working set. On failure
// the previous working set stays visible and the view parks in StateFailed;
// a later Load retries from there.
func (v *View) Load(ctx context.Context) error {
	v.mu.Lock()
	v.state = StateLoading
	v.mu.Unlock()

	docs, err := v.store.List(ctx, v.schema.Collection)
	if err != nil {
		v.logger.Error("load failed", zap.String("collection", v.schema.Collection), zap.Error(err))
		v.mu.Lock()
		v.state = StateFailed
		v.mu.Unlock()
		return err
	}

	v.sortDocuments(docs)

	v.mu.Lock()
	v.records = docs
	v.state = StateReady
	v.clampPageLocked()
	v.mu.Unlock()

	v.logger.Debug("loaded working set",
		zap.String("collection", v.schema.Collection),
		zap.Int("count", len(docs)))
	return nil
}

// BeginCreate opens a blank form seeded with the schema defaults, discarding
// any edit in progress.
func (v *View) BeginCreate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.discardEditLocked()
	v.createDraft = v.schema.Defaults()
	v.sub = SubCreating
}

// SetCreateField writes one form field. A no-op when no create is open.
func (v *View) SetCreateField(name string, value any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.createDraft == nil {
		return
	}
	v.createDraft[name] = value
}

// SubmitCreate validates, coerces and writes the form, then reloads. A
// missing identifying field makes the whole submit a silent no-op
// (ErrValidationSkipped); a store failure leaves the form open with its
// values intact.
func (v *View) SubmitCreate(ctx context.Context) error {
	v.mu.Lock()
	if v.createDraft == nil {
		v.mu.Unlock()
		return ErrNoDraft
	}
	draft := copyDraft(v.createDraft)
	v.mu.Unlock()

	for _, name := range v.schema.Identifying {
		if isMissing(draft[name]) {
			v.logger.Debug("create skipped, identifying field missing",
				zap.String("collection", v.schema.Collection),
				zap.String("field", name))
			return ErrValidationSkipped
		}
	}

	fields := v.coerce(draft)
	if v.schema.Derive != nil {
		v.schema.Derive(fields, v.now())
	}
	if v.schema.Normalize != nil {
		v.schema.Normalize(fields)
	}

	id, err := v.store.Create(ctx, v.schema.Collection, fields)
	if err != nil {
		v.logger.Error("create failed", zap.String("collection", v.schema.Collection), zap.Error(err))
		return err
	}

	v.mu.Lock()
	v.createDraft = nil
	v.sub = SubViewing
	v.mu.Unlock()

	v.logger.Info("record created",
		zap.String("collection", v.schema.Collection),
		zap.String("id", id))
	return v.Load(ctx)
}

// CancelCreate discards the form without touching the store.
func (v *View) CancelCreate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.createDraft = nil
	if v.sub == SubCreating {
		v.sub = SubViewing
	}
}

// BeginEdit copies the target record into an editable draft. Only one record
// can be in edit mode per view; starting a new edit silently discards an
// uncommitted one, and any open create form is dropped as well.
func (v *View) BeginEdit(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	var target *store.Document
	for i := range v.records {
		if v.records[i].ID == id {
			target = &v.records[i]
			break
		}
	}
	if target == nil {
		return store.ErrNotFound
	}

	v.createDraft = nil
	v.editingID = id
	v.editBase = copyDraft(target.Fields)
	v.editChanges = make(map[string]any)
	v.sub = SubEditing
	return nil
}

// EditingID reports which record is in edit mode, if any.
func (v *View) EditingID() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editingID, v.editingID != ""
}

// SetEditField records one changed field in the draft.
func (v *View) SetEditField(name string, value any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.editingID == "" {
		return
	}
	v.editChanges[name] = value
}

// SubmitEdit writes the changed fields as a partial update, never a
// full-document overwrite, then clears edit state and reloads. On failure
// the draft survives.
func (v *View) SubmitEdit(ctx context.Context) error {
	v.mu.Lock()
	if v.editingID == "" {
		v.mu.Unlock()
		return ErrNoDraft
	}
	id := v.editingID
	changes := copyDraft(v.editChanges)
	v.mu.Unlock()

	fields := v.coerce(changes)
	if v.schema.Normalize != nil {
		v.schema.Normalize(fields)
	}

	// Coercion and normalization can empty the change set (every touched
	// value unparseable, or a stripped pin). An empty update must never
	// reach the store: backends treat it as anything from an error to a
	// whole-document replace.
	if len(fields) > 0 {
		if err := v.store.Update(ctx, v.schema.Collection, id, fields); err != nil {
			v.logger.Error("update failed",
				zap.String("collection", v.schema.Collection),
				zap.String("id", id),
				zap.Error(err))
			return err
		}
	}

	v.mu.Lock()
	v.discardEditLocked()
	v.mu.Unlock()

	return v.Load(ctx)
}

// CancelEdit discards the draft; no store interaction.
func (v *View) CancelEdit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.discardEditLocked()
}

// DeleteOne removes one record after interactive confirmation. Declining
// abandons the operation with ErrConfirmationDeclined.
func (v *View) DeleteOne(ctx context.Context, id string, confirm ConfirmFunc) error {
	if confirm == nil || !confirm(fmt.Sprintf("Delete this %s record?", v.schema.Type)) {
		return ErrConfirmationDeclined
	}

	if err := v.store.Delete(ctx, v.schema.Collection, id); err != nil {
		v.logger.Error("delete failed",
			zap.String("collection", v.schema.Collection),
			zap.String("id", id),
			zap.Error(err))
		return err
	}

	return v.Load(ctx)
}

// DeleteAll wipes the whole collection after confirmation. Deletes are
// dispatched concurrently; the batch settles as one unit and a partial
// failure surfaces as a single error with no rollback of the successes.
func (v *View) DeleteAll(ctx context.Context, confirm ConfirmFunc) error {
	prompt := fmt.Sprintf("Are you sure you want to delete ALL %s? This action cannot be undone.", v.schema.Type)
	if confirm == nil || !confirm(prompt) {
		return ErrConfirmationDeclined
	}

	docs, err := v.store.List(ctx, v.schema.Collection)
	if err != nil {
		v.logger.Error("delete-all list failed", zap.String("collection", v.schema.Collection), zap.Error(err))
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, doc := range docs {
		doc := doc
		g.Go(func() error {
			return v.store.Delete(gctx, v.schema.Collection, doc.ID)
		})
	}
	batchErr := g.Wait()
	if batchErr != nil {
		v.logger.Error("delete-all batch failed",
			zap.String("collection", v.schema.Collection),
			zap.Int("dispatched", len(docs)),
			zap.Error(batchErr))
	} else {
		v.logger.Info("collection cleared",
			zap.String("collection", v.schema.Collection),
			zap.Int("deleted", len(docs)))
	}

	if err := v.Load(ctx); err != nil && batchErr == nil {
		return err
	}
	return batchErr
}

func (v *View) discardEditLocked() {
	v.editingID = ""
	v.editBase = nil
	v.editChanges = nil
	if v.sub == SubEditing {
		v.sub = SubViewing
	}
}

// coerce converts draft values to their schema storage types. Unparseable
// values are dropped from the write rather than failing it, matching the
// dashboard's loose form handling; fields the schema does not know pass
// through untouched.
func (v *View) coerce(draft map[string]any) map[string]any {
	fields := make(map[string]any, len(draft))
	for name, value := range draft {
		f, ok := v.schema.Field(name)
		if !ok {
			fields[name] = value
			continue
		}
		coerced, err := schema.Coerce(f, value)
		if err != nil {
			v.logger.Debug("dropping uncoercible field",
				zap.String("collection", v.schema.Collection),
				zap.String("field", name),
				zap.Error(err))
			continue
		}
		fields[name] = coerced
	}
	return fields
}

func (v *View) sortDocuments(docs []store.Document) {
	if v.schema.SortField == "" {
		return
	}
	field := v.schema.SortField
	desc := v.schema.SortDesc
	sort.SliceStable(docs, func(i, j int) bool {
		if desc {
			return lessValue(docs[j].Fields[field], docs[i].Fields[field])
		}
		return lessValue(docs[i].Fields[field], docs[j].Fields[field])
	})
}

// lessValue orders two field values: numerically when both parse as numbers,
// lexicographically otherwise (RFC3339 instants order correctly as strings).
func lessValue(a, b any) bool {
	fa, aok := toFloat(a)
	fb, bok := toFloat(b)
	if aok && bok {
		return fa < fb
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// isMissing mirrors the dashboard's falsy check on identifying fields: nil,
// empty string and numeric zero all block the create.
func isMissing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	if f, ok := toFloat(v); ok {
		return f == 0
	}
	return false
}

func copyDraft(draft map[string]any) map[string]any {
	out := make(map[string]any, len(draft))
	for k, v := range draft {
		out[k] = v
	}
	return out
}
