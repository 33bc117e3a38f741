package engine

import "github.com/patisserie-app/admin/internal/store"

// Display-level pagination over the loaded working set. Only schemas with a
// PageSize use it (transactions, 10 per page); the store itself is never
// paged.

// Paged reports whether the schema partitions its working set for display.
func (v *View) Paged() bool { return v.schema.PageSize > 0 }

// Page returns the current page, always within [1, PageCount].
func (v *View) Page() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// PageCount returns the number of display pages, never less than 1.
func (v *View) PageCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pageCountLocked()
}

// SetPage moves to the requested page, clamped to [1, PageCount].
func (v *View) SetPage(page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = page
	v.clampPageLocked()
}

// NextPage advances one page, clamped at the last page.
func (v *View) NextPage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page++
	v.clampPageLocked()
}

// PrevPage steps back one page, clamped at page 1.
func (v *View) PrevPage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page--
	v.clampPageLocked()
}

// PageRecords returns the slice of the working set visible on the current
// page. For unpaged schemas it is the whole working set.
func (v *View) PageRecords() []store.Document {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.schema.PageSize <= 0 {
		return append([]store.Document(nil), v.records...)
	}

	start := (v.page - 1) * v.schema.PageSize
	if start >= len(v.records) {
		return nil
	}
	end := start + v.schema.PageSize
	if end > len(v.records) {
		end = len(v.records)
	}
	return append([]store.Document(nil), v.records[start:end]...)
}

func (v *View) pageCountLocked() int {
	if v.schema.PageSize <= 0 || len(v.records) == 0 {
		return 1
	}
	return (len(v.records) + v.schema.PageSize - 1) / v.schema.PageSize
}

func (v *View) clampPageLocked() {
	if count := v.pageCountLocked(); v.page > count {
		v.page = count
	}
	if v.page < 1 {
		v.page = 1
	}
}
