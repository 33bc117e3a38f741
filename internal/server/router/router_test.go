package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/patisserie-app/admin/internal/engine"
	"github.com/patisserie-app/admin/internal/schema"
	"github.com/patisserie-app/admin/internal/seed"
	"github.com/patisserie-app/admin/internal/server/handlers"
	"github.com/patisserie-app/admin/internal/store"
	"github.com/patisserie-app/admin/internal/store/memory"
)

func newTestRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()

	ms := memory.New()
	reg := schema.NewRegistry()
	views := engine.MountAll(reg, ms, nil)

	crud := handlers.NewCRUDHandler(views, nil)
	testData := handlers.NewTestDataHandler(seed.New(ms, nil), nil)
	app := handlers.NewAppHandler(nil)

	return New(crud, testData, app, nil), ms
}

func doJSON(t *testing.T, r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type recordsResponse struct {
	State    string `json:"state"`
	SubState string `json:"subState"`
	Records  []struct {
		ID     string         `json:"id"`
		Fields map[string]any `json:"fields"`
	} `json:"records"`
	Page      int `json:"page"`
	PageCount int `json:"pageCount"`
}

func decodeRecords(t *testing.T, w *httptest.ResponseRecorder) recordsResponse {
	t.Helper()
	var resp recordsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return resp
}

func TestCreateAndListProducts(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/collections/products",
		`{"name":"Croissant","price":2.5,"targetType":"pieces"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/collections/products", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decodeRecords(t, w)
	if resp.State != "ready" {
		t.Fatalf("expected ready state, got %q", resp.State)
	}
	if len(resp.Records) != 1 || resp.Records[0].Fields["name"] != "Croissant" {
		t.Fatalf("unexpected records: %+v", resp.Records)
	}
}

func TestCreateMissingIdentifyingFieldAnswersNoContent(t *testing.T) {
	r, ms := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/collections/products", `{"price":2.5}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	docs, _ := ms.List(context.Background(), store.CollectionProducts)
	if len(docs) != 0 {
		t.Fatalf("silent no-op must write nothing, got %d docs", len(docs))
	}
}

func TestPartialUpdatePreservesOtherFields(t *testing.T) {
	r, ms := newTestRouter(t)
	ctx := context.Background()

	id, err := ms.Create(ctx, store.CollectionProducts, map[string]any{"name": "Croissant", "price": 2.5})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := doJSON(t, r, http.MethodPatch, "/api/collections/products/"+id, `{"price":3.0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	docs, _ := ms.List(ctx, store.CollectionProducts)
	if docs[0].Fields["price"] != 3.0 || docs[0].Fields["name"] != "Croissant" {
		t.Fatalf("partial update broke fields: %+v", docs[0].Fields)
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPatch, "/api/collections/products/nope", `{"price":3.0}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	r, ms := newTestRouter(t)
	ctx := context.Background()

	id, _ := ms.Create(ctx, store.CollectionProducts, map[string]any{"name": "Croissant"})

	w := doJSON(t, r, http.MethodDelete, "/api/collections/products/"+id, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unconfirmed delete: expected 400, got %d", w.Code)
	}
	if docs, _ := ms.List(ctx, store.CollectionProducts); len(docs) != 1 {
		t.Fatal("unconfirmed delete must not remove the record")
	}

	w = doJSON(t, r, http.MethodDelete, "/api/collections/products/"+id+"?confirm=true", "")
	if w.Code != http.StatusOK {
		t.Fatalf("confirmed delete: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if docs, _ := ms.List(ctx, store.CollectionProducts); len(docs) != 0 {
		t.Fatal("confirmed delete must remove the record")
	}
}

func TestDeleteAllCollection(t *testing.T) {
	r, ms := newTestRouter(t)
	ctx := context.Background()

	for _, name := range []string{"Croissant", "Macaron", "Baguette"} {
		if _, err := ms.Create(ctx, store.CollectionProducts, map[string]any{"name": name}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	w := doJSON(t, r, http.MethodDelete, "/api/collections/products?confirm=true", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if docs, _ := ms.List(ctx, store.CollectionProducts); len(docs) != 0 {
		t.Fatalf("expected empty collection, got %d docs", len(docs))
	}
}

func TestUnknownCollection(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/collections/pastries", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestTransactionsListIsPaged(t *testing.T) {
	r, ms := newTestRouter(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := ms.Create(ctx, store.CollectionTransactions, map[string]any{
			"montant": float64(i + 1),
			"raison":  "Hlib",
			"type":    "expense",
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/collections/transactions?page=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decodeRecords(t, w)
	if resp.Page != 2 || resp.PageCount != 2 {
		t.Fatalf("expected page 2 of 2, got %d of %d", resp.Page, resp.PageCount)
	}
	if len(resp.Records) != 12 {
		t.Fatalf("working set must stay complete, got %d", len(resp.Records))
	}
}

func TestTestDataGenerateAndPurge(t *testing.T) {
	r, ms := newTestRouter(t)
	ctx := context.Background()

	w := doJSON(t, r, http.MethodPost, "/api/testdata/products?count=3", "")
	if w.Code != http.StatusOK {
		t.Fatalf("generate: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if docs, _ := ms.List(ctx, store.CollectionProducts); len(docs) != 3 {
		t.Fatalf("expected 3 generated products, got %d", len(docs))
	}

	w = doJSON(t, r, http.MethodDelete, "/api/testdata", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unconfirmed purge: expected 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/testdata?confirm=true", "")
	if w.Code != http.StatusOK {
		t.Fatalf("purge: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if docs, _ := ms.List(ctx, store.CollectionProducts); len(docs) != 0 {
		t.Fatal("purge must empty the products collection")
	}
}

func TestTestDataGenerateUnknownCollection(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/testdata/pastries", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAppInfoEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/app/version", "")
	if w.Code != http.StatusOK {
		t.Fatalf("version: expected 200, got %d", w.Code)
	}
	var version struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &version); err != nil || version.Version == "" {
		t.Fatalf("unexpected version payload: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", w.Code)
	}
}
