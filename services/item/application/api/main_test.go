package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/dune-crafting-api/pkg/app"
	"github.com/ghuser/dune-crafting-api/pkg/config"
	"github.com/ghuser/dune-crafting-api/pkg/database/dbtest"
	"github.com/ghuser/dune-crafting-api/pkg/httpx"
	"github.com/ghuser/dune-crafting-api/pkg/logger"
	"github.com/ghuser/dune-crafting-api/services/item/application/handlers"
	appsvcs "github.com/ghuser/dune-crafting-api/services/item/application/services"
)

const catalogJSON = `[
  {"name": "Ornithopter", "description": "Light scout aircraft", "item_type": "Vehicle",
   "power_consumption": 5, "power_generation": 0,
   "crafting_materials": [{"item_name": "Plastanium", "quantity": 7}]},
  {"name": "Energy Shield Generator", "description": "Base shield", "item_type": "Building",
   "power_consumption": 40, "power_generation": 0,
   "crafting_materials": [{"item_name": "Holtzman Actuator", "quantity": 3}, {"item_name": "Copper Wire", "quantity": 10}]},
  {"name": "Spice Melange", "description": "The spice", "item_type": "Component",
   "crafting_materials": []}
]`

func passthrough(next http.Handler) http.Handler { return next }

// newTestRouter builds the full middleware stack over a freshly populated
// SQLite catalog. Each call gets its own rate-limit counters.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dataPath := filepath.Join(t.TempDir(), "items_data.json")
	if err := os.WriteFile(dataPath, []byte(catalogJSON), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	cfg := &config.Config{
		CatalogDataPath:      dataPath,
		RateLimitListItems:   20,
		RateLimitGetItem:     60,
		RateLimitSearchItems: 10,
		RateLimitWindow:      time.Minute,
		CORSAllowedOrigins:   "*",
	}
	a := &app.Application{
		Config: cfg,
		Db:     dbtest.NewTestDB(t),
		Logger: logger.NewWithWriter(io.Discard, "error"),
	}

	svcs := appsvcs.New(a)
	if _, err := svcs.Loader.EnsurePopulated(context.Background()); err != nil {
		t.Fatalf("populate: %v", err)
	}

	r := httpx.NewRouter(httpx.ServerConfig{CORSAllowedOrigins: "*"}, passthrough, passthrough, passthrough, passthrough)
	r.Route("/api", func(r chi.Router) {
		ItemRoutes(r, a, svcs)
	})
	return r
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func TestGetItem_Ornithopter(t *testing.T) {
	h := newTestRouter(t)

	rr := get(t, h, "/api/v1/items/1")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	item := decode[handlers.ItemResponse](t, rr)

	if item.ID != 1 || item.Name != "Ornithopter" || item.ItemType != "Vehicle" {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.PowerConsumption != 5 || item.PowerGeneration != 0 {
		t.Errorf("unexpected power fields: %+v", item)
	}
	want := handlers.MaterialResponse{ItemName: "Plastanium", Quantity: 4}
	if len(item.DeepDesertMaterials) != 1 || item.DeepDesertMaterials[0] != want {
		t.Errorf("deep desert materials: got %+v, want [%+v]", item.DeepDesertMaterials, want)
	}
	if len(item.CraftingMaterials) != 1 || item.CraftingMaterials[0].Quantity != 7 {
		t.Errorf("base materials must be unchanged: %+v", item.CraftingMaterials)
	}
}

func TestGetItem_Errors(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantError  string
	}{
		{"unknown id", "/api/v1/items/99999", http.StatusNotFound, "Item with ID 99999 not found"},
		{"zero id", "/api/v1/items/0", http.StatusNotFound, "Item with ID 0 not found"},
		{"non-integer id", "/api/v1/items/abc", http.StatusUnprocessableEntity, `invalid item id: "abc" is not an integer`},
		{"decimal id", "/api/v1/items/1.5", http.StatusUnprocessableEntity, `invalid item id: "1.5" is not an integer`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, h, tt.path)
			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
			body := decode[map[string]string](t, rr)
			if body["error"] != tt.wantError {
				t.Errorf("error: got %q, want %q", body["error"], tt.wantError)
			}
		})
	}
}

func TestListItems(t *testing.T) {
	h := newTestRouter(t)

	rr := get(t, h, "/api/v1/items")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	items := decode[[]handlers.ItemResponse](t, rr)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	for _, item := range items {
		if len(item.DeepDesertMaterials) != len(item.CraftingMaterials) {
			t.Errorf("%s: deep desert list length %d != %d", item.Name, len(item.DeepDesertMaterials), len(item.CraftingMaterials))
			continue
		}
		for i, m := range item.CraftingMaterials {
			dd := item.DeepDesertMaterials[i]
			if dd.ItemName != m.ItemName || dd.Quantity != (m.Quantity+1)/2 {
				t.Errorf("%s: material %d: got %+v for base %+v", item.Name, i, dd, m)
			}
		}
	}

	// Empty material lists render as [] rather than null.
	raw := get(t, h, "/api/v1/items/3").Body.String()
	var generic map[string]any
	if err := json.Unmarshal([]byte(raw), &generic); err != nil {
		t.Fatal(err)
	}
	if _, ok := generic["deep_desert_materials"].([]any); !ok {
		t.Errorf("expected deep_desert_materials to be an array, got %s", raw)
	}
}

func TestSearchItems(t *testing.T) {
	h := newTestRouter(t)

	for _, path := range []string{"/api/v1/items/search/?name=shield", "/api/v1/items/search?name=SHIELD"} {
		rr := get(t, h, path)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", path, rr.Code, rr.Body.String())
		}
		items := decode[[]handlers.ItemResponse](t, rr)
		if len(items) != 1 || items[0].Name != "Energy Shield Generator" {
			t.Fatalf("%s: unexpected results: %+v", path, items)
		}
		if items[0].DeepDesertMaterials[0].Quantity != 2 || items[0].DeepDesertMaterials[1].Quantity != 5 {
			t.Errorf("unexpected deep desert materials: %+v", items[0].DeepDesertMaterials)
		}
	}
}

func TestSearchItems_Errors(t *testing.T) {
	h := newTestRouter(t)

	rr := get(t, h, "/api/v1/items/search/?name=thumper")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("no match: expected 404, got %d", rr.Code)
	}
	if body := decode[map[string]string](t, rr); body["error"] != "No items found with the name 'thumper'" {
		t.Errorf("unexpected error: %q", body["error"])
	}

	rr = get(t, h, "/api/v1/items/search/")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing name: expected 422, got %d", rr.Code)
	}
	body := decode[handlers.ValidationErrorResponse](t, rr)
	if _, ok := body.Fields["name"]; !ok {
		t.Errorf("expected name field error, got %+v", body)
	}
}

func TestRateLimit_ListItems(t *testing.T) {
	h := newTestRouter(t)

	for i := 1; i <= 20; i++ {
		if rr := get(t, h, "/api/v1/items"); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rr.Code)
		}
	}

	rr := get(t, h, "/api/v1/items")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("request 21: expected 429, got %d", rr.Code)
	}
	if body := decode[map[string]string](t, rr); body["error"] != "Rate limit exceeded: 20 per 1 minute" {
		t.Errorf("unexpected 429 body: %v", body)
	}

	// Other endpoints keep their own budget.
	if rr := get(t, h, "/api/v1/items/1"); rr.Code != http.StatusOK {
		t.Fatalf("get-by-id after list limit: expected 200, got %d", rr.Code)
	}
}

func TestRateLimit_GetItem(t *testing.T) {
	h := newTestRouter(t)

	for i := 1; i <= 60; i++ {
		path := fmt.Sprintf("/api/v1/items/%d", i%3+1)
		if rr := get(t, h, path); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rr.Code)
		}
	}
	if rr := get(t, h, "/api/v1/items/1"); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("request 61: expected 429, got %d", rr.Code)
	}
}

func TestRateLimit_SearchSharedAcrossSpellings(t *testing.T) {
	h := newTestRouter(t)

	for i := 1; i <= 10; i++ {
		path := "/api/v1/items/search/?name=spice"
		if i%2 == 0 {
			path = "/api/v1/items/search?name=spice"
		}
		if rr := get(t, h, path); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rr.Code)
		}
	}
	if rr := get(t, h, "/api/v1/items/search?name=spice"); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("request 11: expected 429, got %d", rr.Code)
	}
}

func TestRateLimit_ForwardedHeadersDoNotChangeOrigin(t *testing.T) {
	h := newTestRouter(t)

	codes := map[int]int{}
	for i := 1; i <= 21; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/items", http.NoBody)
		req.RemoteAddr = "203.0.113.7:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("192.0.2.%d", i))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes[rr.Code]++
		if i == 21 && rr.Code != http.StatusTooManyRequests {
			t.Fatalf("request 21: expected 429, got %d", rr.Code)
		}
	}
	if codes[http.StatusOK] != 20 {
		t.Errorf("expected 20 allowed requests, got %v", codes)
	}
}

func TestSearchItems_EmptyTermMatchesAll(t *testing.T) {
	h := newTestRouter(t)

	for _, path := range []string{"/api/v1/items/search/?name=", "/api/v1/items/search?name"} {
		rr := get(t, h, path)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", path, rr.Code, rr.Body.String())
		}
		items := decode[[]handlers.ItemResponse](t, rr)
		if len(items) != 3 {
			t.Fatalf("%s: expected all 3 items, got %d", path, len(items))
		}
		if items[0].Name != "Ornithopter" {
			t.Errorf("%s: expected id order, first item %q", path, items[0].Name)
		}
	}
}
