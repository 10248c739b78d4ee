package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hemant18-09/DOCai/internal/assess"
	"github.com/hemant18-09/DOCai/internal/catalog"
	"github.com/hemant18-09/DOCai/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *catalog.Store) {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "signals.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := catalog.NewStore(catalog.Default())
	assessor := assess.New(store, nil)
	return New(store, db, assessor, 1000, 1000), store
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, decoded
}

func TestServer_GetSignals(t *testing.T) {
	srv, _ := newTestServer(t)

	rec, resp := doJSON(t, srv.Handler(), http.MethodGet, "/api/signals", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp["success"] != true {
		t.Error("expected success envelope")
	}
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got %T", resp["data"])
	}
	if _, ok := data["symptomSignals"]; !ok {
		t.Error("expected symptomSignals in catalog payload")
	}
}

func TestServer_PutSignalsSwapsSnapshot(t *testing.T) {
	srv, store := newTestServer(t)

	doc := `{"symptomSignals": {"cardiac": ["chest pain"]},
	         "contextSignals": {"sudden": ["sudden"]}}`
	rec, resp := doJSON(t, srv.Handler(), http.MethodPut, "/api/signals", doc)

	if rec.Code != http.StatusOK || resp["success"] != true {
		t.Fatalf("put failed: %d %v", rec.Code, resp)
	}

	current := store.Current()
	if len(current.Symptoms) != 1 || current.Symptoms[0].Name != "cardiac" {
		t.Errorf("snapshot not swapped: %+v", current.Symptoms)
	}
}

func TestServer_PutSignalsRejectsGarbage(t *testing.T) {
	srv, store := newTestServer(t)
	before := store.Current()

	rec, resp := doJSON(t, srv.Handler(), http.MethodPut, "/api/signals", `{"symptomSignals": 42}`)

	if rec.Code != http.StatusBadRequest || resp["success"] != false {
		t.Errorf("expected 400 for invalid doc, got %d %v", rec.Code, resp)
	}
	if store.Current() != before {
		t.Error("invalid update must not touch the snapshot")
	}
}

func TestServer_InitRestoresDefault(t *testing.T) {
	srv, store := newTestServer(t)

	// Narrow the catalog, then init back to the embedded default.
	doJSON(t, srv.Handler(), http.MethodPut, "/api/signals",
		`{"symptomSignals": {"cardiac": ["chest pain"]}, "contextSignals": {}}`)

	rec, resp := doJSON(t, srv.Handler(), http.MethodPost, "/api/signals/init", "")
	if rec.Code != http.StatusOK || resp["success"] != true {
		t.Fatalf("init failed: %d %v", rec.Code, resp)
	}

	if len(store.Current().Symptoms) != len(catalog.Default().Symptoms) {
		t.Error("init must restore the default catalog")
	}
}

func TestServer_SymptomCategory(t *testing.T) {
	srv, _ := newTestServer(t)

	rec, resp := doJSON(t, srv.Handler(), http.MethodGet, "/api/signals/symptom/cardiac", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp["category"] != "cardiac" {
		t.Errorf("category = %v", resp["category"])
	}
	symptoms, ok := resp["symptoms"].([]interface{})
	if !ok || len(symptoms) == 0 {
		t.Errorf("expected non-empty symptoms, got %v", resp["symptoms"])
	}
}

func TestServer_ContextCategoryFallsBackToDefault(t *testing.T) {
	srv, _ := newTestServer(t)

	// Replace the catalog with one lacking context categories.
	doJSON(t, srv.Handler(), http.MethodPut, "/api/signals",
		`{"symptomSignals": {"cardiac": ["chest pain"]}, "contextSignals": {}}`)

	_, resp := doJSON(t, srv.Handler(), http.MethodGet, "/api/signals/context/sudden", "")

	contexts, ok := resp["contexts"].([]interface{})
	if !ok || len(contexts) == 0 {
		t.Errorf("expected default fallback contexts, got %v", resp["contexts"])
	}
}

func TestServer_Assess(t *testing.T) {
	srv, _ := newTestServer(t)

	_, resp := doJSON(t, srv.Handler(), http.MethodPost, "/api/assess",
		`{"text": "sudden chest pain and I cannot breathe"}`)

	report, ok := resp["report"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected report object, got %v", resp)
	}
	if report["isEmergency"] != true {
		t.Errorf("expected emergency report, got %v", report)
	}
	if report["risk"].(float64) < 70 {
		t.Errorf("risk = %v", report["risk"])
	}
}

func TestServer_AssessThresholdOverride(t *testing.T) {
	srv, _ := newTestServer(t)

	_, resp := doJSON(t, srv.Handler(), http.MethodPost, "/api/assess",
		`{"text": "chest pain", "threshold": 60}`)

	report := resp["report"].(map[string]interface{})
	if report["isEmergency"] != true {
		t.Errorf("expected emergency at threshold 60, got %v", report)
	}
}

func TestServer_RateLimit(t *testing.T) {
	store := catalog.NewStore(catalog.Default())
	srv := New(store, nil, assess.New(store, nil), 1, 1)
	h := srv.Handler()

	rec1 := httptest.NewRecorder()
	h.ServeHTTP(rec1, httptest.NewRequest(http.MethodGet, "/api/signals", nil))
	if rec1.Code != http.StatusOK {
		t.Fatalf("first request: %d", rec1.Code)
	}

	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, httptest.NewRequest(http.MethodGet, "/api/signals", nil))
	if rec2.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst spent, got %d", rec2.Code)
	}
}
