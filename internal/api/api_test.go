package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"

	"github.com/pinwords/keyword-backend/internal/auth"
	"github.com/pinwords/keyword-backend/internal/model"
	"github.com/pinwords/keyword-backend/internal/service"
	"github.com/pinwords/keyword-backend/internal/store/sqlite"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	st, err := sqlite.New(filepath.Join(t.TempDir(), "keywords.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = st.DB().Close() })
	svc := service.NewKeywordService(st)
	return NewRouter(svc, auth.NewMockAuthorizer(), "default")
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+auth.LocalDevAPIKey)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestAPI_RequiresAuthorization(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/v0/projects/default/targets", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("no header: expected 401, got %d", rr.Code)
	}

	req = httptest.NewRequest("GET", "/v0/projects/default/targets", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("wrong key: expected 401, got %d", rr.Code)
	}
}

func TestAPI_HealthIsPublic(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/v0/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestAPI_TargetLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, "POST", "/v0/projects/default/targets", map[string]string{"name": "  Vegan Dinner  "})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var created model.MainTarget
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created target: %v", err)
	}
	if created.Name != "Vegan Dinner" || created.Priority != model.PriorityMedium {
		t.Fatalf("unexpected created target: %+v", created)
	}

	rr = doJSON(t, router, "POST", "/v0/projects/default/targets", map[string]string{"name": "   "})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("blank name: expected 400, got %d", rr.Code)
	}

	rr = doJSON(t, router, "PATCH", "/v0/projects/default/targets/"+created.ID, map[string]string{"priority": "urgent"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad priority: expected 400, got %d", rr.Code)
	}

	rr = doJSON(t, router, "PATCH", "/v0/projects/default/targets/"+created.ID, map[string]string{"priority": "high"})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("update: expected 204, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, router, "GET", "/v0/projects/default/targets/"+created.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rr.Code)
	}
	var got model.MainTarget
	_ = json.Unmarshal(rr.Body.Bytes(), &got)
	if got.Priority != model.PriorityHigh {
		t.Fatalf("priority = %q, want high", got.Priority)
	}

	rr = doJSON(t, router, "GET", "/v0/projects/default/targets/nope", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing target: expected 404, got %d", rr.Code)
	}

	rr = doJSON(t, router, "DELETE", "/v0/projects/default/targets/"+created.ID, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rr.Code)
	}
}

func TestAPI_BulkAddKeywords(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, "POST", "/v0/projects/default/targets", map[string]string{"name": "Vegan Dinner"})
	var created model.MainTarget
	_ = json.Unmarshal(rr.Body.Bytes(), &created)

	rr = doJSON(t, router, "POST", "/v0/projects/default/targets/"+created.ID+"/keywords",
		map[string][]string{"keywords": {"Easy Meals", "easy meals", "Quick Dinner", ""}})
	if rr.Code != http.StatusOK {
		t.Fatalf("bulk add: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var res model.BulkAddResult
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(res.Added) != 2 || len(res.Duplicates) != 1 || len(res.Skipped) != 1 {
		t.Fatalf("unexpected classification: %+v", res)
	}

	rr = doJSON(t, router, "POST", "/v0/projects/default/targets/"+created.ID+"/keywords", map[string][]string{"keywords": {}})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("empty list: expected 400, got %d", rr.Code)
	}
}

func TestAPI_ReorderValidation(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, "POST", "/v0/projects/default/targets", map[string]string{"name": "a"})
	doJSON(t, router, "POST", "/v0/projects/default/targets", map[string]string{"name": "b"})

	rr := doJSON(t, router, "POST", "/v0/projects/default/targets/reorder", map[string]int{"oldIndex": 0, "newIndex": 5})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("out of range: expected 400, got %d", rr.Code)
	}

	rr = doJSON(t, router, "POST", "/v0/projects/default/targets/reorder", map[string]int{"oldIndex": 0, "newIndex": 1})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("reorder: expected 204, got %d", rr.Code)
	}
}

func TestAPI_ArchiveView(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, "POST", "/v0/projects/default/targets", map[string]string{"name": "Done Soon"})
	var created model.MainTarget
	_ = json.Unmarshal(rr.Body.Bytes(), &created)

	rr = doJSON(t, router, "POST", "/v0/projects/default/targets/"+created.ID+"/toggle", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("toggle: expected 204, got %d", rr.Code)
	}

	rr = doJSON(t, router, "GET", "/v0/projects/default/archive", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("archive: expected 200, got %d", rr.Code)
	}
	var archived model.ArchivedItems
	_ = json.Unmarshal(rr.Body.Bytes(), &archived)
	if len(archived.MainTargets) != 1 || archived.MainTargets[0].Name != "Done Soon" {
		t.Fatalf("unexpected archive: %+v", archived)
	}

	rr = doJSON(t, router, "GET", "/v0/projects/default/active", nil)
	var active model.ActiveItems
	_ = json.Unmarshal(rr.Body.Bytes(), &active)
	if len(active.MainTargets) != 0 {
		t.Fatalf("active view should be empty: %+v", active)
	}
}

func TestAPI_ImportUpgradesLegacyDocument(t *testing.T) {
	router := newTestRouter(t)

	legacy := []byte(`{"mainTargets": [{"id": "t1", "name": "Fall Fashion", "relevantKeywords": ["Cozy Sweaters"]}]}`)
	req := httptest.NewRequest("PUT", "/v0/projects/default/import", bytes.NewReader(legacy))
	req.Header.Set("Authorization", "Bearer "+auth.LocalDevAPIKey)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("import: expected 204, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, router, "GET", "/v0/projects/default/export", nil)
	var doc model.KeywordData
	if err := json.Unmarshal(rr.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if len(doc.MainTargets) != 1 || len(doc.MainTargets[0].RelevantKeywords) != 1 {
		t.Fatalf("unexpected export: %+v", doc)
	}
	if doc.MainTargets[0].RelevantKeywords[0].Text != "Cozy Sweaters" {
		t.Fatalf("legacy keyword lost: %+v", doc.MainTargets[0])
	}

	req = httptest.NewRequest("PUT", "/v0/projects/default/import", bytes.NewReader([]byte(`{"folders": []}`)))
	req.Header.Set("Authorization", "Bearer "+auth.LocalDevAPIKey)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad document: expected 400, got %d", rr.Code)
	}
}
