package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"gamelibrary/backend/internal/config"
	"gamelibrary/backend/internal/database"
	"gamelibrary/backend/internal/handler"
	"gamelibrary/backend/internal/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(config.DriverSQLite, ":memory:", logger.Discard())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db, 10); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	r, err := New(Deps{DB: db, Log: logger.Discard()})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return r, db
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func TestAPIGameLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/genres", map[string]string{"name": "RPG"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create genre: %d %s", w.Code, w.Body)
	}
	rpg := decode[handler.GenreResponse](t, w)

	w = doJSON(t, r, http.MethodPost, "/api/v1/platforms", map[string]string{"name": "SNES"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create platform: %d %s", w.Code, w.Body)
	}
	snes := decode[handler.PlatformResponse](t, w)

	w = doJSON(t, r, http.MethodPost, "/api/v1/games", handler.GameInput{
		Name:        "Chrono Trigger",
		ReleaseDate: "1995-03-11",
		GenreIDs:    []uint{rpg.ID},
		PlatformIDs: []uint{snes.ID},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create game: %d %s", w.Code, w.Body)
	}
	created := decode[handler.GameResponse](t, w)
	if len(created.Genres) != 1 || created.Genres[0].Name != "RPG" || len(created.Platforms) != 1 || created.Platforms[0].Name != "SNES" {
		t.Fatalf("associations not resolved: %+v", created)
	}
	if created.ReleaseDate == nil || *created.ReleaseDate != "1995-03-11" {
		t.Fatalf("unexpected release date: %v", created.ReleaseDate)
	}

	path := "/api/v1/games/" + strconv.FormatUint(uint64(created.ID), 10)
	w = doJSON(t, r, http.MethodPut, path, handler.GameInput{Name: "Chrono Trigger DS"})
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body)
	}
	updated := decode[handler.GameResponse](t, w)
	if updated.Name != "Chrono Trigger DS" || len(updated.Genres) != 0 || updated.ReleaseDate != nil {
		t.Fatalf("update did not overwrite: %+v", updated)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/games", nil)
	if list := decode[[]handler.GameResponse](t, w); w.Code != http.StatusOK || len(list) != 1 {
		t.Fatalf("list: %d %v", w.Code, list)
	}

	if w = doJSON(t, r, http.MethodDelete, path, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", w.Code)
	}
	if w = doJSON(t, r, http.MethodGet, path, nil); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: %d", w.Code)
	}
	if w = doJSON(t, r, http.MethodDelete, path, nil); w.Code != http.StatusNoContent {
		t.Fatalf("second delete must succeed: %d", w.Code)
	}
}

func TestAPIErrors(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/games", handler.GameInput{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty name: %d", w.Code)
	}
	if resp := decode[handler.ErrorResponse](t, w); len(resp.Errors) != 1 || resp.Errors[0].Field != "Name" {
		t.Fatalf("unexpected validation payload: %+v", resp)
	}

	if w = doJSON(t, r, http.MethodPut, "/api/v1/games/42", handler.GameInput{Name: "Ghost"}); w.Code != http.StatusNotFound {
		t.Fatalf("update missing: %d", w.Code)
	}
	if w = doJSON(t, r, http.MethodGet, "/api/v1/games/abc", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/v1/games", handler.GameInput{Name: "Orphan", GenreIDs: []uint{99}})
	if w.Code != http.StatusConflict && w.Code != http.StatusInternalServerError {
		t.Fatalf("unknown genre: %d %s", w.Code, w.Body)
	}
	if list := decode[[]handler.GameResponse](t, doJSON(t, r, http.MethodGet, "/api/v1/games", nil)); len(list) != 0 {
		t.Fatalf("rejected game was stored: %+v", list)
	}
}

func TestAPINewest(t *testing.T) {
	r, _ := newTestRouter(t)
	for _, in := range []handler.GameInput{
		{Name: "Old", ReleaseDate: "1990-01-01"},
		{Name: "New", ReleaseDate: "2024-01-01"},
	} {
		if w := doJSON(t, r, http.MethodPost, "/api/v1/games", in); w.Code != http.StatusCreated {
			t.Fatalf("seed %s: %d", in.Name, w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/games/newest", nil)
	list := decode[[]handler.GameResponse](t, w)
	if w.Code != http.StatusOK || len(list) != 2 || list[0].Name != "New" {
		t.Fatalf("newest: %d %+v", w.Code, list)
	}
}

func TestPages(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games/create", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `name="name"`) {
		t.Fatalf("create form: %d", w.Code)
	}

	w = doForm(r, "/games/create", url.Values{"name": {""}})
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Name is required") {
		t.Fatalf("invalid create: %d %s", w.Code, w.Body)
	}

	w = doForm(r, "/games/create", url.Values{"name": {"Chrono Trigger"}, "release_date": {"1995-03-11"}})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/games" {
		t.Fatalf("create: %d %s", w.Code, w.Body)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Chrono Trigger") {
		t.Fatalf("index: %d %s", w.Code, w.Body)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games/details/1", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "1995-03-11") {
		t.Fatalf("details: %d %s", w.Code, w.Body)
	}

	w = doForm(r, "/games/edit/1", url.Values{"name": {"Chrono Cross"}})
	if w.Code != http.StatusFound {
		t.Fatalf("edit: %d %s", w.Code, w.Body)
	}
	w = doForm(r, "/games/edit/77", url.Values{"name": {"Nothing"}})
	if w.Code != http.StatusNotFound {
		t.Fatalf("edit missing: %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games/delete/1", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Chrono Cross") {
		t.Fatalf("delete confirm: %d %s", w.Code, w.Body)
	}
	if w = doForm(r, "/games/delete/1", url.Values{}); w.Code != http.StatusFound {
		t.Fatalf("delete: %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games/details/1", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("details after delete: %d", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	r, db := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	report := decode[handler.HealthReport](t, w)
	if w.Code != http.StatusOK || report.Status != "Healthy" || len(report.Details) != 1 || report.Details[0].Name != "database" {
		t.Fatalf("healthy: %d %+v", w.Code, report)
	}

	_ = database.Close(db)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if report = decode[handler.HealthReport](t, w); w.Code != http.StatusServiceUnavailable || report.Status != "Unhealthy" {
		t.Fatalf("unhealthy: %d %+v", w.Code, report)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/v1/games", handler.GameInput{Name: "Counted"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	if w.Code != http.StatusOK || !strings.Contains(body, "total_games 1") || !strings.Contains(body, "http_requests_total") {
		t.Fatalf("metrics: %d %s", w.Code, body)
	}
}
