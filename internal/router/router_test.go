// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests drive the full HTTP stack against a fallback-only
// storage facade backed by a temporary data file.
package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"devfolio/internal/document"
	"devfolio/internal/filestore"
	"devfolio/internal/handlers"
	"devfolio/internal/metrics"
	"devfolio/internal/middleware"
	"devfolio/internal/models"
	"devfolio/internal/store"
	"devfolio/internal/theme"
)

const testKey = "test-admin-key"

// testRouter builds the router on a facade with no primary store.
func testRouter(t *testing.T) chi.Router {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolio.json")
	f := store.NewFacade(store.Options{
		Fallback: func() document.Store {
			return filestore.NewFallback(path, filestore.SeedOptions{Disabled: true})
		},
	})
	f.Initialize(context.Background())

	limiter := middleware.NewRateLimiter(1000, 1000)
	t.Cleanup(limiter.Stop)

	engine := theme.New(f, theme.Options{})
	return New(Deps{
		Public:  handlers.NewPublic(f, engine),
		Admin:   handlers.NewAdmin(f),
		Themes:  handlers.NewThemes(engine),
		Health:  handlers.Health(f),
		Metrics: metrics.New(),
		APIKey:  testKey,
		Limiter: limiter,
	})
}

// do sends a request with an optional JSON body. Admin paths carry the key.
func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.HasPrefix(path, "/api/admin") {
		req.Header.Set(middleware.APIKeyHeader, testKey)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	r := testRouter(t)
	rr := do(t, r, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	body := decode[map[string]string](t, rr)
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want ok", body["status"])
	}
	if body["backend"] != "fallback" {
		t.Errorf("backend: got %q, want fallback", body["backend"])
	}
}

func TestSecureHeadersApplied(t *testing.T) {
	r := testRouter(t)
	rr := do(t, r, http.MethodGet, "/health", nil)
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options: got %q", got)
	}
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	r := testRouter(t)
	rr := do(t, r, http.MethodGet, "/nope", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := testRouter(t)
	do(t, r, http.MethodGet, "/health", nil)
	rr := do(t, r, http.MethodGet, "/metrics", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "devfolio_http_requests_total") {
		t.Error("metrics output should include the request counter")
	}
}

func TestAdminRequiresKey(t *testing.T) {
	r := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/projects", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestProjectLifecycle(t *testing.T) {
	r := testRouter(t)

	rr := do(t, r, http.MethodPost, "/api/admin/projects", map[string]any{
		"title":    "Shop",
		"isActive": true,
		"client":   "ACME",
		"status":   "in-progress",
		"progress": 40,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: got %d (%s), want 201", rr.Code, rr.Body.String())
	}
	id := decode[map[string]string](t, rr)["id"]
	if id == "" {
		t.Fatal("create should return an id")
	}

	// Public listing hides administrative fields.
	rr = do(t, r, http.MethodGet, "/api/projects", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("public list: got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "ACME") {
		t.Error("public projects should not expose the client")
	}
	cards := decode[[]map[string]any](t, rr)
	if len(cards) != 1 || cards[0]["id"] != id {
		t.Fatalf("public list: got %v", cards)
	}

	rr = do(t, r, http.MethodPatch, "/api/admin/projects/"+id, map[string]any{"progress": 101})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("invalid progress: got %d, want 400", rr.Code)
	}

	rr = do(t, r, http.MethodPatch, "/api/admin/projects/"+id, map[string]any{"progress": 90})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("update: got %d (%s), want 204", rr.Code, rr.Body.String())
	}

	rr = do(t, r, http.MethodGet, "/api/admin/projects/"+id, nil)
	p := decode[models.Project](t, rr)
	if p.Progress != 90 || p.Client != "ACME" {
		t.Errorf("after update: got progress %d client %q", p.Progress, p.Client)
	}

	if rr = do(t, r, http.MethodDelete, "/api/admin/projects/"+id, nil); rr.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d, want 204", rr.Code)
	}
	if rr = do(t, r, http.MethodDelete, "/api/admin/projects/"+id, nil); rr.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want 404", rr.Code)
	}
	if rr = do(t, r, http.MethodGet, "/api/admin/projects/"+id, nil); rr.Code != http.StatusNotFound {
		t.Errorf("get deleted: got %d, want 404", rr.Code)
	}
}

func TestInquirySubmission(t *testing.T) {
	r := testRouter(t)

	rr := do(t, r, http.MethodPost, "/api/inquiries", map[string]any{
		"name":          "Jane",
		"email":         "jane@example.com",
		"requirements":  "Landing page",
		"budget":        "$450",
		"timeline":      "1 month",
		"acceptedTerms": true,
		"status":        "approved",
		"paymentTerms":  "nothing upfront",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("submit: got %d (%s), want 201", rr.Code, rr.Body.String())
	}
	resp := decode[map[string]string](t, rr)
	if resp["paymentTerms"] != models.PaymentTermsSmallBudget {
		t.Errorf("payment terms: got %q", resp["paymentTerms"])
	}

	rr = do(t, r, http.MethodGet, "/api/admin/inquiries/"+resp["id"], nil)
	q := decode[models.Inquiry](t, rr)
	if q.Status != models.InquiryStatusPending {
		t.Errorf("status: got %q, want pending", q.Status)
	}

	rr = do(t, r, http.MethodPut, "/api/admin/inquiries/"+q.ID+"/status", map[string]string{"status": "bogus"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bogus status: got %d, want 400", rr.Code)
	}
	rr = do(t, r, http.MethodPut, "/api/admin/inquiries/"+q.ID+"/status", map[string]string{"status": "reviewed"})
	if rr.Code != http.StatusNoContent {
		t.Errorf("set status: got %d, want 204", rr.Code)
	}

	rr = do(t, r, http.MethodGet, "/api/admin/inquiries?status=reviewed", nil)
	list := decode[[]models.Inquiry](t, rr)
	if len(list) != 1 || list[0].ID != q.ID {
		t.Errorf("filtered list: got %d inquiries", len(list))
	}
}

func TestInquiryWithoutTermsRejected(t *testing.T) {
	r := testRouter(t)
	rr := do(t, r, http.MethodPost, "/api/inquiries", map[string]any{
		"name":  "Jane",
		"email": "jane@example.com",
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

func TestMalformedJSON(t *testing.T) {
	r := testRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/inquiries", strings.NewReader("{"))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

func TestSettings(t *testing.T) {
	r := testRouter(t)

	rr := do(t, r, http.MethodGet, "/api/settings", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get: got %d", rr.Code)
	}

	rr = do(t, r, http.MethodPatch, "/api/admin/settings", map[string]any{"contact": map[string]any{"email": "me@site.dev"}})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("update: got %d (%s)", rr.Code, rr.Body.String())
	}

	rr = do(t, r, http.MethodGet, "/api/settings", nil)
	if !strings.Contains(rr.Body.String(), "me@site.dev") {
		t.Errorf("settings should reflect the update, got %s", rr.Body.String())
	}
}

func TestChatFlow(t *testing.T) {
	r := testRouter(t)

	rr := do(t, r, http.MethodPost, "/api/chats", map[string]any{})
	if rr.Code != http.StatusCreated {
		t.Fatalf("start: got %d (%s)", rr.Code, rr.Body.String())
	}
	id := decode[map[string]string](t, rr)["id"]

	rr = do(t, r, http.MethodPost, "/api/chats/"+id+"/messages", map[string]string{"content": "hello", "sender": "user"})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("append: got %d (%s)", rr.Code, rr.Body.String())
	}
	rr = do(t, r, http.MethodPost, "/api/chats/"+id+"/messages", map[string]string{"content": "hi", "sender": "robot"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad sender: got %d, want 400", rr.Code)
	}
	rr = do(t, r, http.MethodPost, "/api/chats/missing/messages", map[string]string{"content": "hi", "sender": "user"})
	if rr.Code != http.StatusNotFound {
		t.Errorf("missing chat: got %d, want 404", rr.Code)
	}

	rr = do(t, r, http.MethodGet, "/api/admin/chats/"+id, nil)
	c := decode[models.ChatTranscript](t, rr)
	if len(c.Messages) != 1 || c.Messages[0].Content != "hello" {
		t.Errorf("messages: got %+v", c.Messages)
	}
}

func TestUsersAndLogin(t *testing.T) {
	r := testRouter(t)

	rr := do(t, r, http.MethodPost, "/api/admin/users", map[string]string{"email": "Ops@Example.com", "password": "longenough"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: got %d (%s)", rr.Code, rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "passwordHash") {
		t.Error("response must not expose the password hash")
	}

	rr = do(t, r, http.MethodPost, "/api/admin/login", map[string]string{"email": "ops@example.com", "password": "longenough"})
	if rr.Code != http.StatusOK {
		t.Errorf("login: got %d, want 200", rr.Code)
	}
	rr = do(t, r, http.MethodPost, "/api/admin/login", map[string]string{"email": "ops@example.com", "password": "wrong-password"})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("bad login: got %d, want 401", rr.Code)
	}
}

func TestThemeEndpoints(t *testing.T) {
	r := testRouter(t)

	rr := do(t, r, http.MethodGet, "/api/theme", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("active theme: got %d", rr.Code)
	}
	active := decode[models.Theme](t, rr)
	if active.Name != "Midnight" {
		t.Errorf("active theme: got %q, want Midnight", active.Name)
	}

	rr = do(t, r, http.MethodGet, "/api/theme.css", nil)
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("css content type: got %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "--color-primary") {
		t.Error("stylesheet should define --color-primary")
	}

	rr = do(t, r, http.MethodPatch, "/api/admin/themes/"+active.ID, map[string]any{
		"changes": map[string]any{"colors": map[string]any{"primary": "#ff0000"}},
		"note":    "Brand red",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("update: got %d (%s)", rr.Code, rr.Body.String())
	}
	updated := decode[models.Theme](t, rr)
	if updated.Version != 2 || updated.Colors.Primary != "#ff0000" {
		t.Errorf("after update: version %d primary %q", updated.Version, updated.Colors.Primary)
	}

	rr = do(t, r, http.MethodGet, "/api/theme.css", nil)
	if !strings.Contains(rr.Body.String(), "--color-primary: #ff0000;") {
		t.Error("stylesheet should reflect the update")
	}

	rr = do(t, r, http.MethodGet, "/api/admin/themes/"+active.ID+"/history", nil)
	entries := decode[[]models.ThemeHistoryEntry](t, rr)
	if len(entries) < 2 || entries[0].Description != "Brand red" {
		t.Fatalf("history: got %+v", entries)
	}
	first := entries[len(entries)-1]

	rr = do(t, r, http.MethodPost, "/api/admin/themes/"+active.ID+"/history/"+first.ID+"/revert", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("revert: got %d (%s)", rr.Code, rr.Body.String())
	}
	reverted := decode[models.Theme](t, rr)
	if reverted.Version != 3 || reverted.Colors.Primary == "#ff0000" {
		t.Errorf("after revert: version %d primary %q", reverted.Version, reverted.Colors.Primary)
	}

	rr = do(t, r, http.MethodPost, "/api/admin/themes/"+active.ID+"/duplicate", map[string]string{"name": "Copy"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("duplicate: got %d", rr.Code)
	}
	dup := decode[models.Theme](t, rr)

	if rr = do(t, r, http.MethodPost, "/api/admin/themes/"+dup.ID+"/activate", nil); rr.Code != http.StatusNoContent {
		t.Fatalf("activate: got %d", rr.Code)
	}
	rr = do(t, r, http.MethodGet, "/api/theme", nil)
	if got := decode[models.Theme](t, rr); got.ID != dup.ID {
		t.Errorf("active after activate: got %q, want %q", got.ID, dup.ID)
	}

	if rr = do(t, r, http.MethodPost, "/api/admin/themes/missing/activate", nil); rr.Code != http.StatusNotFound {
		t.Errorf("activate missing: got %d, want 404", rr.Code)
	}
	if rr = do(t, r, http.MethodDelete, "/api/admin/themes/missing", nil); rr.Code != http.StatusNotFound {
		t.Errorf("delete missing: got %d, want 404", rr.Code)
	}
}

func TestThemeDeleteLastIsConflict(t *testing.T) {
	r := testRouter(t)

	rr := do(t, r, http.MethodGet, "/api/admin/themes", nil)
	themes := decode[[]models.Theme](t, rr)
	if len(themes) != len(theme.BuiltIn()) {
		t.Fatalf("themes: got %d, want %d", len(themes), len(theme.BuiltIn()))
	}
	for _, th := range themes[1:] {
		if rr = do(t, r, http.MethodDelete, "/api/admin/themes/"+th.ID, nil); rr.Code != http.StatusNoContent {
			t.Fatalf("delete %s: got %d", th.Name, rr.Code)
		}
	}
	rr = do(t, r, http.MethodDelete, "/api/admin/themes/"+themes[0].ID, nil)
	if rr.Code != http.StatusConflict {
		t.Errorf("delete last: got %d, want 409", rr.Code)
	}
}

func TestThemeCreateRequiresName(t *testing.T) {
	r := testRouter(t)
	rr := do(t, r, http.MethodPost, "/api/admin/themes", map[string]any{"colors": map[string]any{"primary": "#000"}})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}
