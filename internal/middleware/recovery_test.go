// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecoverer(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"string", "something went wrong"},
		{"integer", 42},
		{"error", errors.New("store exploded")},
		{"arbitrary value", strings.NewReader("error reader")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.value)
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/inquiries", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusInternalServerError {
				t.Errorf("status: got %d, want 500", rr.Code)
			}
			if got := rr.Body.String(); got != panicBody {
				t.Errorf("body: got %q, want %q", got, panicBody)
			}
			if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("content type: got %q", ct)
			}
		})
	}
}

func TestRecovererRepanicsOnAbort(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	rr := httptest.NewRecorder()
	rec := func() (rec any) {
		defer func() { rec = recover() }()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/chats", nil))
		return nil
	}()

	if rec != http.ErrAbortHandler {
		t.Fatalf("recovered %v, want http.ErrAbortHandler", rec)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("aborted response was written: %q", rr.Body.String())
	}
}

func TestRecovererNoPanic(t *testing.T) {
	var called bool
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Header().Set("X-Custom", "test-value")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("ok"))
	}))

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			called = false
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(method, "/api/admin/themes", nil))

			if !called {
				t.Error("next handler should have been called")
			}
			if rr.Code != http.StatusCreated || rr.Body.String() != "ok" {
				t.Errorf("response: %d %q", rr.Code, rr.Body.String())
			}
			if got := rr.Header().Get("X-Custom"); got != "test-value" {
				t.Errorf("X-Custom: got %q", got)
			}
		})
	}
}
