// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers of the portfolio API.
// Handlers are grouped by audience (public, admin) and receive their
// dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"devfolio/internal/document"
	"devfolio/internal/store"
)

// maxBodyBytes caps request bodies. Inquiry attachments are file names
// only, so no endpoint needs more.
const maxBodyBytes = 1 << 20

// Paging limits for list endpoints.
const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps a store or engine error to a response. Validation
// failures become 400 with their message; anything else is logged and
// reported as a generic 500.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrInvalid) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func notFound(w http.ResponseWriter, what string) {
	writeError(w, http.StatusNotFound, what+" not found")
}

// decodeJSON decodes the request body into dst. It reports false after
// writing a 400 response when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return false
	}
	return true
}

// decodePatch decodes a partial update. Numbers decode as float64, which
// is what the stores expect.
func decodePatch(w http.ResponseWriter, r *http.Request) (document.Doc, bool) {
	var patch document.Doc
	if !decodeJSON(w, r, &patch) {
		return nil, false
	}
	if len(patch) == 0 {
		writeError(w, http.StatusBadRequest, "empty update")
		return nil, false
	}
	return patch, true
}

// pageParams reads limit and offset query parameters.
func pageParams(r *http.Request) (limit, skip int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = min(v, maxPageSize)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		skip = v
	}
	return limit, skip
}
