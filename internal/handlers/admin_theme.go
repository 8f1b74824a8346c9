// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"devfolio/internal/models"
	"devfolio/internal/theme"
)

// ActorHeader names the administrator recorded in theme history entries.
const ActorHeader = "X-Admin-User"

// Themes groups the back-office theme endpoints.
type Themes struct {
	engine *theme.Engine
}

// NewThemes creates the theme handler group.
func NewThemes(engine *theme.Engine) *Themes {
	return &Themes{engine: engine}
}

func withActor(r *http.Request) *http.Request {
	actor := strings.TrimSpace(r.Header.Get(ActorHeader))
	if actor == "" {
		return r
	}
	return r.WithContext(theme.WithActor(r.Context(), actor))
}

// List returns every theme, oldest first.
func (h *Themes) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.engine.ListThemes(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get returns one theme.
func (h *Themes) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.engine.GetThemeByID(r.Context(), chi.URLParam(r, "id"))
	respondFound(w, r, "theme", t, err)
}

// Create creates a theme at version 1.
func (h *Themes) Create(w http.ResponseWriter, r *http.Request) {
	r = withActor(r)
	var s models.ThemeSettings
	if !decodeJSON(w, r, &s) {
		return
	}
	t, err := h.engine.Create(r.Context(), s)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// themeUpdate carries a partial settings change and an optional note for
// the history entry.
type themeUpdate struct {
	Changes map[string]any `json:"changes"`
	Note    string         `json:"note,omitempty"`
}

// Update merges changes into a theme and bumps its version.
func (h *Themes) Update(w http.ResponseWriter, r *http.Request) {
	r = withActor(r)
	var body themeUpdate
	if !decodeJSON(w, r, &body) {
		return
	}
	if len(body.Changes) == 0 {
		writeError(w, http.StatusBadRequest, "empty update")
		return
	}
	t, err := h.engine.Update(r.Context(), chi.URLParam(r, "id"), body.Changes, body.Note)
	respondFound(w, r, "theme", t, err)
}

// Delete removes a theme. The last remaining theme cannot be deleted.
func (h *Themes) Delete(w http.ResponseWriter, r *http.Request) {
	r = withActor(r)
	id := chi.URLParam(r, "id")
	ok, err := h.engine.Delete(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if !ok {
		h.refused(w, r, id, "the last theme cannot be deleted")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// refused tells a missing theme apart from a refused operation on an
// existing one.
func (h *Themes) refused(w http.ResponseWriter, r *http.Request, id, reason string) {
	t, err := h.engine.GetThemeByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if t == nil {
		notFound(w, "theme")
		return
	}
	writeError(w, http.StatusConflict, reason)
}

// Activate makes a theme the only active one.
func (h *Themes) Activate(w http.ResponseWriter, r *http.Request) {
	r = withActor(r)
	ok, err := h.engine.Activate(r.Context(), chi.URLParam(r, "id"))
	respondUpdated(w, r, "theme", ok, err)
}

// Duplicate copies a theme under a new name.
func (h *Themes) Duplicate(w http.ResponseWriter, r *http.Request) {
	r = withActor(r)
	var body struct {
		Name string `json:"name"`
	}
	if r.ContentLength != 0 && !decodeJSON(w, r, &body) {
		return
	}
	t, err := h.engine.Duplicate(r.Context(), chi.URLParam(r, "id"), body.Name)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if t == nil {
		notFound(w, "theme")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// History lists a theme's history entries, newest first.
func (h *Themes) History(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 0 {
		limit = 0
	}
	entries, err := h.engine.ListHistory(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Revert restores the settings of one of the theme's history entries.
func (h *Themes) Revert(w http.ResponseWriter, r *http.Request) {
	r = withActor(r)
	t, err := h.engine.Revert(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "entryID"))
	respondFound(w, r, "theme or history entry", t, err)
}
