// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"devfolio/internal/models"
	"devfolio/internal/store"
)

// Admin groups the back-office endpoints for projects, inquiries, site
// settings, chat transcripts and admin accounts. Theme endpoints live in
// admin_theme.go.
type Admin struct {
	projects  *store.ProjectStore
	inquiries *store.InquiryStore
	settings  *store.SiteSettingStore
	chats     *store.ChatStore
	users     *store.UserStore
}

// NewAdmin creates the admin handler group.
func NewAdmin(f *store.Facade) *Admin {
	return &Admin{
		projects:  store.NewProjectStore(f),
		inquiries: store.NewInquiryStore(f),
		settings:  store.NewSiteSettingStore(f),
		chats:     store.NewChatStore(f),
		users:     store.NewUserStore(f),
	}
}

// respondUpdated finishes an update or delete that reports existence.
func respondUpdated(w http.ResponseWriter, r *http.Request, what string, ok bool, err error) {
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if !ok {
		notFound(w, what)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondFound finishes a lookup that returns nil when nothing matched.
func respondFound[T any](w http.ResponseWriter, r *http.Request, what string, v *T, err error) {
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if v == nil {
		notFound(w, what)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// --- Projects ---

// ProjectsList lists all projects, newest first.
func (a *Admin) ProjectsList(w http.ResponseWriter, r *http.Request) {
	limit, skip := pageParams(r)
	list, err := a.projects.List(r.Context(), r.URL.Query().Get("active") == "true", limit, skip)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ProjectCreate creates a project.
func (a *Admin) ProjectCreate(w http.ResponseWriter, r *http.Request) {
	var p models.Project
	if !decodeJSON(w, r, &p) {
		return
	}
	p.ID, p.Key = "", ""
	id, err := a.projects.Create(r.Context(), &p)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ProjectGet returns one project.
func (a *Admin) ProjectGet(w http.ResponseWriter, r *http.Request) {
	p, err := a.projects.FindByID(r.Context(), chi.URLParam(r, "id"))
	respondFound(w, r, "project", p, err)
}

// ProjectUpdate applies a partial update to a project.
func (a *Admin) ProjectUpdate(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodePatch(w, r)
	if !ok {
		return
	}
	found, err := a.projects.Update(r.Context(), chi.URLParam(r, "id"), patch)
	respondUpdated(w, r, "project", found, err)
}

// ProjectDelete deletes a project.
func (a *Admin) ProjectDelete(w http.ResponseWriter, r *http.Request) {
	found, err := a.projects.Delete(r.Context(), chi.URLParam(r, "id"))
	respondUpdated(w, r, "project", found, err)
}

// --- Inquiries ---

// InquiriesList lists inquiries, optionally filtered by ?status=.
func (a *Admin) InquiriesList(w http.ResponseWriter, r *http.Request) {
	status := models.InquiryStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown inquiry status")
		return
	}
	limit, skip := pageParams(r)
	list, err := a.inquiries.List(r.Context(), status, limit, skip)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// InquiryGet returns one inquiry.
func (a *Admin) InquiryGet(w http.ResponseWriter, r *http.Request) {
	q, err := a.inquiries.FindByID(r.Context(), chi.URLParam(r, "id"))
	respondFound(w, r, "inquiry", q, err)
}

// InquiryUpdate edits an inquiry. Accepted terms and payment terms are
// fixed at submission and cannot be changed.
func (a *Admin) InquiryUpdate(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodePatch(w, r)
	if !ok {
		return
	}
	found, err := a.inquiries.Update(r.Context(), chi.URLParam(r, "id"), patch)
	respondUpdated(w, r, "inquiry", found, err)
}

// InquirySetStatus moves an inquiry through its review workflow.
func (a *Admin) InquirySetStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status models.InquiryStatus `json:"status"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	found, err := a.inquiries.UpdateStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	respondUpdated(w, r, "inquiry", found, err)
}

// InquiryDelete deletes an inquiry.
func (a *Admin) InquiryDelete(w http.ResponseWriter, r *http.Request) {
	found, err := a.inquiries.Delete(r.Context(), chi.URLParam(r, "id"))
	respondUpdated(w, r, "inquiry", found, err)
}

// --- Site settings ---

// SettingsUpdate applies a partial update to the site settings.
func (a *Admin) SettingsUpdate(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodePatch(w, r)
	if !ok {
		return
	}
	found, err := a.settings.Update(r.Context(), patch)
	respondUpdated(w, r, "settings", found, err)
}

// --- Chat transcripts ---

// ChatsList lists chat transcripts, newest first.
func (a *Admin) ChatsList(w http.ResponseWriter, r *http.Request) {
	limit, skip := pageParams(r)
	list, err := a.chats.List(r.Context(), r.URL.Query().Get("active") == "true", limit, skip)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ChatGet returns one transcript.
func (a *Admin) ChatGet(w http.ResponseWriter, r *http.Request) {
	c, err := a.chats.FindByID(r.Context(), chi.URLParam(r, "id"))
	respondFound(w, r, "chat", c, err)
}

// ChatUpdate applies a partial update to a transcript, typically closing
// it with {"isActive": false}.
func (a *Admin) ChatUpdate(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodePatch(w, r)
	if !ok {
		return
	}
	found, err := a.chats.Update(r.Context(), chi.URLParam(r, "id"), patch)
	respondUpdated(w, r, "chat", found, err)
}

// ChatDelete deletes a transcript.
func (a *Admin) ChatDelete(w http.ResponseWriter, r *http.Request) {
	found, err := a.chats.Delete(r.Context(), chi.URLParam(r, "id"))
	respondUpdated(w, r, "chat", found, err)
}

// --- Admin accounts ---

// userView is an admin account without its password hash.
type userView struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type credentials struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

// UserCreate registers another admin account.
func (a *Admin) UserCreate(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if !decodeJSON(w, r, &c) {
		return
	}
	id, err := a.users.Create(r.Context(), c.Email, c.Password, c.DisplayName)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, userView{ID: id, Email: strings.ToLower(strings.TrimSpace(c.Email)), DisplayName: c.DisplayName})
}

// Login checks admin credentials and returns the account on success.
func (a *Admin) Login(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if !decodeJSON(w, r, &c) {
		return
	}
	u, err := a.users.Authenticate(r.Context(), c.Email, c.Password)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if u == nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	writeJSON(w, http.StatusOK, userView{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName})
}
