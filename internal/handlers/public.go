// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"devfolio/internal/models"
	"devfolio/internal/store"
	"devfolio/internal/theme"
)

// Public groups the unauthenticated portfolio endpoints.
type Public struct {
	projects  *store.ProjectStore
	inquiries *store.InquiryStore
	settings  *store.SiteSettingStore
	chats     *store.ChatStore
	themes    *theme.Engine
}

// NewPublic creates the public handler group.
func NewPublic(f *store.Facade, themes *theme.Engine) *Public {
	return &Public{
		projects:  store.NewProjectStore(f),
		inquiries: store.NewInquiryStore(f),
		settings:  store.NewSiteSettingStore(f),
		chats:     store.NewChatStore(f),
		themes:    themes,
	}
}

// projectCard is the public view of a project. Client, budget and
// schedule fields stay in the back office.
type projectCard struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Tags        []string            `json:"tags"`
	Links       models.ProjectLinks `json:"links"`
	ImageURL    string              `json:"imageUrl,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// Projects lists active projects, newest first.
func (p *Public) Projects(w http.ResponseWriter, r *http.Request) {
	limit, skip := pageParams(r)
	list, err := p.projects.List(r.Context(), true, limit, skip)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	cards := make([]projectCard, 0, len(list))
	for _, pr := range list {
		cards = append(cards, projectCard{
			ID:          pr.ID,
			Title:       pr.Title,
			Description: pr.Description,
			Tags:        pr.Tags,
			Links:       pr.Links,
			ImageURL:    pr.ImageURL,
			CreatedAt:   pr.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, cards)
}

// inquiryResponse confirms a submitted inquiry.
type inquiryResponse struct {
	ID           string `json:"id"`
	PaymentTerms string `json:"paymentTerms"`
}

// SubmitInquiry stores a client inquiry. Payment terms are derived from
// the budget and the status always starts as pending.
func (p *Public) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var q models.Inquiry
	if !decodeJSON(w, r, &q) {
		return
	}
	q.ID, q.Key, q.Status, q.PaymentTerms = "", "", "", ""

	id, err := p.inquiries.Create(r.Context(), &q)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inquiryResponse{ID: id, PaymentTerms: q.PaymentTerms})
}

// Settings returns the site settings, creating the defaults on first use.
func (p *Public) Settings(w http.ResponseWriter, r *http.Request) {
	s, err := p.settings.Get(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// ActiveTheme returns the active theme.
func (p *Public) ActiveTheme(w http.ResponseWriter, r *http.Request) {
	t, err := p.themes.GetActiveTheme(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if t == nil {
		notFound(w, "active theme")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// ActiveThemeCSS serves the active theme as a stylesheet.
func (p *Public) ActiveThemeCSS(w http.ResponseWriter, r *http.Request) {
	css, err := p.themes.ActiveCSS(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(css))
}

// StartChat opens a chat transcript, optionally with initial messages.
func (p *Public) StartChat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Messages []models.ChatMessage `json:"messages"`
	}
	if r.ContentLength != 0 && !decodeJSON(w, r, &body) {
		return
	}

	c := &models.ChatTranscript{Messages: body.Messages, IsActive: true}
	id, err := p.chats.Create(r.Context(), c)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// AppendChatMessage adds one message to a transcript.
func (p *Public) AppendChatMessage(w http.ResponseWriter, r *http.Request) {
	var msg models.ChatMessage
	if !decodeJSON(w, r, &msg) {
		return
	}
	ok, err := p.chats.AppendMessage(r.Context(), chi.URLParam(r, "id"), msg)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if !ok {
		notFound(w, "chat")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
