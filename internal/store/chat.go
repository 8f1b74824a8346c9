// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"devfolio/internal/document"
	"devfolio/internal/models"
)

// ChatStore handles chat transcripts.
type ChatStore struct {
	f *Facade

	// mu serializes the read-modify-write of AppendMessage.
	mu sync.Mutex
}

// NewChatStore creates a new ChatStore.
func NewChatStore(f *Facade) *ChatStore {
	return &ChatStore{f: f}
}

// Create inserts c and sets c.ID.
func (s *ChatStore) Create(ctx context.Context, c *models.ChatTranscript) (string, error) {
	if c.Messages == nil {
		c.Messages = []models.ChatMessage{}
	}
	for _, m := range c.Messages {
		if err := validateMessage(m); err != nil {
			return "", err
		}
	}
	id, err := CreateFrom(ctx, s.f, document.ChatSessions, c)
	if err != nil {
		return "", err
	}
	c.ID = id
	return id, nil
}

// List returns transcripts newest first.
func (s *ChatStore) List(ctx context.Context, activeOnly bool, limit, skip int) ([]models.ChatTranscript, error) {
	var filter document.Filter
	if activeOnly {
		filter = document.Filter{"isActive": true}
	}
	return ListAs[models.ChatTranscript](ctx, s.f, document.ChatSessions, filter, document.Newest.Page(limit, skip))
}

// FindByID returns the transcript with the given id or native key, or nil.
func (s *ChatStore) FindByID(ctx context.Context, id string) (*models.ChatTranscript, error) {
	return GetAs[models.ChatTranscript](ctx, s.f, document.ChatSessions, id)
}

// AppendMessage adds msg to the end of the transcript. A zero timestamp is
// set to now. It reports whether the transcript exists.
func (s *ChatStore) AppendMessage(ctx context.Context, id string, msg models.ChatMessage) (bool, error) {
	if err := validateMessage(msg); err != nil {
		return false, err
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.FindByID(ctx, id)
	if err != nil || c == nil {
		return false, err
	}
	messages := append(c.Messages, msg)

	patch, err := document.From(map[string]any{"messages": messages})
	if err != nil {
		return false, err
	}
	return s.f.Update(ctx, document.ChatSessions, id, patch)
}

// Update applies patch and reports whether the transcript exists.
func (s *ChatStore) Update(ctx context.Context, id string, patch document.Doc) (bool, error) {
	return s.f.Update(ctx, document.ChatSessions, id, patch)
}

// Delete removes the transcript and reports whether it existed.
func (s *ChatStore) Delete(ctx context.Context, id string) (bool, error) {
	return s.f.Delete(ctx, document.ChatSessions, id)
}

func validateMessage(m models.ChatMessage) error {
	if !m.Sender.Valid() {
		return invalid("unknown sender %q", m.Sender)
	}
	if strings.TrimSpace(m.Content) == "" {
		return invalid("message content is required")
	}
	return nil
}
