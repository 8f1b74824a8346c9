// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"strings"

	"devfolio/internal/document"
	"devfolio/internal/models"
)

// ProjectStore handles portfolio project records.
type ProjectStore struct {
	f *Facade
}

// NewProjectStore creates a new ProjectStore.
func NewProjectStore(f *Facade) *ProjectStore {
	return &ProjectStore{f: f}
}

// Create validates p, inserts it and sets p.ID.
func (s *ProjectStore) Create(ctx context.Context, p *models.Project) (string, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return "", invalid("title is required")
	}
	if !p.Status.Valid() {
		return "", invalid("unknown project status %q", p.Status)
	}
	if p.Progress < 0 || p.Progress > 100 {
		return "", invalid("progress must be between 0 and 100")
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	id, err := CreateFrom(ctx, s.f, document.Projects, p)
	if err != nil {
		return "", err
	}
	p.ID = id
	return id, nil
}

// List returns projects newest first. With activeOnly only projects marked
// active are returned. A limit of 0 means no limit.
func (s *ProjectStore) List(ctx context.Context, activeOnly bool, limit, skip int) ([]models.Project, error) {
	var filter document.Filter
	if activeOnly {
		filter = document.Filter{"isActive": true}
	}
	return ListAs[models.Project](ctx, s.f, document.Projects, filter, document.Newest.Page(limit, skip))
}

// FindByID returns the project with the given id or native key, or nil.
func (s *ProjectStore) FindByID(ctx context.Context, id string) (*models.Project, error) {
	return GetAs[models.Project](ctx, s.f, document.Projects, id)
}

// Update applies patch and reports whether the project exists.
func (s *ProjectStore) Update(ctx context.Context, id string, patch document.Doc) (bool, error) {
	if status, ok, err := stringField(patch, "status"); err != nil {
		return false, err
	} else if ok && !models.ProjectStatus(status).Valid() {
		return false, invalid("unknown project status %q", status)
	}
	if v, ok := patch["progress"]; ok {
		n, isNum := v.(float64)
		if !isNum {
			if i, isInt := v.(int); isInt {
				n, isNum = float64(i), true
			}
		}
		if !isNum || n < 0 || n > 100 {
			return false, invalid("progress must be between 0 and 100")
		}
	}
	if title, ok, err := stringField(patch, "title"); err != nil {
		return false, err
	} else if ok && strings.TrimSpace(title) == "" {
		return false, invalid("title is required")
	}
	return s.f.Update(ctx, document.Projects, id, patch)
}

// Delete removes the project and reports whether it existed.
func (s *ProjectStore) Delete(ctx context.Context, id string) (bool, error) {
	return s.f.Delete(ctx, document.Projects, id)
}
