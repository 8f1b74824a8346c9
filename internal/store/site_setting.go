// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"sync"

	"devfolio/internal/document"
	"devfolio/internal/models"
)

// SiteSettingStore handles the singleton site settings record.
type SiteSettingStore struct {
	f  *Facade
	mu sync.Mutex
}

// NewSiteSettingStore creates a new SiteSettingStore.
func NewSiteSettingStore(f *Facade) *SiteSettingStore {
	return &SiteSettingStore{f: f}
}

// Get returns the settings record, creating it from the default payload
// when it does not exist yet.
func (s *SiteSettingStore) Get(ctx context.Context) (*models.SiteSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(ctx)
}

func (s *SiteSettingStore) getLocked(ctx context.Context) (*models.SiteSettings, error) {
	settings, err := GetAs[models.SiteSettings](ctx, s.f, document.Settings, models.SiteSettingsID)
	if err != nil || settings != nil {
		return settings, err
	}

	def := models.DefaultSiteSettings()
	if _, err := CreateFrom(ctx, s.f, document.Settings, def); err != nil {
		return nil, err
	}
	created, err := GetAs[models.SiteSettings](ctx, s.f, document.Settings, models.SiteSettingsID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		// The insert was served by a one-shot fallback store.
		return &def, nil
	}
	return created, nil
}

// Update applies patch to the settings record, creating the record first if
// needed. It reports whether the record was changed.
func (s *SiteSettingStore) Update(ctx context.Context, patch document.Doc) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getLocked(ctx); err != nil {
		return false, err
	}
	return s.f.Update(ctx, document.Settings, models.SiteSettingsID, patch)
}
