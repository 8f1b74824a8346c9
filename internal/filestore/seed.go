// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package filestore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"devfolio/internal/document"
	"devfolio/internal/models"
)

// Default seed credentials for development.
const (
	DefaultAdminEmail    = "admin@portfolio.local"
	DefaultAdminPassword = "admin123"
)

// SeedOptions controls the bootstrap data written to an empty store.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string

	// Disabled skips seeding entirely. Tests use it to start from an
	// empty file.
	Disabled bool
}

func (o SeedOptions) withDefaults() SeedOptions {
	if o.AdminEmail == "" {
		o.AdminEmail = DefaultAdminEmail
	}
	if o.AdminPassword == "" {
		o.AdminPassword = DefaultAdminPassword
	}
	return o
}

// Seed writes one sample record per content collection plus a single
// administrator account. Themes are not seeded here: the theme engine
// installs its built-in catalog the first time themes are listed.
func Seed(ctx context.Context, s document.Store, opts SeedOptions) error {
	if opts.Disabled {
		return nil
	}
	opts = opts.withDefaults()

	// Hash the admin password; the plain text is never written.
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	now := time.Now().UTC()
	settings := models.DefaultSiteSettings()
	settings.CreatedAt, settings.UpdatedAt = now, now

	samples := []struct {
		collection string
		record     any
	}{
		{document.AdminUsers, models.AdminUser{
			ID:           newID(),
			Email:        opts.AdminEmail,
			PasswordHash: string(hash),
			DisplayName:  "Admin",
			CreatedAt:    now,
			UpdatedAt:    now,
		}},
		{document.Projects, models.Project{
			ID:          newID(),
			Title:       "Portfolio Website",
			Description: "This site: a portfolio with an administrative back office and theme editor.",
			Tags:        []string{"go", "web", "mongodb"},
			Links:       models.ProjectLinks{Source: "https://github.com/"},
			IsActive:    true,
			Status:      models.ProjectStatusCompleted,
			Progress:    100,
			CreatedAt:   now,
			UpdatedAt:   now,
		}},
		{document.Inquiries, models.Inquiry{
			ID:            newID(),
			Name:          "Sample Client",
			Email:         "client@example.com",
			Requirements:  "A landing page with a contact form.",
			Budget:        "400",
			Timeline:      "2 weeks",
			AcceptedTerms: true,
			PaymentTerms:  models.PaymentTermsFor("400"),
			Status:        models.InquiryStatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}},
		{document.Settings, settings},
		{document.ChatSessions, models.ChatTranscript{
			ID: newID(),
			Messages: []models.ChatMessage{
				{Content: "Hi! Ask me anything about my work.", Sender: models.SenderBot, Timestamp: now},
			},
			IsActive:  false,
			CreatedAt: now,
			UpdatedAt: now,
		}},
	}

	for _, sample := range samples {
		doc, err := document.From(sample.record)
		if err != nil {
			return fmt.Errorf("seed %s: %w", sample.collection, err)
		}
		if err := s.Insert(ctx, sample.collection, doc); err != nil {
			return fmt.Errorf("seed %s: %w", sample.collection, err)
		}
	}

	slog.Info("fallback store seeded with sample data",
		"admin_email", opts.AdminEmail,
	)
	return nil
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
