// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"devfolio/internal/document"
	"devfolio/internal/models"
)

// UserStore handles administrator accounts.
type UserStore struct {
	f *Facade
}

// NewUserStore creates a new UserStore.
func NewUserStore(f *Facade) *UserStore {
	return &UserStore{f: f}
}

// Create hashes password and inserts a new administrator. Emails are
// stored lower-cased and must be unique.
func (s *UserStore) Create(ctx context.Context, email, password, displayName string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", invalid("email is required")
	}
	if len(password) < 8 {
		return "", invalid("password must be at least 8 characters")
	}

	existing, err := s.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", invalid("email %q is already registered", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return CreateFrom(ctx, s.f, document.AdminUsers, models.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
	})
}

// FindByEmail returns the administrator with the given email, or nil.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return FindOneAs[models.AdminUser](ctx, s.f, document.AdminUsers, document.Filter{"email": email})
}

// Authenticate returns the administrator whose password matches, or nil
// when the email is unknown or the password is wrong.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (*models.AdminUser, error) {
	u, err := s.FindByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}
	return u, nil
}
