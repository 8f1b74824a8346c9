// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"net/mail"
	"strings"

	"devfolio/internal/document"
	"devfolio/internal/models"
)

// InquiryStore handles client inquiries submitted through the public form.
type InquiryStore struct {
	f *Facade
}

// NewInquiryStore creates a new InquiryStore.
func NewInquiryStore(f *Facade) *InquiryStore {
	return &InquiryStore{f: f}
}

// Create validates q, derives its payment terms from the budget, marks it
// pending and inserts it. q.ID is set on success.
func (s *InquiryStore) Create(ctx context.Context, q *models.Inquiry) (string, error) {
	q.Name = strings.TrimSpace(q.Name)
	q.Email = strings.TrimSpace(q.Email)
	switch {
	case q.Name == "":
		return "", invalid("name is required")
	case q.Email == "":
		return "", invalid("email is required")
	case !q.AcceptedTerms:
		return "", invalid("terms must be accepted")
	}
	if _, err := mail.ParseAddress(q.Email); err != nil {
		return "", invalid("email is not valid")
	}

	q.PaymentTerms = models.PaymentTermsFor(q.Budget)
	q.Status = models.InquiryStatusPending

	id, err := CreateFrom(ctx, s.f, document.Inquiries, q)
	if err != nil {
		return "", err
	}
	q.ID = id
	return id, nil
}

// List returns inquiries newest first, optionally restricted to one status.
func (s *InquiryStore) List(ctx context.Context, status models.InquiryStatus, limit, skip int) ([]models.Inquiry, error) {
	var filter document.Filter
	if status != "" {
		if !status.Valid() {
			return nil, invalid("unknown inquiry status %q", status)
		}
		filter = document.Filter{"status": string(status)}
	}
	return ListAs[models.Inquiry](ctx, s.f, document.Inquiries, filter, document.Newest.Page(limit, skip))
}

// FindByID returns the inquiry with the given id or native key, or nil.
func (s *InquiryStore) FindByID(ctx context.Context, id string) (*models.Inquiry, error) {
	return GetAs[models.Inquiry](ctx, s.f, document.Inquiries, id)
}

// Update applies patch. Payment terms and terms acceptance are fixed at
// submission and cannot be patched.
func (s *InquiryStore) Update(ctx context.Context, id string, patch document.Doc) (bool, error) {
	p := patch.Clone()
	delete(p, "paymentTerms")
	delete(p, "acceptedTerms")
	if status, ok, err := stringField(p, "status"); err != nil {
		return false, err
	} else if ok && !models.InquiryStatus(status).Valid() {
		return false, invalid("unknown inquiry status %q", status)
	}
	return s.f.Update(ctx, document.Inquiries, id, p)
}

// UpdateStatus moves the inquiry to status.
func (s *InquiryStore) UpdateStatus(ctx context.Context, id string, status models.InquiryStatus) (bool, error) {
	if !status.Valid() {
		return false, invalid("unknown inquiry status %q", status)
	}
	return s.f.Update(ctx, document.Inquiries, id, document.Doc{"status": string(status)})
}

// Delete removes the inquiry and reports whether it existed.
func (s *InquiryStore) Delete(ctx context.Context, id string) (bool, error) {
	return s.f.Delete(ctx, document.Inquiries, id)
}
