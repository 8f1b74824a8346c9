// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package filestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"devfolio/internal/document"
)

// Fallback is the in-process store the facade uses when the primary
// backend is unavailable. It seeds an empty file with sample data on first
// use and treats file write failures as non-fatal: the mutation stays in
// memory and the failure is logged.
type Fallback struct {
	files *FileStore
	seed  SeedOptions

	seedOnce sync.Once
	seedErr  error
}

// NewFallback returns a Fallback persisting to path.
func NewFallback(path string, seed SeedOptions) *Fallback {
	return &Fallback{files: New(path), seed: seed}
}

// Name identifies the backend in logs and metrics.
func (f *Fallback) Name() string { return "fallback" }

// Path returns the backing file path.
func (f *Fallback) Path() string { return f.files.Path() }

// EnsureSeeded populates the file with sample data when it is empty. It
// runs at most once per Fallback; later calls return the first result.
// Instances sharing a file never seed it twice.
func (f *Fallback) EnsureSeeded(ctx context.Context) error {
	f.seedOnce.Do(func() {
		f.files.withSeedLock(func() {
			empty, err := f.files.Empty()
			if err != nil {
				f.seedErr = fmt.Errorf("check fallback store: %w", err)
				return
			}
			if !empty {
				return
			}
			f.seedErr = Seed(ctx, f.files, f.seed)
		})
	})
	return f.seedErr
}

// tolerate drops file write failures after logging them.
func (f *Fallback) tolerate(op, collection string, err error) error {
	if errors.Is(err, ErrPersist) {
		slog.Error("fallback store write failed, keeping in-memory change",
			"op", op,
			"collection", collection,
			"path", f.files.Path(),
			"error", err,
		)
		return nil
	}
	return err
}

func (f *Fallback) prepare(ctx context.Context) {
	if err := f.EnsureSeeded(ctx); err != nil {
		slog.Warn("fallback store seeding failed", "error", err)
	}
}

// Insert implements document.Store.
func (f *Fallback) Insert(ctx context.Context, collection string, doc document.Doc) error {
	f.prepare(ctx)
	return f.tolerate("insert", collection, f.files.Insert(ctx, collection, doc))
}

// Find implements document.Store.
func (f *Fallback) Find(ctx context.Context, collection string, filter document.Filter, opts document.FindOptions) ([]document.Doc, error) {
	f.prepare(ctx)
	return f.files.Find(ctx, collection, filter, opts)
}

// UpdateOne implements document.Store.
func (f *Fallback) UpdateOne(ctx context.Context, collection string, filter document.Filter, patch document.Doc) (bool, error) {
	f.prepare(ctx)
	ok, err := f.files.UpdateOne(ctx, collection, filter, patch)
	return ok, f.tolerate("update", collection, err)
}

// DeleteOne implements document.Store.
func (f *Fallback) DeleteOne(ctx context.Context, collection string, filter document.Filter) (bool, error) {
	f.prepare(ctx)
	ok, err := f.files.DeleteOne(ctx, collection, filter)
	return ok, f.tolerate("delete", collection, err)
}

// Close implements document.Store.
func (f *Fallback) Close(ctx context.Context) error {
	return f.files.Close(ctx)
}
