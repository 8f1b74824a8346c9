// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"log/slog"

	"devfolio/internal/document"
	"devfolio/internal/metrics"
)

// failover wraps the primary store. A call that fails on the primary is
// retried once on a fresh fallback instance; the pinned backend does not
// change. Demotions are logged and counted. If the fallback fails too,
// both errors are returned.
type failover struct {
	primary  document.Store
	fallback FallbackFunc
	metrics  *metrics.Metrics
}

func (s *failover) Name() string { return s.primary.Name() }

// NativeKeyFilter delegates to the primary store.
func (s *failover) NativeKeyFilter(id string) (document.Filter, bool) {
	nk, ok := s.primary.(document.NativeKeyer)
	if !ok {
		return nil, false
	}
	return nk.NativeKeyFilter(id)
}

// demote returns a one-shot fallback store, or false when the caller's
// context is already done and retrying would not help.
func (s *failover) demote(ctx context.Context, collection, op string, err error) (document.Store, bool) {
	if ctx.Err() != nil || s.fallback == nil {
		return nil, false
	}
	slog.Warn("primary store call failed, serving from one-shot fallback",
		"backend", s.primary.Name(),
		"collection", collection,
		"op", op,
		"error", err,
	)
	s.metrics.RecordDemotion(collection, op)
	return s.fallback(), true
}

func demoteErr(primaryErr, fallbackErr error) error {
	return fmt.Errorf("fallback after primary error (%v): %w", primaryErr, fallbackErr)
}

func (s *failover) Insert(ctx context.Context, collection string, doc document.Doc) error {
	err := s.primary.Insert(ctx, collection, doc)
	if err == nil {
		return nil
	}
	fb, ok := s.demote(ctx, collection, "insert", err)
	if !ok {
		return err
	}
	if ferr := fb.Insert(ctx, collection, doc); ferr != nil {
		return demoteErr(err, ferr)
	}
	return nil
}

func (s *failover) Find(ctx context.Context, collection string, filter document.Filter, opts document.FindOptions) ([]document.Doc, error) {
	docs, err := s.primary.Find(ctx, collection, filter, opts)
	if err == nil {
		return docs, nil
	}
	fb, ok := s.demote(ctx, collection, "find", err)
	if !ok {
		return nil, err
	}
	docs, ferr := fb.Find(ctx, collection, filter, opts)
	if ferr != nil {
		return nil, demoteErr(err, ferr)
	}
	return docs, nil
}

func (s *failover) UpdateOne(ctx context.Context, collection string, filter document.Filter, patch document.Doc) (bool, error) {
	found, err := s.primary.UpdateOne(ctx, collection, filter, patch)
	if err == nil {
		return found, nil
	}
	fb, ok := s.demote(ctx, collection, "update", err)
	if !ok {
		return false, err
	}
	found, ferr := fb.UpdateOne(ctx, collection, filter, patch)
	if ferr != nil {
		return false, demoteErr(err, ferr)
	}
	return found, nil
}

func (s *failover) DeleteOne(ctx context.Context, collection string, filter document.Filter) (bool, error) {
	found, err := s.primary.DeleteOne(ctx, collection, filter)
	if err == nil {
		return found, nil
	}
	fb, ok := s.demote(ctx, collection, "delete", err)
	if !ok {
		return false, err
	}
	found, ferr := fb.DeleteOne(ctx, collection, filter)
	if ferr != nil {
		return false, demoteErr(err, ferr)
	}
	return found, nil
}

func (s *failover) Close(ctx context.Context) error {
	return s.primary.Close(ctx)
}
