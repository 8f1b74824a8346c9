// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides the storage facade and the typed per-entity stores
// built on it. The facade pins itself to one physical backend the first
// time it is used: the primary document store when it answers within the
// connect timeout, otherwise the local fallback store for the rest of the
// process lifetime.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"devfolio/internal/document"
	"devfolio/internal/metrics"
)

// DefaultConnectTimeout bounds the one-time connection attempt.
const DefaultConnectTimeout = 5 * time.Second

// Opener connects to the primary backend. The context carries the connect
// deadline.
type Opener func(ctx context.Context) (document.Store, error)

// FallbackFunc returns a fallback store. It is called once when the facade
// pins to the fallback, and once per primary call that has to be demoted.
type FallbackFunc func() document.Store

// Options configures a Facade.
type Options struct {
	// Primary is nil when no primary store is configured.
	Primary        Opener
	Fallback       FallbackFunc
	ConnectTimeout time.Duration
	Metrics        *metrics.Metrics
}

// seeder is implemented by fallback stores that bootstrap an empty file.
type seeder interface {
	EnsureSeeded(ctx context.Context) error
}

// Facade routes every CRUD call to the pinned backend and normalizes the
// dual identity of returned documents.
type Facade struct {
	opts Options
	now  func() time.Time

	mu          sync.Mutex
	initialized bool
	backend     document.Store
	pinned      string
}

// NewFacade creates a Facade. Nothing is connected until Initialize or the
// first CRUD call.
func NewFacade(opts Options) *Facade {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}
	return &Facade{opts: opts, now: time.Now}
}

// Initialize connects to the primary store once. On failure the facade is
// pinned to the fallback store and never retries the primary. Later calls
// are no-ops. Connectivity failures are logged, never returned.
func (f *Facade) Initialize(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.initialized {
		return
	}
	f.initialized = true

	if f.opts.Primary != nil {
		cctx, cancel := context.WithTimeout(ctx, f.opts.ConnectTimeout)
		primary, err := f.opts.Primary(cctx)
		cancel()
		if err == nil {
			f.backend = &failover{primary: primary, fallback: f.opts.Fallback, metrics: f.opts.Metrics}
			f.pinned = primary.Name()
			f.opts.Metrics.SetBackend(f.pinned)
			slog.Info("storage pinned to primary backend", "backend", f.pinned)
			return
		}
		slog.Warn("primary store unavailable, pinning to fallback for process lifetime",
			"error", err,
			"timeout", f.opts.ConnectTimeout.String(),
		)
	} else {
		slog.Info("no primary store configured, using fallback")
	}

	fb := f.opts.Fallback()
	if s, ok := fb.(seeder); ok {
		if err := s.EnsureSeeded(ctx); err != nil {
			slog.Warn("fallback store seeding failed", "error", err)
		}
	}
	f.backend = fb
	f.pinned = fb.Name()
	f.opts.Metrics.SetBackend(f.pinned)
}

// Backend returns the name of the pinned backend, or "" before Initialize.
func (f *Facade) Backend() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pinned
}

// Close releases the pinned backend.
func (f *Facade) Close(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.backend == nil {
		return nil
	}
	return f.backend.Close(ctx)
}

func (f *Facade) store(ctx context.Context) document.Store {
	f.Initialize(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.backend
}

func (f *Facade) stamp() string {
	return f.now().UTC().Format(time.RFC3339Nano)
}

// Create inserts doc and returns its identity. A missing id is generated
// as a time-ordered UUID; missing timestamps are filled in.
func (f *Facade) Create(ctx context.Context, collection string, doc document.Doc) (string, error) {
	d := doc.Clone()
	if d == nil {
		d = document.Doc{}
	}
	id, _ := d[document.FieldID].(string)
	if id == "" {
		id = newID()
		d[document.FieldID] = id
	}
	delete(d, document.FieldKey)

	now := f.stamp()
	if isZeroTime(d[document.FieldCreatedAt]) {
		d[document.FieldCreatedAt] = now
	}
	if isZeroTime(d[document.FieldUpdatedAt]) {
		d[document.FieldUpdatedAt] = now
	}

	err := f.store(ctx).Insert(ctx, collection, d)
	f.opts.Metrics.RecordStoreOp(collection, "create", err)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the document with the given identity, or nil when none
// exists. The identity may be either the id or the backend's native key.
func (f *Facade) Get(ctx context.Context, collection, id string) (document.Doc, error) {
	b := f.store(ctx)

	d, err := f.first(ctx, b, collection, document.ByID(id))
	if err == nil && d == nil {
		if filter, ok := nativeFilter(b, id); ok {
			d, err = f.first(ctx, b, collection, filter)
		}
	}
	f.opts.Metrics.RecordStoreOp(collection, "get", err)
	return d, err
}

// FindOne returns the first document matching filter, or nil.
func (f *Facade) FindOne(ctx context.Context, collection string, filter document.Filter) (document.Doc, error) {
	d, err := f.first(ctx, f.store(ctx), collection, filter)
	f.opts.Metrics.RecordStoreOp(collection, "find", err)
	return d, err
}

func (f *Facade) first(ctx context.Context, b document.Store, collection string, filter document.Filter) (document.Doc, error) {
	docs, err := b.Find(ctx, collection, filter, document.FindOptions{Limit: 1})
	if err != nil || len(docs) == 0 {
		return nil, err
	}
	return document.Normalize(docs[0]), nil
}

// List returns the matching documents. An empty result is an empty slice.
func (f *Facade) List(ctx context.Context, collection string, filter document.Filter, opts document.FindOptions) ([]document.Doc, error) {
	docs, err := f.store(ctx).Find(ctx, collection, filter, opts)
	f.opts.Metrics.RecordStoreOp(collection, "list", err)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		document.Normalize(d)
	}
	if docs == nil {
		docs = []document.Doc{}
	}
	return docs, nil
}

// Update sets the patch fields on the document with the given identity and
// reports whether it was found. Identity fields in patch are ignored.
func (f *Facade) Update(ctx context.Context, collection, id string, patch document.Doc) (bool, error) {
	b := f.store(ctx)

	p := patch.Clone()
	if p == nil {
		p = document.Doc{}
	}
	delete(p, document.FieldID)
	delete(p, document.FieldKey)
	delete(p, document.FieldCreatedAt)
	p[document.FieldUpdatedAt] = f.stamp()

	ok, err := b.UpdateOne(ctx, collection, document.ByID(id), p)
	if err == nil && !ok {
		if filter, native := nativeFilter(b, id); native {
			ok, err = b.UpdateOne(ctx, collection, filter, p)
		}
	}
	f.opts.Metrics.RecordStoreOp(collection, "update", err)
	return ok, err
}

// Delete removes the document with the given identity and reports whether
// it existed.
func (f *Facade) Delete(ctx context.Context, collection, id string) (bool, error) {
	b := f.store(ctx)

	ok, err := b.DeleteOne(ctx, collection, document.ByID(id))
	if err == nil && !ok {
		if filter, native := nativeFilter(b, id); native {
			ok, err = b.DeleteOne(ctx, collection, filter)
		}
	}
	f.opts.Metrics.RecordStoreOp(collection, "delete", err)
	return ok, err
}

func nativeFilter(b document.Store, id string) (document.Filter, bool) {
	nk, ok := b.(document.NativeKeyer)
	if !ok {
		return nil, false
	}
	return nk.NativeKeyFilter(id)
}

func isZeroTime(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		if t == "" {
			return true
		}
		ts, err := time.Parse(time.RFC3339Nano, t)
		return err == nil && ts.IsZero()
	}
	return false
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
