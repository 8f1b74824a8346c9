// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package filestore provides the local persistence used when the primary
// document store is unreachable. A FileStore keeps one JSON document in
// memory and rewrites the whole file after every mutation. A Fallback wraps
// it with seed data and the durability policy the facade expects.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"devfolio/internal/document"
)

// ErrPersist wraps failures to write the backing file. The in-memory
// mutation that preceded the failed write is kept.
var ErrPersist = errors.New("persist data file")

// fileState is the in-memory copy of one data file. Every FileStore that
// points at the same file shares it, including short-lived instances, so
// a load-mutate-save cycle always starts from the latest write.
type fileState struct {
	mu     sync.Mutex
	loaded bool
	data   map[string][]document.Doc

	// seedMu serializes the empty check and seeding across instances.
	seedMu sync.Mutex
}

var states sync.Map

func stateFor(path string) *fileState {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	st, _ := states.LoadOrStore(abs, &fileState{})
	return st.(*fileState)
}

// FileStore is a document.Store backed by a single JSON file.
type FileStore struct {
	path string
	st   *fileState
}

// New returns a FileStore for the file at path. The file is read on first use.
func New(path string) *FileStore {
	return &FileStore{path: path, st: stateFor(path)}
}

// Name identifies the backend in logs and metrics.
func (s *FileStore) Name() string { return "file" }

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// load reads the file once per path. A missing file starts from an empty
// shape with one array per collection. Callers must hold s.st.mu.
func (s *FileStore) load() error {
	if s.st.loaded {
		return nil
	}

	data := make(map[string][]document.Doc, len(document.Collections))
	raw, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return fmt.Errorf("read data file: %w", err)
	case len(raw) > 0:
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("parse data file %s: %w", s.path, err)
		}
	}

	for _, c := range document.Collections {
		if data[c] == nil {
			data[c] = []document.Doc{}
		}
	}
	s.st.data = data
	s.st.loaded = true
	return nil
}

// save rewrites the whole file, pretty-printed. The new content is written
// to a temporary file first and renamed over the old one. Callers must
// hold s.st.mu.
func (s *FileStore) save() error {
	b, err := json.MarshalIndent(s.st.data, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersist, err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrPersist, err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

// Empty reports whether every collection is empty.
func (s *FileStore) Empty() (bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if err := s.load(); err != nil {
		return false, err
	}
	for _, docs := range s.st.data {
		if len(docs) > 0 {
			return false, nil
		}
	}
	return true, nil
}

// Insert appends a copy of doc to the collection. A missing native key is
// set to the document's id.
func (s *FileStore) Insert(_ context.Context, collection string, doc document.Doc) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	d := document.Normalize(doc.Clone())
	s.st.data[collection] = append(s.st.data[collection], d)
	return s.save()
}

// Find returns copies of the matching documents.
func (s *FileStore) Find(_ context.Context, collection string, filter document.Filter, opts document.FindOptions) ([]document.Doc, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}
	var out []document.Doc
	for _, d := range s.st.data[collection] {
		if document.Matches(d, filter) {
			out = append(out, d.Clone())
		}
	}
	return document.Apply(out, opts), nil
}

// UpdateOne sets the patch fields on the first matching document.
func (s *FileStore) UpdateOne(_ context.Context, collection string, filter document.Filter, patch document.Doc) (bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if err := s.load(); err != nil {
		return false, err
	}
	for _, d := range s.st.data[collection] {
		if !document.Matches(d, filter) {
			continue
		}
		for k, v := range patch.Clone() {
			if k == document.FieldID || k == document.FieldKey {
				continue
			}
			d[k] = v
		}
		return true, s.save()
	}
	return false, nil
}

// DeleteOne removes the first matching document.
func (s *FileStore) DeleteOne(_ context.Context, collection string, filter document.Filter) (bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if err := s.load(); err != nil {
		return false, err
	}
	docs := s.st.data[collection]
	for i, d := range docs {
		if !document.Matches(d, filter) {
			continue
		}
		s.st.data[collection] = append(docs[:i], docs[i+1:]...)
		return true, s.save()
	}
	return false, nil
}

// withSeedLock runs fn while no other instance on the same file is seeding.
func (s *FileStore) withSeedLock(fn func()) {
	s.st.seedMu.Lock()
	defer s.st.seedMu.Unlock()
	fn()
}

// Close is a no-op; every mutation is already on disk.
func (s *FileStore) Close(context.Context) error { return nil }
