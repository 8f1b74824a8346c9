package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"devfolio/internal/document"
)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "data", "portfolio.json")
}

func TestFileStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := New(testPath(t))

	if err := s.Insert(ctx, document.Projects, document.Doc{"id": "p1", "title": "One", "isActive": true}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := s.Insert(ctx, document.Projects, document.Doc{"id": "p2", "title": "Two", "isActive": false}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	active, err := s.Find(ctx, document.Projects, document.Filter{"isActive": true}, document.FindOptions{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(active) != 1 || active[0]["id"] != "p1" {
		t.Fatalf("active projects: got %v", active)
	}
	if active[0]["_id"] != "p1" {
		t.Errorf("native key should mirror id, got %v", active[0]["_id"])
	}

	ok, err := s.UpdateOne(ctx, document.Projects, document.ByID("p2"), document.Doc{"title": "Two v2", "id": "hijack"})
	if err != nil || !ok {
		t.Fatalf("UpdateOne: ok=%v err=%v", ok, err)
	}
	got, _ := s.Find(ctx, document.Projects, document.ByID("p2"), document.FindOptions{})
	if len(got) != 1 || got[0]["title"] != "Two v2" {
		t.Errorf("after update: got %v", got)
	}

	ok, err = s.UpdateOne(ctx, document.Projects, document.ByID("missing"), document.Doc{"title": "x"})
	if err != nil || ok {
		t.Errorf("update missing: ok=%v err=%v, want false, nil", ok, err)
	}

	ok, err = s.DeleteOne(ctx, document.Projects, document.ByID("p1"))
	if err != nil || !ok {
		t.Fatalf("DeleteOne: ok=%v err=%v", ok, err)
	}
	ok, _ = s.DeleteOne(ctx, document.Projects, document.ByID("p1"))
	if ok {
		t.Error("second delete should report false")
	}
}

func TestFileStoreFindReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New(testPath(t))
	s.Insert(ctx, document.Themes, document.Doc{"id": "t1", "name": "A"})

	docs, _ := s.Find(ctx, document.Themes, nil, document.FindOptions{})
	docs[0]["name"] = "mutated"

	again, _ := s.Find(ctx, document.Themes, nil, document.FindOptions{})
	if again[0]["name"] != "A" {
		t.Errorf("caller mutation leaked into the store: %v", again[0]["name"])
	}
}

func TestFileStorePersistsFullDocument(t *testing.T) {
	ctx := context.Background()
	path := testPath(t)

	s := New(path)
	if err := s.Insert(ctx, document.Inquiries, document.Doc{"id": "i1", "name": "Ann"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.Contains(string(raw), "\n  ") {
		t.Error("expected pretty-printed JSON")
	}

	var shape map[string][]map[string]any
	if err := json.Unmarshal(raw, &shape); err != nil {
		t.Fatalf("file is not valid JSON: %v", err)
	}
	for _, c := range document.Collections {
		if _, ok := shape[c]; !ok {
			t.Errorf("file is missing collection array %q", c)
		}
	}

	// A new instance reads what the first one wrote.
	reopened := New(path)
	docs, err := reopened.Find(ctx, document.Inquiries, document.ByID("i1"), document.FindOptions{})
	if err != nil {
		t.Fatalf("Find after reopen: %v", err)
	}
	if len(docs) != 1 || docs[0]["name"] != "Ann" {
		t.Errorf("after reopen: got %v", docs)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := testPath(t)
	os.MkdirAll(filepath.Dir(path), 0o755)
	os.WriteFile(path, []byte("{not json"), 0o644)

	_, err := New(path).Find(context.Background(), document.Projects, nil, document.FindOptions{})
	if err == nil {
		t.Error("expected parse error for corrupt file")
	}
}

// blockDataDir replaces the directory that would hold path with a regular
// file, so every later save fails.
func blockDataDir(t *testing.T, path string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove data dir: %v", err)
	}
	if err := os.WriteFile(dir, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
}

func TestFileStoreWriteFailureKeepsMutation(t *testing.T) {
	ctx := context.Background()
	path := testPath(t)
	s := New(path)

	// Load the (missing) file before the directory disappears.
	if _, err := s.Find(ctx, document.Projects, nil, document.FindOptions{}); err != nil {
		t.Fatalf("Find: %v", err)
	}
	blockDataDir(t, path)

	err := s.Insert(ctx, document.Projects, document.Doc{"id": "p1"})
	if !errors.Is(err, ErrPersist) {
		t.Fatalf("Insert: got %v, want ErrPersist", err)
	}

	docs, _ := s.Find(ctx, document.Projects, nil, document.FindOptions{})
	if len(docs) != 1 {
		t.Errorf("in-memory mutation should be kept, got %d docs", len(docs))
	}
}

func TestFileStoreInstancesShareState(t *testing.T) {
	ctx := context.Background()
	path := testPath(t)

	early, late := New(path), New(path)
	if _, err := early.Empty(); err != nil {
		t.Fatalf("Empty: %v", err)
	}
	if err := late.Insert(ctx, document.Projects, document.Doc{"id": "late"}); err != nil {
		t.Fatalf("Insert late: %v", err)
	}
	if err := early.Insert(ctx, document.Projects, document.Doc{"id": "early"}); err != nil {
		t.Fatalf("Insert early: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	var onDisk map[string][]document.Doc
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("parse data file: %v", err)
	}
	if got := len(onDisk[document.Projects]); got != 2 {
		t.Errorf("got %d projects on disk, want 2: %v", got, onDisk[document.Projects])
	}
}

func TestFileStoreConcurrentInstances(t *testing.T) {
	ctx := context.Background()
	path := testPath(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := New(path)
			if _, err := s.Empty(); err != nil {
				t.Errorf("Empty: %v", err)
				return
			}
			if err := s.Insert(ctx, document.ChatSessions, document.Doc{"id": newID(), "n": float64(i)}); err != nil {
				t.Errorf("Insert: %v", err)
			}
		}(i)
	}
	wg.Wait()

	docs, _ := New(path).Find(ctx, document.ChatSessions, nil, document.FindOptions{})
	if len(docs) != 20 {
		t.Errorf("got %d docs, want 20", len(docs))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	var onDisk map[string][]document.Doc
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("parse data file: %v", err)
	}
	if got := len(onDisk[document.ChatSessions]); got != 20 {
		t.Errorf("got %d docs on disk, want 20", got)
	}
}

func TestFallbackConcurrentSeedingOnce(t *testing.T) {
	ctx := context.Background()
	path := testPath(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f := NewFallback(path, SeedOptions{AdminPassword: "s3cret"})
			if err := f.EnsureSeeded(ctx); err != nil {
				t.Errorf("EnsureSeeded: %v", err)
			}
		}()
	}
	wg.Wait()

	admins, _ := New(path).Find(ctx, document.AdminUsers, nil, document.FindOptions{})
	if len(admins) != 1 {
		t.Errorf("got %d admins, want exactly 1", len(admins))
	}
}

func TestFallbackSeedsEmptyFile(t *testing.T) {
	ctx := context.Background()
	f := NewFallback(testPath(t), SeedOptions{AdminPassword: "s3cret"})

	for _, c := range []string{document.Projects, document.Inquiries, document.Settings, document.ChatSessions, document.AdminUsers} {
		docs, err := f.Find(ctx, c, nil, document.FindOptions{})
		if err != nil {
			t.Fatalf("Find %s: %v", c, err)
		}
		if len(docs) != 1 {
			t.Errorf("%s: got %d seeded records, want 1", c, len(docs))
		}
	}

	themes, _ := f.Find(ctx, document.Themes, nil, document.FindOptions{})
	if len(themes) != 0 {
		t.Errorf("themes should be left to the theme engine, got %d", len(themes))
	}

	admins, _ := f.Find(ctx, document.AdminUsers, nil, document.FindOptions{})
	hash, _ := admins[0]["passwordHash"].(string)
	if hash == "" || hash == "s3cret" {
		t.Fatalf("admin password must be stored hashed, got %q", hash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestFallbackDoesNotReseed(t *testing.T) {
	ctx := context.Background()
	path := testPath(t)

	s := New(path)
	s.Insert(ctx, document.Projects, document.Doc{"id": "existing"})

	f := NewFallback(path, SeedOptions{})
	if err := f.EnsureSeeded(ctx); err != nil {
		t.Fatalf("EnsureSeeded: %v", err)
	}
	docs, _ := f.Find(ctx, document.Projects, nil, document.FindOptions{})
	if len(docs) != 1 || docs[0]["id"] != "existing" {
		t.Errorf("non-empty file must not be seeded, got %v", docs)
	}
	admins, _ := f.Find(ctx, document.AdminUsers, nil, document.FindOptions{})
	if len(admins) != 0 {
		t.Errorf("got %d admins, want 0", len(admins))
	}
}

func TestFallbackToleratesWriteFailure(t *testing.T) {
	ctx := context.Background()
	path := testPath(t)

	f := NewFallback(path, SeedOptions{Disabled: true})
	if _, err := f.Find(ctx, document.Projects, nil, document.FindOptions{}); err != nil {
		t.Fatalf("Find: %v", err)
	}
	blockDataDir(t, path)

	if err := f.Insert(ctx, document.Projects, document.Doc{"id": "p1"}); err != nil {
		t.Fatalf("Insert should tolerate write failure, got %v", err)
	}
	ok, err := f.UpdateOne(ctx, document.Projects, document.ByID("p1"), document.Doc{"title": "x"})
	if err != nil || !ok {
		t.Errorf("UpdateOne: ok=%v err=%v", ok, err)
	}
}
