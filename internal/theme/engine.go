// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme implements the versioned theme engine. Themes live in one
// collection and every mutation appends an immutable snapshot to the
// history collection, so any earlier version can be restored. Exactly one
// theme is active at a time once the collection is seeded.
package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"devfolio/internal/document"
	"devfolio/internal/metrics"
	"devfolio/internal/models"
	"devfolio/internal/store"
)

// DefaultHistoryLimit is how many history entries are kept per theme.
const DefaultHistoryLimit = 50

// activeCSSKey is the cache key of the active stylesheet.
const activeCSSKey = "active"

// settingsKeys are the top-level theme fields a patch may change.
var settingsKeys = []string{"name", "description", "colors", "typography", "layout", "effects", "customCSS"}

// StyleCache caches generated stylesheets. cache.StyleCache implements it.
type StyleCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, css string)
	InvalidateAll(ctx context.Context)
}

// Options configures an Engine.
type Options struct {
	Policy       Policy
	HistoryLimit int

	// Cache is optional.
	Cache   StyleCache
	Metrics *metrics.Metrics

	// Catalog seeds an empty collection. Nil means BuiltIn().
	Catalog []models.ThemeSettings
}

// Engine manages themes and their history on top of the storage facade.
type Engine struct {
	f     *store.Facade
	opts  Options
	clock *clock

	// mu serializes mutations so activation stays exclusive.
	mu sync.Mutex
	// seedMu guards catalog installation.
	seedMu sync.Mutex
}

// New creates an Engine.
func New(f *store.Facade, opts Options) *Engine {
	if opts.Policy == "" {
		opts.Policy = PolicyNewest
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = DefaultHistoryLimit
	}
	if opts.Catalog == nil {
		opts.Catalog = BuiltIn()
	}
	return &Engine{f: f, opts: opts, clock: newClock(time.Now)}
}

type actorKey struct{}

// WithActor returns a context whose theme mutations are attributed to actor.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func actorFrom(ctx context.Context) string {
	if a, ok := ctx.Value(actorKey{}).(string); ok && a != "" {
		return a
	}
	return "system"
}

// ListThemes returns every theme, oldest first. An empty collection is
// seeded with the built-in catalog first.
func (e *Engine) ListThemes(ctx context.Context) ([]models.Theme, error) {
	e.ensureSeeded(ctx)
	return store.ListAs[models.Theme](ctx, e.f, document.Themes, nil,
		document.FindOptions{SortField: document.FieldCreatedAt})
}

// ensureSeeded installs the catalog into an empty collection. Each item is
// persisted independently; failures are logged and do not stop the rest.
func (e *Engine) ensureSeeded(ctx context.Context) {
	if len(e.opts.Catalog) == 0 {
		return
	}
	e.seedMu.Lock()
	defer e.seedMu.Unlock()

	existing, err := e.f.List(ctx, document.Themes, nil, document.FindOptions{Limit: 1})
	if err != nil {
		slog.Warn("theme catalog check failed", "error", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	var errs []error
	installed := 0
	for i, settings := range e.opts.Catalog {
		t := &models.Theme{
			ThemeSettings: settings,
			Version:       1,
			IsActive:      i == 0,
			IsBuiltIn:     true,
			CreatedAt:     e.clock.next(),
		}
		if err := e.insert(ctx, t, "Theme created"); err != nil {
			errs = append(errs, fmt.Errorf("seed theme %q: %w", settings.Name, err))
			continue
		}
		installed++
	}
	if err := errors.Join(errs...); err != nil {
		slog.Warn("theme catalog partially installed", "installed", installed, "error", err)
	} else {
		slog.Info("theme catalog installed", "themes", installed)
	}
}

// GetActiveTheme returns the active theme, or nil when there is none.
func (e *Engine) GetActiveTheme(ctx context.Context) (*models.Theme, error) {
	e.ensureSeeded(ctx)
	return store.FindOneAs[models.Theme](ctx, e.f, document.Themes, document.Filter{"isActive": true})
}

// GetThemeByID returns the theme with the given id or native key, or nil.
func (e *Engine) GetThemeByID(ctx context.Context, id string) (*models.Theme, error) {
	return store.GetAs[models.Theme](ctx, e.f, document.Themes, id)
}

// Activate makes the theme the only active one. It does not change the
// version. It reports false when the theme does not exist.
func (e *Engine) Activate(ctx context.Context, id string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.GetThemeByID(ctx, id)
	if err != nil || t == nil {
		return false, err
	}
	if err := e.activateLocked(ctx, t); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Engine) activateLocked(ctx context.Context, t *models.Theme) error {
	active, err := store.ListAs[models.Theme](ctx, e.f, document.Themes, document.Filter{"isActive": true}, document.FindOptions{})
	if err != nil {
		return fmt.Errorf("list active themes: %w", err)
	}
	for _, other := range active {
		if other.ID == t.ID {
			continue
		}
		if _, err := e.f.Update(ctx, document.Themes, other.ID, document.Doc{"isActive": false}); err != nil {
			return fmt.Errorf("deactivate theme %s: %w", other.ID, err)
		}
	}
	ok, err := e.f.Update(ctx, document.Themes, t.ID, document.Doc{"isActive": true})
	if err != nil {
		return fmt.Errorf("activate theme %s: %w", t.ID, err)
	}
	if !ok {
		return fmt.Errorf("activate theme %s: not found", t.ID)
	}
	t.IsActive = true
	e.invalidate(ctx)
	return e.appendHistory(ctx, t, "Theme activated")
}

// Create inserts a new theme at version 1. It becomes active only when no
// other theme is active.
func (e *Engine) Create(ctx context.Context, settings models.ThemeSettings) (*models.Theme, error) {
	if err := validateSettings(settings); err != nil {
		return nil, err
	}
	e.ensureSeeded(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	t := &models.Theme{
		ThemeSettings: settings,
		Version:       1,
		CreatedAt:     e.clock.next(),
	}
	if err := e.insert(ctx, t, "Theme created"); err != nil {
		return nil, err
	}
	if err := e.ensureActiveLocked(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (e *Engine) ensureActiveLocked(ctx context.Context, candidate *models.Theme) error {
	active, err := store.FindOneAs[models.Theme](ctx, e.f, document.Themes, document.Filter{"isActive": true})
	if err != nil || active != nil {
		return err
	}
	return e.activateLocked(ctx, candidate)
}

// insert creates t and records its first history entry.
func (e *Engine) insert(ctx context.Context, t *models.Theme, description string) error {
	t.UpdatedAt = t.CreatedAt
	id, err := store.CreateFrom(ctx, e.f, document.Themes, t)
	if err != nil {
		return fmt.Errorf("create theme: %w", err)
	}
	t.ID = id
	return e.appendHistory(ctx, t, description)
}

// Update deep-merges patch into the theme settings, increments the version
// by one and records the merged snapshot. Keys outside the theme settings
// are ignored. It returns nil when the theme does not exist.
func (e *Engine) Update(ctx context.Context, id string, patch map[string]any, description string) (*models.Theme, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.GetThemeByID(ctx, id)
	if err != nil || t == nil {
		return nil, err
	}

	merged, err := mergeSettings(t.ThemeSettings, patch)
	if err != nil {
		return nil, err
	}
	if err := validateSettings(merged); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		description = "Theme updated"
	}
	if err := e.writeSettings(ctx, t, merged); err != nil {
		return nil, err
	}
	if err := e.appendHistory(ctx, t, description); err != nil {
		return nil, err
	}
	return t, nil
}

// writeSettings replaces the stored settings of t and bumps its version.
func (e *Engine) writeSettings(ctx context.Context, t *models.Theme, settings models.ThemeSettings) error {
	encoded, err := document.From(settings)
	if err != nil {
		return err
	}
	patch := document.Doc{"version": t.Version + 1}
	for _, k := range settingsKeys {
		// Emptied optional fields must overwrite the stored value.
		patch[k] = encoded[k]
	}

	ok, err := e.f.Update(ctx, document.Themes, t.ID, patch)
	if err != nil {
		return fmt.Errorf("update theme %s: %w", t.ID, err)
	}
	if !ok {
		return fmt.Errorf("update theme %s: not found", t.ID)
	}
	t.ThemeSettings = settings
	t.Version++
	t.UpdatedAt = time.Now().UTC()
	if t.IsActive {
		e.invalidate(ctx)
	}
	return nil
}

// Delete removes the theme. It refuses to delete the last theme. When the
// active theme is deleted, the configured policy picks the next one.
func (e *Engine) Delete(ctx context.Context, id string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.GetThemeByID(ctx, id)
	if err != nil || t == nil {
		return false, err
	}
	all, err := store.ListAs[models.Theme](ctx, e.f, document.Themes, nil, document.FindOptions{})
	if err != nil {
		return false, err
	}
	if len(all) <= 1 {
		return false, nil
	}

	ok, err := e.f.Delete(ctx, document.Themes, t.ID)
	if err != nil || !ok {
		return ok, err
	}
	if err := e.appendHistory(ctx, t, "Theme deleted"); err != nil {
		slog.Error("recording theme deletion", "theme", t.ID, "error", err)
	}

	if t.IsActive {
		remaining := make([]models.Theme, 0, len(all)-1)
		for _, other := range all {
			if other.ID != t.ID {
				remaining = append(remaining, other)
			}
		}
		if next := e.opts.Policy.pick(remaining); next != nil {
			slog.Info("active theme deleted, activating replacement",
				"deleted", t.ID,
				"activated", next.ID,
				"policy", string(e.opts.Policy),
			)
			if err := e.activateLocked(ctx, next); err != nil {
				slog.Error("activating replacement theme",
					"deleted", t.ID,
					"replacement", next.ID,
					"error", err,
				)
			}
		}
	}
	e.invalidate(ctx)
	return true, nil
}

// Duplicate copies the theme's settings into a new inactive theme at
// version 1. An empty name derives one from the source. It returns nil
// when the source does not exist.
func (e *Engine) Duplicate(ctx context.Context, id, name string) (*models.Theme, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	src, err := e.GetThemeByID(ctx, id)
	if err != nil || src == nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = src.Name + " (Copy)"
	}

	settings := src.ThemeSettings
	settings.Name = name
	t := &models.Theme{
		ThemeSettings: settings,
		Version:       1,
		CreatedAt:     e.clock.next(),
	}
	if err := e.insert(ctx, t, fmt.Sprintf("Duplicated from %s", src.Name)); err != nil {
		return nil, err
	}
	return t, nil
}

// ListHistory returns history entries newest first. An empty themeID lists
// entries of every theme. themeID may be a native key; an id that no longer
// resolves is matched as is, so a deleted theme keeps its history. A limit
// of 0 means no limit.
func (e *Engine) ListHistory(ctx context.Context, themeID string, limit int) ([]models.ThemeHistoryEntry, error) {
	var filter document.Filter
	if themeID != "" {
		t, err := e.GetThemeByID(ctx, themeID)
		if err != nil {
			return nil, err
		}
		if t != nil {
			themeID = t.ID
		}
		filter = document.Filter{"themeId": themeID}
	}
	return store.ListAs[models.ThemeHistoryEntry](ctx, e.f, document.ThemeHistory, filter, document.Newest.Page(limit, 0))
}

// Revert restores the settings captured by a history entry of the same
// theme. The version still moves forward by one. It returns nil when the
// theme or the entry does not exist, or the entry belongs to another theme.
func (e *Engine) Revert(ctx context.Context, themeID, entryID string) (*models.Theme, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.GetThemeByID(ctx, themeID)
	if err != nil || t == nil {
		return nil, err
	}
	entry, err := store.GetAs[models.ThemeHistoryEntry](ctx, e.f, document.ThemeHistory, entryID)
	if err != nil || entry == nil {
		return nil, err
	}
	if entry.ThemeID != t.ID {
		return nil, nil
	}

	if err := e.writeSettings(ctx, t, entry.Settings); err != nil {
		return nil, err
	}
	if err := e.appendHistory(ctx, t, fmt.Sprintf("Reverted to version %d", entry.Version)); err != nil {
		return nil, err
	}
	return t, nil
}

// ActiveCSS returns the stylesheet of the active theme, using the cache
// when one is configured.
func (e *Engine) ActiveCSS(ctx context.Context) (string, error) {
	if e.opts.Cache != nil {
		if css, ok := e.opts.Cache.Get(ctx, activeCSSKey); ok {
			e.opts.Metrics.RecordThemeCache(true)
			return css, nil
		}
		e.opts.Metrics.RecordThemeCache(false)
	}

	t, err := e.GetActiveTheme(ctx)
	if err != nil {
		return "", err
	}
	css := GenerateCSS(t)
	if e.opts.Cache != nil {
		e.opts.Cache.Set(ctx, activeCSSKey, css)
	}
	return css, nil
}

func (e *Engine) invalidate(ctx context.Context) {
	if e.opts.Cache != nil {
		e.opts.Cache.InvalidateAll(ctx)
	}
}

// appendHistory records the current state of t and prunes entries beyond
// the retention limit.
func (e *Engine) appendHistory(ctx context.Context, t *models.Theme, description string) error {
	entry := models.ThemeHistoryEntry{
		ThemeID:     t.ID,
		Version:     t.Version,
		Settings:    t.ThemeSettings,
		Description: description,
		ChangedBy:   actorFrom(ctx),
		CreatedAt:   e.clock.next(),
	}
	if _, err := store.CreateFrom(ctx, e.f, document.ThemeHistory, entry); err != nil {
		return fmt.Errorf("append theme history: %w", err)
	}

	stale, err := e.f.List(ctx, document.ThemeHistory, document.Filter{"themeId": t.ID},
		document.FindOptions{SortField: document.FieldCreatedAt, Descending: true, Skip: e.opts.HistoryLimit})
	if err != nil {
		return fmt.Errorf("list theme history: %w", err)
	}
	for _, d := range stale {
		id, _ := d[document.FieldID].(string)
		if _, err := e.f.Delete(ctx, document.ThemeHistory, id); err != nil {
			return fmt.Errorf("prune theme history: %w", err)
		}
	}
	return nil
}

func validateSettings(s models.ThemeSettings) error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: theme name is required", store.ErrInvalid)
	}
	return nil
}

// mergeSettings deep-merges the allowed keys of patch into s.
func mergeSettings(s models.ThemeSettings, patch map[string]any) (models.ThemeSettings, error) {
	base, err := document.From(s)
	if err != nil {
		return s, err
	}
	for _, k := range settingsKeys {
		if v, ok := patch[k]; ok {
			base[k] = mergeValue(base[k], v)
		}
	}
	var out models.ThemeSettings
	if err := document.Decode(base, &out); err != nil {
		return s, fmt.Errorf("%w: %v", store.ErrInvalid, err)
	}
	return out, nil
}

func mergeValue(dst, src any) any {
	sm, ok := src.(map[string]any)
	if !ok {
		return src
	}
	dm, ok := dst.(map[string]any)
	if !ok {
		return sm
	}
	out := make(map[string]any, len(dm)+len(sm))
	for k, v := range dm {
		out[k] = v
	}
	for k, v := range sm {
		out[k] = mergeValue(dm[k], v)
	}
	return out
}

// clock hands out strictly increasing millisecond timestamps so records
// created in a burst keep their order on every backend.
type clock struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

func newClock(now func() time.Time) *clock {
	return &clock{now: now}
}

func (c *clock) next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now().UTC().Truncate(time.Millisecond)
	if !t.After(c.last) {
		t = c.last.Add(time.Millisecond)
	}
	c.last = t
	return t
}
