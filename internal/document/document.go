// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package document defines the contract every physical backend of the
// storage facade implements. Records travel between layers as Doc values:
// JSON-shaped maps whose keys are the records' json field names.
package document

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection names. They double as the array keys of the fallback file.
const (
	Projects     = "projects"
	Inquiries    = "clientRequests"
	AdminUsers   = "adminUsers"
	Settings     = "websiteSettings"
	Themes       = "themes"
	ThemeHistory = "themeHistory"
	ChatSessions = "chatSessions"
)

// Collections lists every collection the application uses.
var Collections = []string{
	Projects, Inquiries, AdminUsers, Settings, Themes, ThemeHistory, ChatSessions,
}

// Well-known field names.
const (
	FieldID        = "id"
	FieldKey       = "_id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Doc is a single record in its JSON shape.
type Doc map[string]any

// Filter selects documents by top-level field equality.
type Filter map[string]any

// FindOptions controls ordering and paging of Find. A zero Limit means
// no limit.
type FindOptions struct {
	SortField  string
	Descending bool
	Limit      int
	Skip       int
}

// Newest orders by creation time, most recent first. List views use it.
var Newest = FindOptions{SortField: FieldCreatedAt, Descending: true}

// Page returns a copy of o with the given limit and skip applied.
func (o FindOptions) Page(limit, skip int) FindOptions {
	o.Limit = limit
	o.Skip = skip
	return o
}

// Store is a physical backend. Not-found is never an error: Find returns an
// empty slice and UpdateOne/DeleteOne return false.
//
// Insert receives a document that already carries FieldID; the backend is
// responsible for assigning its own native key. Implementations must not
// retain or mutate the maps they are given.
type Store interface {
	Name() string
	Insert(ctx context.Context, collection string, doc Doc) error
	Find(ctx context.Context, collection string, filter Filter, opts FindOptions) ([]Doc, error)
	UpdateOne(ctx context.Context, collection string, filter Filter, patch Doc) (bool, error)
	DeleteOne(ctx context.Context, collection string, filter Filter) (bool, error)
	Close(ctx context.Context) error
}

// NativeKeyer is implemented by backends whose native key has a format of
// its own. NativeKeyFilter returns a filter on the native key when id looks
// like one.
type NativeKeyer interface {
	NativeKeyFilter(id string) (Filter, bool)
}

// ByID selects the document whose application identity is id.
func ByID(id string) Filter {
	return Filter{FieldID: id}
}

// Normalize makes sure both identity fields are present and returns d.
// A document written by another tool may only carry the native key; a
// document from a backend without native keys may only carry the id.
func Normalize(d Doc) Doc {
	if d == nil {
		return nil
	}
	id, _ := d[FieldID].(string)
	key, _ := d[FieldKey].(string)
	switch {
	case id == "" && key != "":
		d[FieldID] = key
	case key == "" && id != "":
		d[FieldKey] = id
	}
	return d
}

// From converts a record into its Doc shape.
func From(v any) (Doc, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var d Doc
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return d, nil
}

// Decode converts a Doc into the record pointed to by out.
func Decode(d Doc, out any) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// Clone returns a deep copy of d.
func (d Doc) Clone() Doc {
	if d == nil {
		return nil
	}
	out := make(Doc, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Doc:
		return t.Clone()
	case map[string]any:
		return map[string]any(Doc(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
