// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"fmt"

	"devfolio/internal/document"
)

// ErrInvalid marks input rejected by validation. Handlers map it to 400.
var ErrInvalid = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// CreateFrom encodes rec as a document and creates it in collection.
func CreateFrom(ctx context.Context, f *Facade, collection string, rec any) (string, error) {
	d, err := document.From(rec)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", collection, err)
	}
	return f.Create(ctx, collection, d)
}

// GetAs loads the record with the given identity into a T. It returns nil
// when no record exists.
func GetAs[T any](ctx context.Context, f *Facade, collection, id string) (*T, error) {
	d, err := f.Get(ctx, collection, id)
	if err != nil || d == nil {
		return nil, err
	}
	return decodeAs[T](collection, d)
}

// FindOneAs loads the first record matching filter into a T, or nil.
func FindOneAs[T any](ctx context.Context, f *Facade, collection string, filter document.Filter) (*T, error) {
	d, err := f.FindOne(ctx, collection, filter)
	if err != nil || d == nil {
		return nil, err
	}
	return decodeAs[T](collection, d)
}

// ListAs loads the matching records into a []T. The result is never nil.
func ListAs[T any](ctx context.Context, f *Facade, collection string, filter document.Filter, opts document.FindOptions) ([]T, error) {
	docs, err := f.List(ctx, collection, filter, opts)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		v, err := decodeAs[T](collection, d)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func decodeAs[T any](collection string, d document.Doc) (*T, error) {
	var v T
	if err := document.Decode(d, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	return &v, nil
}

// stringField returns patch[key] as a string, reporting whether the key is
// present. A present non-string value is an error.
func stringField(patch document.Doc, key string) (string, bool, error) {
	v, ok := patch[key]
	if !ok {
		return "", false, nil
	}
	s, isString := v.(string)
	if !isString {
		return "", true, invalid("%s must be a string", key)
	}
	return s, true, nil
}
