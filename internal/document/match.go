// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package document

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Matches reports whether every filter field equals the document's field.
// Values are compared in their JSON shape, so an int filter matches a
// float64 stored value.
func Matches(d Doc, f Filter) bool {
	for k, want := range f {
		got, ok := d[k]
		if !ok {
			if want == nil {
				continue
			}
			return false
		}
		if !reflect.DeepEqual(jsonShape(want), got) {
			return false
		}
	}
	return true
}

func jsonShape(v any) any {
	switch v.(type) {
	case nil, string, bool, float64:
		return v
	}
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}

// Apply sorts docs in place according to opts, then applies skip and limit.
func Apply(docs []Doc, opts FindOptions) []Doc {
	if opts.SortField != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			c := compare(docs[i][opts.SortField], docs[j][opts.SortField])
			if opts.Descending {
				return c > 0
			}
			return c < 0
		})
	}
	if opts.Skip > 0 {
		if opts.Skip >= len(docs) {
			return docs[:0]
		}
		docs = docs[opts.Skip:]
	}
	if opts.Limit > 0 && len(docs) > opts.Limit {
		docs = docs[:opts.Limit]
	}
	return docs
}

// compare orders two JSON values. Strings that both parse as RFC 3339
// timestamps compare chronologically. Missing values sort first.
func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch x := a.(type) {
	case float64:
		if y, ok := b.(float64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			}
			return 1
		}
	case string:
		if y, ok := b.(string); ok {
			tx, errX := time.Parse(time.RFC3339Nano, x)
			ty, errY := time.Parse(time.RFC3339Nano, y)
			if errX == nil && errY == nil {
				return tx.Compare(ty)
			}
			return strings.Compare(x, y)
		}
	}
	// Mixed types: fall back to a stable textual order.
	return strings.Compare(reflect.TypeOf(a).String(), reflect.TypeOf(b).String())
}
