// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package mongostore

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"devfolio/internal/document"
)

// isTimeKey reports whether values under key hold timestamps. Those are
// stored as BSON dates so they sort chronologically on the server.
func isTimeKey(key string) bool {
	return strings.HasSuffix(key, "At") || strings.HasSuffix(key, "Date") || key == "timestamp"
}

// toBSON converts a JSON-shaped document into a bson.M, turning RFC 3339
// strings under timestamp keys into time.Time.
func toBSON(d document.Doc) bson.M {
	out := make(bson.M, len(d))
	for k, v := range d {
		out[k] = valueIn(k, v)
	}
	return out
}

func valueIn(key string, v any) any {
	switch t := v.(type) {
	case document.Doc:
		return toBSON(t)
	case map[string]any:
		return toBSON(document.Doc(t))
	case []any:
		arr := make(bson.A, len(t))
		for i, e := range t {
			arr[i] = valueIn(key, e)
		}
		return arr
	case string:
		if isTimeKey(key) {
			if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
				return ts
			}
		}
		return t
	default:
		return v
	}
}

// fromBSON converts a decoded MongoDB document back into its JSON shape:
// ObjectIDs become hex strings, dates become RFC 3339 strings and integers
// become float64, matching what encoding/json produces.
func fromBSON(m bson.M) document.Doc {
	out := make(document.Doc, len(m))
	for k, v := range m {
		out[k] = valueOut(v)
	}
	return out
}

func valueOut(v any) any {
	switch t := v.(type) {
	case bson.M:
		return map[string]any(fromBSON(t))
	case map[string]any:
		return map[string]any(fromBSON(bson.M(t)))
	case bson.D:
		return map[string]any(fromBSON(t.Map()))
	case bson.A:
		return sliceOut(t)
	case []any:
		return sliceOut(t)
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339Nano)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case int:
		return float64(t)
	default:
		return v
	}
}

func sliceOut(s []any) []any {
	out := make([]any, len(s))
	for i, e := range s {
		out[i] = valueOut(e)
	}
	return out
}
