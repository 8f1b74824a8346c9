// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"fmt"
	"strings"

	"devfolio/internal/models"
)

// Policy picks the theme that becomes active when the active theme is
// deleted.
type Policy string

const (
	PolicyNewest   Policy = "newest"
	PolicyOldest   Policy = "oldest"
	PolicyLowestID Policy = "lowest-id"
)

// ParsePolicy parses a policy name. An empty name selects PolicyNewest.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyNewest, nil
	case PolicyNewest, PolicyOldest, PolicyLowestID:
		return p, nil
	}
	return "", fmt.Errorf("unknown theme fallback policy %q", s)
}

// pick returns the preferred theme from candidates, or nil when there are
// none. Ties on creation time are broken by id.
func (p Policy) pick(candidates []models.Theme) *models.Theme {
	var best *models.Theme
	for i := range candidates {
		c := &candidates[i]
		if best == nil || p.prefers(c, best) {
			best = c
		}
	}
	return best
}

func (p Policy) prefers(a, b *models.Theme) bool {
	switch p {
	case PolicyOldest:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	case PolicyLowestID:
	default:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	return a.ID < b.ID
}
