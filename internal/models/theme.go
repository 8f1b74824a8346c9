// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// ThemeColors is the palette of a theme. Empty values fall back to the
// stylesheet defaults.
type ThemeColors struct {
	Primary       string `json:"primary,omitempty"`
	Secondary     string `json:"secondary,omitempty"`
	Accent        string `json:"accent,omitempty"`
	Background    string `json:"background,omitempty"`
	Foreground    string `json:"foreground,omitempty"`
	Border        string `json:"border,omitempty"`
	Card          string `json:"card,omitempty"`
	Popover       string `json:"popover,omitempty"`
	Destructive   string `json:"destructive,omitempty"`
	Warning       string `json:"warning,omitempty"`
	Success       string `json:"success,omitempty"`
	TextPrimary   string `json:"textPrimary,omitempty"`
	TextSecondary string `json:"textSecondary,omitempty"`
	TextMuted     string `json:"textMuted,omitempty"`
	TextAccent    string `json:"textAccent,omitempty"`
	TextInverse   string `json:"textInverse,omitempty"`
}

// FontSizes is the type scale, smallest to largest.
type FontSizes struct {
	XS   string `json:"xs,omitempty"`
	SM   string `json:"sm,omitempty"`
	Base string `json:"base,omitempty"`
	LG   string `json:"lg,omitempty"`
	XL   string `json:"xl,omitempty"`
	XL2  string `json:"2xl,omitempty"`
	XL3  string `json:"3xl,omitempty"`
	XL4  string `json:"4xl,omitempty"`
	XL5  string `json:"5xl,omitempty"`
	XL6  string `json:"6xl,omitempty"`
}

// FontWeights maps weight tokens to CSS font-weight values.
type FontWeights struct {
	Light     string `json:"light,omitempty"`
	Normal    string `json:"normal,omitempty"`
	Medium    string `json:"medium,omitempty"`
	Semibold  string `json:"semibold,omitempty"`
	Bold      string `json:"bold,omitempty"`
	Extrabold string `json:"extrabold,omitempty"`
}

// Typography groups font settings.
type Typography struct {
	FontFamily  string      `json:"fontFamily,omitempty"`
	FontSizes   FontSizes   `json:"fontSizes"`
	FontWeights FontWeights `json:"fontWeights"`
}

// Spacing is the spacing scale used for padding and gaps.
type Spacing struct {
	XS  string `json:"xs,omitempty"`
	SM  string `json:"sm,omitempty"`
	MD  string `json:"md,omitempty"`
	LG  string `json:"lg,omitempty"`
	XL  string `json:"xl,omitempty"`
	XL2 string `json:"2xl,omitempty"`
}

// Shadows holds the four elevation shadows.
type Shadows struct {
	SM string `json:"sm,omitempty"`
	MD string `json:"md,omitempty"`
	LG string `json:"lg,omitempty"`
	XL string `json:"xl,omitempty"`
}

// Layout groups spacing, corner radius and shadows.
type Layout struct {
	Spacing      Spacing `json:"spacing"`
	BorderRadius string  `json:"borderRadius,omitempty"`
	Shadows      Shadows `json:"shadows"`
}

// EffectToggle switches one visual effect on or off.
type EffectToggle struct {
	Enabled bool `json:"enabled"`
}

// Effects are the optional decorative effects of a theme.
type Effects struct {
	Particles     EffectToggle `json:"particles"`
	Glow          EffectToggle `json:"glow"`
	Glassmorphism EffectToggle `json:"glassmorphism"`
	NeonBorders   EffectToggle `json:"neonBorders"`
	Gradients     EffectToggle `json:"gradients"`
	Animations    EffectToggle `json:"animations"`
	HoverEffects  EffectToggle `json:"hoverEffects"`
	ScrollEffects EffectToggle `json:"scrollEffects"`
}

// ThemeSettings is the versioned part of a theme: everything a history
// entry snapshots and a revert restores.
type ThemeSettings struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Colors      ThemeColors `json:"colors"`
	Typography  Typography  `json:"typography"`
	Layout      Layout      `json:"layout"`
	Effects     Effects     `json:"effects"`
	CustomCSS   string      `json:"customCSS,omitempty"`
}

// Theme is a stored visual theme. At most one theme is active at a time.
type Theme struct {
	ID  string `json:"id"`
	Key string `json:"_id,omitempty"`
	ThemeSettings
	Version   int       `json:"version"`
	IsActive  bool      `json:"isActive"`
	IsBuiltIn bool      `json:"isBuiltIn,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ThemeHistoryEntry is an immutable snapshot of a theme taken after a change.
type ThemeHistoryEntry struct {
	ID          string        `json:"id"`
	Key         string        `json:"_id,omitempty"`
	ThemeID     string        `json:"themeId"`
	Version     int           `json:"version"`
	Settings    ThemeSettings `json:"settings"`
	Description string        `json:"description"`
	ChangedBy   string        `json:"changedBy"`
	CreatedAt   time.Time     `json:"createdAt"`
}
