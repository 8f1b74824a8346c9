// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"fmt"
	"strings"

	"devfolio/internal/models"
)

// DefaultSettings returns a fully specified theme. GenerateCSS falls back
// to these values for every token a theme leaves empty.
func DefaultSettings() models.ThemeSettings {
	return models.ThemeSettings{
		Name: "Default",
		Colors: models.ThemeColors{
			Primary:       "#6366f1",
			Secondary:     "#8b5cf6",
			Accent:        "#06b6d4",
			Background:    "#0f172a",
			Foreground:    "#f8fafc",
			Border:        "#334155",
			Card:          "#1e293b",
			Popover:       "#1e293b",
			Destructive:   "#ef4444",
			Warning:       "#f59e0b",
			Success:       "#10b981",
			TextPrimary:   "#f8fafc",
			TextSecondary: "#cbd5e1",
			TextMuted:     "#94a3b8",
			TextAccent:    "#818cf8",
			TextInverse:   "#0f172a",
		},
		Typography: models.Typography{
			FontFamily: "Inter, system-ui, sans-serif",
			FontSizes: models.FontSizes{
				XS: "0.75rem", SM: "0.875rem", Base: "1rem", LG: "1.125rem", XL: "1.25rem",
				XL2: "1.5rem", XL3: "1.875rem", XL4: "2.25rem", XL5: "3rem", XL6: "3.75rem",
			},
			FontWeights: models.FontWeights{
				Light: "300", Normal: "400", Medium: "500", Semibold: "600", Bold: "700", Extrabold: "800",
			},
		},
		Layout: models.Layout{
			Spacing: models.Spacing{
				XS: "0.25rem", SM: "0.5rem", MD: "1rem", LG: "1.5rem", XL: "2rem", XL2: "3rem",
			},
			BorderRadius: "0.5rem",
			Shadows: models.Shadows{
				SM: "0 1px 2px 0 rgb(0 0 0 / 0.05)",
				MD: "0 4px 6px -1px rgb(0 0 0 / 0.1)",
				LG: "0 10px 15px -3px rgb(0 0 0 / 0.1)",
				XL: "0 20px 25px -5px rgb(0 0 0 / 0.1)",
			},
		},
		Effects: models.Effects{
			Animations:   models.EffectToggle{Enabled: true},
			HoverEffects: models.EffectToggle{Enabled: true},
		},
	}
}

// transitionRule is emitted when animations are enabled.
const transitionRule = `*, *::before, *::after {
  transition: color 0.3s ease, background-color 0.3s ease, border-color 0.3s ease, box-shadow 0.3s ease;
}
`

type cssVar struct {
	name, value, fallback string
}

// GenerateCSS renders t as a stylesheet of custom properties on :root.
// Every token has a default, so a partial theme or a nil theme still yields
// a complete stylesheet. Custom CSS is appended verbatim.
func GenerateCSS(t *models.Theme) string {
	var s models.ThemeSettings
	if t != nil {
		s = t.ThemeSettings
	}
	d := DefaultSettings()

	c, dc := s.Colors, d.Colors
	fs, dfs := s.Typography.FontSizes, d.Typography.FontSizes
	fw, dfw := s.Typography.FontWeights, d.Typography.FontWeights
	sp, dsp := s.Layout.Spacing, d.Layout.Spacing
	sh, dsh := s.Layout.Shadows, d.Layout.Shadows

	vars := []cssVar{
		{"color-primary", c.Primary, dc.Primary},
		{"color-secondary", c.Secondary, dc.Secondary},
		{"color-accent", c.Accent, dc.Accent},
		{"color-background", c.Background, dc.Background},
		{"color-foreground", c.Foreground, dc.Foreground},
		{"color-border", c.Border, dc.Border},
		{"color-card", c.Card, dc.Card},
		{"color-popover", c.Popover, dc.Popover},
		{"color-destructive", c.Destructive, dc.Destructive},
		{"color-warning", c.Warning, dc.Warning},
		{"color-success", c.Success, dc.Success},
		{"text-primary", c.TextPrimary, dc.TextPrimary},
		{"text-secondary", c.TextSecondary, dc.TextSecondary},
		{"text-muted", c.TextMuted, dc.TextMuted},
		{"text-accent", c.TextAccent, dc.TextAccent},
		{"text-inverse", c.TextInverse, dc.TextInverse},

		{"font-family", s.Typography.FontFamily, d.Typography.FontFamily},
		{"font-size-xs", fs.XS, dfs.XS},
		{"font-size-sm", fs.SM, dfs.SM},
		{"font-size-base", fs.Base, dfs.Base},
		{"font-size-lg", fs.LG, dfs.LG},
		{"font-size-xl", fs.XL, dfs.XL},
		{"font-size-2xl", fs.XL2, dfs.XL2},
		{"font-size-3xl", fs.XL3, dfs.XL3},
		{"font-size-4xl", fs.XL4, dfs.XL4},
		{"font-size-5xl", fs.XL5, dfs.XL5},
		{"font-size-6xl", fs.XL6, dfs.XL6},
		{"font-weight-light", fw.Light, dfw.Light},
		{"font-weight-normal", fw.Normal, dfw.Normal},
		{"font-weight-medium", fw.Medium, dfw.Medium},
		{"font-weight-semibold", fw.Semibold, dfw.Semibold},
		{"font-weight-bold", fw.Bold, dfw.Bold},
		{"font-weight-extrabold", fw.Extrabold, dfw.Extrabold},

		{"spacing-xs", sp.XS, dsp.XS},
		{"spacing-sm", sp.SM, dsp.SM},
		{"spacing-md", sp.MD, dsp.MD},
		{"spacing-lg", sp.LG, dsp.LG},
		{"spacing-xl", sp.XL, dsp.XL},
		{"spacing-2xl", sp.XL2, dsp.XL2},
		{"border-radius", s.Layout.BorderRadius, d.Layout.BorderRadius},
		{"shadow-sm", sh.SM, dsh.SM},
		{"shadow-md", sh.MD, dsh.MD},
		{"shadow-lg", sh.LG, dsh.LG},
		{"shadow-xl", sh.XL, dsh.XL},
	}

	e := s.Effects
	effects := []struct {
		name string
		on   bool
	}{
		{"particles", e.Particles.Enabled},
		{"glow", e.Glow.Enabled},
		{"glassmorphism", e.Glassmorphism.Enabled},
		{"neon-borders", e.NeonBorders.Enabled},
		{"gradients", e.Gradients.Enabled},
		{"animations", e.Animations.Enabled},
		{"hover-effects", e.HoverEffects.Enabled},
		{"scroll-effects", e.ScrollEffects.Enabled},
	}

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, v := range vars {
		value := strings.TrimSpace(v.value)
		if value == "" {
			value = v.fallback
		}
		fmt.Fprintf(&b, "  --%s: %s;\n", v.name, value)
	}
	for _, fx := range effects {
		flag := 0
		if fx.on {
			flag = 1
		}
		fmt.Fprintf(&b, "  --effect-%s: %d;\n", fx.name, flag)
	}
	b.WriteString("}\n")

	if e.Animations.Enabled {
		b.WriteString(transitionRule)
	}
	if custom := strings.TrimSpace(s.CustomCSS); custom != "" {
		b.WriteString(custom)
		b.WriteString("\n")
	}
	return b.String()
}
