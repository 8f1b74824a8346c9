// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import "devfolio/internal/models"

// BuiltIn returns the catalog installed into an empty theme collection.
// The first entry becomes the active theme.
func BuiltIn() []models.ThemeSettings {
	midnight := DefaultSettings()
	midnight.Name = "Midnight"
	midnight.Description = "Dark slate with indigo accents."

	neon := DefaultSettings()
	neon.Name = "Neon Grid"
	neon.Description = "High-contrast dark theme with glowing borders."
	neon.Colors.Primary = "#22d3ee"
	neon.Colors.Secondary = "#e879f9"
	neon.Colors.Accent = "#a3e635"
	neon.Colors.Background = "#030712"
	neon.Colors.Card = "#111827"
	neon.Colors.Popover = "#111827"
	neon.Colors.Border = "#22d3ee"
	neon.Colors.TextAccent = "#67e8f9"
	neon.Typography.FontFamily = "'JetBrains Mono', ui-monospace, monospace"
	neon.Layout.BorderRadius = "0.25rem"
	neon.Effects.Glow.Enabled = true
	neon.Effects.NeonBorders.Enabled = true
	neon.Effects.Particles.Enabled = true

	light := DefaultSettings()
	light.Name = "Paper"
	light.Description = "Light and quiet, for reading."
	light.Colors.Primary = "#2563eb"
	light.Colors.Secondary = "#7c3aed"
	light.Colors.Accent = "#0891b2"
	light.Colors.Background = "#ffffff"
	light.Colors.Foreground = "#0f172a"
	light.Colors.Border = "#e2e8f0"
	light.Colors.Card = "#f8fafc"
	light.Colors.Popover = "#ffffff"
	light.Colors.TextPrimary = "#0f172a"
	light.Colors.TextSecondary = "#334155"
	light.Colors.TextMuted = "#64748b"
	light.Colors.TextAccent = "#2563eb"
	light.Colors.TextInverse = "#ffffff"
	light.Effects.Animations.Enabled = false

	glass := DefaultSettings()
	glass.Name = "Aurora Glass"
	glass.Description = "Frosted panels over a soft gradient."
	glass.Colors.Primary = "#f472b6"
	glass.Colors.Secondary = "#818cf8"
	glass.Colors.Accent = "#34d399"
	glass.Colors.Background = "#1e1b4b"
	glass.Colors.Card = "rgba(255, 255, 255, 0.08)"
	glass.Colors.Popover = "rgba(30, 27, 75, 0.9)"
	glass.Colors.Border = "rgba(255, 255, 255, 0.18)"
	glass.Layout.BorderRadius = "1rem"
	glass.Effects.Glassmorphism.Enabled = true
	glass.Effects.Gradients.Enabled = true
	glass.Effects.ScrollEffects.Enabled = true

	return []models.ThemeSettings{midnight, neon, light, glass}
}
