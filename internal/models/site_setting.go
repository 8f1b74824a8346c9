// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// SiteSettingsID is the fixed identity of the single settings record.
const SiteSettingsID = "main"

// Profile is the owner's public profile block.
type Profile struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Location  string `json:"location,omitempty"`
	ResumeURL string `json:"resumeUrl,omitempty"`
}

// Experience is one entry of the work history.
type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Period      string `json:"period"`
	Description string `json:"description,omitempty"`
}

// Skill is a named skill with a self-assessed level from 0 to 100.
type Skill struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category,omitempty"`
}

// SocialLink points to one external profile.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// ContactInfo is shown on the contact section.
type ContactInfo struct {
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Availability string `json:"availability,omitempty"`
}

// SiteSettings is the singleton record holding all editable site content.
type SiteSettings struct {
	ID          string       `json:"id"`
	Key         string       `json:"_id,omitempty"`
	Profile     Profile      `json:"profile"`
	Experience  []Experience `json:"experience"`
	Skills      []Skill      `json:"skills"`
	SocialLinks []SocialLink `json:"socialLinks"`
	Contact     ContactInfo  `json:"contact"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// DefaultSiteSettings returns the payload written the first time settings
// are read and none exist yet.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		ID: SiteSettingsID,
		Profile: Profile{
			Name:     "Alex Morgan",
			Title:    "Full-Stack Developer",
			Bio:      "I build fast, accessible web applications and the back-end services behind them.",
			Location: "Remote",
		},
		Experience: []Experience{
			{Company: "Freelance", Role: "Full-Stack Developer", Period: "2021 - Present", Description: "Web applications, dashboards and APIs for small businesses."},
			{Company: "Studio North", Role: "Front-End Engineer", Period: "2018 - 2021", Description: "Design systems and marketing sites."},
		},
		Skills: []Skill{
			{Name: "Go", Level: 85, Category: "backend"},
			{Name: "TypeScript", Level: 90, Category: "frontend"},
			{Name: "React", Level: 88, Category: "frontend"},
			{Name: "PostgreSQL", Level: 75, Category: "database"},
			{Name: "MongoDB", Level: 70, Category: "database"},
		},
		SocialLinks: []SocialLink{
			{Platform: "github", URL: "https://github.com/"},
			{Platform: "linkedin", URL: "https://www.linkedin.com/"},
		},
		Contact: ContactInfo{
			Email:        "hello@portfolio.local",
			Availability: "Open to new projects",
		},
	}
}
