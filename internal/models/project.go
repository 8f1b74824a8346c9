// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the records persisted by the storage facade and
// the enums and small helpers that go with them. Every record carries two
// identity fields: ID is the application identity, Key is the identity as
// the physical backend knows it. The facade keeps them in sync on read.
package models

import "time"

// ProjectStatus tracks the delivery state of a portfolio project.
type ProjectStatus string

const (
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusPending    ProjectStatus = "pending"
)

// Valid reports whether s is one of the known project statuses.
// An empty status is accepted and treated as pending by the store.
func (s ProjectStatus) Valid() bool {
	switch s {
	case "", ProjectStatusCompleted, ProjectStatusInProgress, ProjectStatusPending:
		return true
	}
	return false
}

// ProjectLinks holds the external links shown on a project card.
type ProjectLinks struct {
	Live   string `json:"live,omitempty"`
	Source string `json:"source,omitempty"`
	Demo   string `json:"demo,omitempty"`
}

// Project is a portfolio entry. The administrative fields (client, status,
// budget, dates, progress) are only shown in the back office.
type Project struct {
	ID          string        `json:"id"`
	Key         string        `json:"_id,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Tags        []string      `json:"tags"`
	Links       ProjectLinks  `json:"links"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	IsActive    bool          `json:"isActive"`
	Client      string        `json:"client,omitempty"`
	Status      ProjectStatus `json:"status,omitempty"`
	Budget      float64       `json:"budget,omitempty"`
	StartDate   *time.Time    `json:"startDate,omitempty"`
	EndDate     *time.Time    `json:"endDate,omitempty"`
	Progress    int           `json:"progress"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
