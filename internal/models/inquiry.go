// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// InquiryStatus is the review state of a client request.
type InquiryStatus string

const (
	InquiryStatusPending  InquiryStatus = "pending"
	InquiryStatusReviewed InquiryStatus = "reviewed"
	InquiryStatusApproved InquiryStatus = "approved"
	InquiryStatusRejected InquiryStatus = "rejected"
)

// Valid reports whether s is one of the known inquiry statuses.
func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryStatusPending, InquiryStatusReviewed, InquiryStatusApproved, InquiryStatusRejected:
		return true
	}
	return false
}

// Payment terms quoted to the client. Small budgets pay a larger share upfront.
const (
	PaymentTermsSmallBudget = "35-40% upfront payment required"
	PaymentTermsLargeBudget = "25% upfront payment required"

	// SmallBudgetThreshold is the largest budget that still gets the small
	// budget terms.
	SmallBudgetThreshold = 500.0
)

// Inquiry is a client request submitted through the public contact form.
type Inquiry struct {
	ID             string        `json:"id"`
	Key            string        `json:"_id,omitempty"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone,omitempty"`
	Company        string        `json:"company,omitempty"`
	ProjectType    string        `json:"projectType,omitempty"`
	Requirements   string        `json:"requirements"`
	Budget         string        `json:"budget"`
	Timeline       string        `json:"timeline"`
	ReferenceLinks []string      `json:"referenceLinks,omitempty"`
	FileNames      []string      `json:"fileNames,omitempty"`
	AcceptedTerms  bool          `json:"acceptedTerms"`
	PaymentTerms   string        `json:"paymentTerms"`
	Status         InquiryStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

var budgetNumber = regexp.MustCompile(`\d+(\.\d+)?`)

// ParseBudget extracts the first number from a free-text budget such as
// "$1,200" or "400-600". It returns false when the text holds no number.
func ParseBudget(budget string) (float64, bool) {
	m := budgetNumber.FindString(strings.ReplaceAll(budget, ",", ""))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// PaymentTermsFor derives the quoted payment terms from a budget string.
// A budget without a number gets the large budget terms.
func PaymentTermsFor(budget string) string {
	v, ok := ParseBudget(budget)
	if ok && v <= SmallBudgetThreshold {
		return PaymentTermsSmallBudget
	}
	return PaymentTermsLargeBudget
}
