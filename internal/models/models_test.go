package models

import "testing"

func TestPaymentTermsFor(t *testing.T) {
	tests := []struct {
		budget string
		want   string
	}{
		{"500", PaymentTermsSmallBudget},
		{"499.99", PaymentTermsSmallBudget},
		{"$300", PaymentTermsSmallBudget},
		{"500.01", PaymentTermsLargeBudget},
		{"2,500", PaymentTermsLargeBudget},
		{"", PaymentTermsLargeBudget},
		{"flexible", PaymentTermsLargeBudget},
	}

	for _, tt := range tests {
		t.Run(tt.budget, func(t *testing.T) {
			if got := PaymentTermsFor(tt.budget); got != tt.want {
				t.Errorf("PaymentTermsFor(%q): got %q, want %q", tt.budget, got, tt.want)
			}
		})
	}
}

func TestParseBudget(t *testing.T) {
	v, ok := ParseBudget("USD 1,250.50 total")
	if !ok || v != 1250.50 {
		t.Errorf("got (%v, %v), want (1250.5, true)", v, ok)
	}
	if _, ok := ParseBudget("tbd"); ok {
		t.Error("non-numeric budget should not parse")
	}
}

func TestStatusValid(t *testing.T) {
	if !InquiryStatusApproved.Valid() || InquiryStatus("done").Valid() {
		t.Error("inquiry status validation is wrong")
	}
	if !ProjectStatus("").Valid() || !ProjectStatusInProgress.Valid() || ProjectStatus("paused").Valid() {
		t.Error("project status validation is wrong")
	}
	if !SenderBot.Valid() || Sender("system").Valid() {
		t.Error("sender validation is wrong")
	}
}
