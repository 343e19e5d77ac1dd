package service

import (
	"testing"
	"time"

	"finledger/internal/models"
)

func TestSummarizeTransactions(t *testing.T) {
	transactions := []models.Transaction{
		{Type: models.TypeIncome, Category: "Salary", Amount: 1000},
		{Type: models.TypeIncome, Category: "Bonus", Amount: 200},
		{Type: models.TypeExpense, Category: "Groceries", Amount: 300},
		{Type: models.TypeExpense, Category: "Groceries", Amount: 100},
		{Type: models.TypeExpense, Category: "Transport", Amount: 50},
	}

	income, expense, breakdown := summarizeTransactions(transactions)

	if income != 1200 {
		t.Errorf("expected income 1200, got %v", income)
	}
	if expense != 450 {
		t.Errorf("expected expense 450, got %v", expense)
	}
	if breakdown["Groceries"] != 400 {
		t.Errorf("expected Groceries 400, got %v", breakdown["Groceries"])
	}
	if breakdown["Transport"] != 50 {
		t.Errorf("expected Transport 50, got %v", breakdown["Transport"])
	}
	if _, ok := breakdown["Salary"]; ok {
		t.Error("income categories must not appear in the breakdown")
	}
}

func TestSummarizeTransactionsEmpty(t *testing.T) {
	income, expense, breakdown := summarizeTransactions(nil)

	if income != 0 || expense != 0 {
		t.Errorf("expected zero totals, got %v / %v", income, expense)
	}
	if breakdown == nil {
		t.Error("breakdown must never be nil")
	}
	if len(breakdown) != 0 {
		t.Errorf("expected empty breakdown, got %v", breakdown)
	}
}

func TestMonthRange(t *testing.T) {
	from, to, err := monthRange("2026-08")
	if err != nil {
		t.Fatalf("monthRange failed: %v", err)
	}

	wantFrom := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !from.Equal(wantFrom) {
		t.Errorf("expected from %v, got %v", wantFrom, from)
	}
	if !to.Equal(wantTo) {
		t.Errorf("expected to %v, got %v", wantTo, to)
	}
}

func TestMonthRangeYearRollover(t *testing.T) {
	_, to, err := monthRange("2025-12")
	if err != nil {
		t.Fatalf("monthRange failed: %v", err)
	}

	want := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if !to.Equal(want) {
		t.Errorf("expected to %v, got %v", want, to)
	}
}

func TestMonthRangeInvalid(t *testing.T) {
	for _, month := range []string{"", "2026", "2026-13", "08-2026", "2026-08-01", "garbage"} {
		if _, _, err := monthRange(month); err == nil {
			t.Errorf("expected error for %q", month)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{79.994, 79.99},
		{79.996, 80},
		{0, 0},
		{25, 25},
		{33.333333, 33.33},
	}

	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
