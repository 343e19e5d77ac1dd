package service

import (
	"testing"

	"finledger/internal/models"
)

func TestBuildBudgetStatusTiers(t *testing.T) {
	budgets := []models.Budget{
		{Category: "Groceries", Amount: 1000, Currency: "PKR"},
		{Category: "Transport", Amount: 1000, Currency: "PKR"},
		{Category: "Dining", Amount: 1000, Currency: "PKR"},
		{Category: "Utilities", Amount: 1000, Currency: "PKR"},
	}
	spending := map[string]float64{
		"Groceries": 500,
		"Transport": 800,
		"Dining":    1000,
		"Utilities": 1200,
	}

	entries, alerts := buildBudgetStatus(budgets, spending)

	want := map[string]string{
		"Groceries": budgetStatusGood,
		"Transport": budgetStatusWarning,
		"Dining":    budgetStatusExceeded,
		"Utilities": budgetStatusExceeded,
	}

	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.Status != want[entry.Category] {
			t.Errorf("%s: expected status %s, got %s", entry.Category, want[entry.Category], entry.Status)
		}
	}

	if len(alerts) != 3 {
		t.Errorf("expected 3 alerts, got %d", len(alerts))
	}
	for _, alert := range alerts {
		if alert.Status == budgetStatusGood {
			t.Errorf("%s: good entries must not alert", alert.Category)
		}
	}
}

func TestBuildBudgetStatusTierOnExactPercentage(t *testing.T) {
	// 239.97/300 is 79.99%, just under the warning line. Rounding the
	// reported figure must not push the tier over it.
	budgets := []models.Budget{{Category: "Dining", Amount: 300, Currency: "PKR"}}
	spending := map[string]float64{"Dining": 239.97}

	entries, alerts := buildBudgetStatus(budgets, spending)

	if entries[0].Status != budgetStatusGood {
		t.Errorf("expected good at 79.99%%, got %s", entries[0].Status)
	}
	if entries[0].Percentage != 79.99 {
		t.Errorf("expected percentage 79.99, got %v", entries[0].Percentage)
	}
	if len(alerts) != 0 {
		t.Errorf("expected no alerts, got %d", len(alerts))
	}
}

func TestBuildBudgetStatusBoundaries(t *testing.T) {
	budgets := []models.Budget{
		{Category: "A", Amount: 100, Currency: "PKR"},
		{Category: "B", Amount: 100, Currency: "PKR"},
	}
	spending := map[string]float64{"A": 80, "B": 100}

	entries, _ := buildBudgetStatus(budgets, spending)

	if entries[0].Status != budgetStatusWarning {
		t.Errorf("expected warning at exactly 80%%, got %s", entries[0].Status)
	}
	if entries[1].Status != budgetStatusExceeded {
		t.Errorf("expected exceeded at exactly 100%%, got %s", entries[1].Status)
	}
}

func TestBuildBudgetStatusZeroCap(t *testing.T) {
	budgets := []models.Budget{{Category: "Misc", Amount: 0, Currency: "PKR"}}
	spending := map[string]float64{"Misc": 50}

	entries, _ := buildBudgetStatus(budgets, spending)

	if entries[0].Percentage != 0 {
		t.Errorf("zero cap must report 0%%, got %v", entries[0].Percentage)
	}
	if entries[0].Status != budgetStatusGood {
		t.Errorf("zero cap must stay good, got %s", entries[0].Status)
	}
	if entries[0].Remaining != -50 {
		t.Errorf("expected remaining -50, got %v", entries[0].Remaining)
	}
}

func TestBuildBudgetStatusNoSpending(t *testing.T) {
	budgets := []models.Budget{{Category: "Groceries", Amount: 500, Currency: "PKR"}}

	entries, alerts := buildBudgetStatus(budgets, map[string]float64{})

	if entries[0].Spent != 0 || entries[0].Remaining != 500 {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
	if len(alerts) != 0 {
		t.Errorf("expected no alerts, got %d", len(alerts))
	}
}
