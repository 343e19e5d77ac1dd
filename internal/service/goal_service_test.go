package service

import (
	"testing"
	"time"

	"finledger/internal/models"
)

func TestApplyContribution(t *testing.T) {
	now := time.Now()
	goal := &models.Goal{TargetAmount: 1000, CurrentAmount: 200, Status: models.GoalActive}

	applyContribution(goal, 300, now)

	if goal.CurrentAmount != 500 {
		t.Errorf("expected current 500, got %v", goal.CurrentAmount)
	}
	if goal.Status != models.GoalActive {
		t.Errorf("goal must stay active below target, got %s", goal.Status)
	}
	if goal.CompletedAt != nil {
		t.Error("CompletedAt must stay nil below target")
	}
}

func TestApplyContributionCompletesGoal(t *testing.T) {
	now := time.Now()
	goal := &models.Goal{TargetAmount: 1000, CurrentAmount: 800, Status: models.GoalActive}

	applyContribution(goal, 250, now)

	if goal.Status != models.GoalCompleted {
		t.Errorf("expected completed, got %s", goal.Status)
	}
	if goal.CurrentAmount != 1050 {
		t.Errorf("expected current 1050, got %v", goal.CurrentAmount)
	}
	if goal.CompletedAt == nil || !goal.CompletedAt.Equal(now) {
		t.Errorf("expected CompletedAt %v, got %v", now, goal.CompletedAt)
	}
}

func TestApplyContributionExactTarget(t *testing.T) {
	goal := &models.Goal{TargetAmount: 1000, CurrentAmount: 900, Status: models.GoalActive}

	applyContribution(goal, 100, time.Now())

	if goal.Status != models.GoalCompleted {
		t.Errorf("reaching the target exactly must complete, got %s", goal.Status)
	}
}

func TestProgressFor(t *testing.T) {
	now := time.Date(2026, 8, 1, 15, 30, 0, 0, time.UTC)
	goal := &models.Goal{
		TargetAmount:  1000,
		CurrentAmount: 250,
		Deadline:      "2026-08-11",
		Status:        models.GoalActive,
	}

	resp := progressFor(goal, now)

	if resp.ProgressPercentage != 25 {
		t.Errorf("expected 25%%, got %v", resp.ProgressPercentage)
	}
	if resp.Remaining != 750 {
		t.Errorf("expected remaining 750, got %v", resp.Remaining)
	}
	if resp.DaysRemaining != 10 {
		t.Errorf("expected 10 days, got %v", resp.DaysRemaining)
	}
	if resp.DailySavingsRequired != 75 {
		t.Errorf("expected 75 per day, got %v", resp.DailySavingsRequired)
	}
}

func TestProgressForPastDeadline(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	goal := &models.Goal{
		TargetAmount:  1000,
		CurrentAmount: 100,
		Deadline:      "2026-07-01",
		Status:        models.GoalActive,
	}

	resp := progressFor(goal, now)

	if resp.DaysRemaining != 0 {
		t.Errorf("past deadline must report 0 days, got %v", resp.DaysRemaining)
	}
	if resp.DailySavingsRequired != 0 {
		t.Errorf("past deadline must report 0 daily requirement, got %v", resp.DailySavingsRequired)
	}
}

func TestProgressForMalformedDeadline(t *testing.T) {
	goal := &models.Goal{
		TargetAmount:  1000,
		CurrentAmount: 400,
		Deadline:      "soon",
		Status:        models.GoalActive,
	}

	resp := progressFor(goal, time.Now())

	if resp.ProgressPercentage != 40 {
		t.Errorf("expected 40%%, got %v", resp.ProgressPercentage)
	}
	if resp.DaysRemaining != 0 || resp.DailySavingsRequired != 0 {
		t.Errorf("malformed deadline must degrade to zeros, got %v / %v", resp.DaysRemaining, resp.DailySavingsRequired)
	}
}

func TestProgressForZeroTarget(t *testing.T) {
	goal := &models.Goal{TargetAmount: 0, CurrentAmount: 0, Status: models.GoalActive}

	resp := progressFor(goal, time.Now())

	if resp.ProgressPercentage != 0 {
		t.Errorf("zero target must report 0%%, got %v", resp.ProgressPercentage)
	}
	if resp.Remaining != 0 {
		t.Errorf("expected remaining 0, got %v", resp.Remaining)
	}
}

func TestProgressForOverfundedGoal(t *testing.T) {
	goal := &models.Goal{TargetAmount: 1000, CurrentAmount: 1100, Status: models.GoalCompleted}

	resp := progressFor(goal, time.Now())

	if resp.Remaining != 0 {
		t.Errorf("overfunded goal must not report negative remaining, got %v", resp.Remaining)
	}
	if resp.ProgressPercentage != 110 {
		t.Errorf("expected 110%%, got %v", resp.ProgressPercentage)
	}
}

func TestCheckGoalAccess(t *testing.T) {
	goal := &models.Goal{Username: "alice", Status: models.GoalActive}

	if err := checkGoalAccess(goal, "alice"); err != nil {
		t.Errorf("owner must pass, got %v", err)
	}
	if err := checkGoalAccess(goal, "bob"); err != ErrGoalNotFound {
		t.Errorf("foreign goal must read as missing, got %v", err)
	}
}

func TestCheckContribution(t *testing.T) {
	goal := &models.Goal{Username: "alice", TargetAmount: 500, CurrentAmount: 400, Status: models.GoalActive}

	if err := checkContribution(goal, "alice", 200, 150); err != nil {
		t.Errorf("sufficient balance must pass, got %v", err)
	}
	if err := checkContribution(goal, "alice", 100, 100); err != nil {
		t.Errorf("balance equal to the amount must pass, got %v", err)
	}
}

func TestCheckContributionInsufficientBalance(t *testing.T) {
	goal := &models.Goal{Username: "alice", TargetAmount: 500, CurrentAmount: 400, Status: models.GoalActive}

	if err := checkContribution(goal, "alice", 50, 100); err != ErrInsufficientBalance {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestCheckContributionForeignGoal(t *testing.T) {
	goal := &models.Goal{Username: "alice", TargetAmount: 500, Status: models.GoalActive}

	if err := checkContribution(goal, "bob", 1000000, 10); err != ErrGoalNotFound {
		t.Errorf("another user's goal must read as missing regardless of balance, got %v", err)
	}
}

func TestCheckContributionInactiveGoal(t *testing.T) {
	goal := &models.Goal{Username: "alice", TargetAmount: 500, CurrentAmount: 500, Status: models.GoalCompleted}

	if err := checkContribution(goal, "alice", 1000, 10); err != ErrGoalNotFound {
		t.Errorf("completed goal must not accept contributions, got %v", err)
	}
}

func TestRefundEntryUsesUserCurrency(t *testing.T) {
	now := time.Now()
	goal := &models.Goal{
		Username:      "alice",
		Name:          "Car",
		CurrentAmount: 200,
		Currency:      "PKR",
	}

	entry := refundEntry(goal, "USD", now)

	if entry.OriginalCurrency != "USD" {
		t.Errorf("refund must use the user's current currency, got %s", entry.OriginalCurrency)
	}
	if entry.Type != models.TypeIncome {
		t.Errorf("expected income entry, got %s", entry.Type)
	}
	if entry.Category != models.CategoryGoalRefund {
		t.Errorf("expected category %q, got %q", models.CategoryGoalRefund, entry.Category)
	}
	if entry.Amount != 200 || entry.OriginalAmount != 200 {
		t.Errorf("expected full current amount refunded, got %v / %v", entry.Amount, entry.OriginalAmount)
	}
	if entry.Description != "Refund from cancelled goal: Car" {
		t.Errorf("unexpected description %q", entry.Description)
	}
}

func TestDeleteGoalMessage(t *testing.T) {
	tests := []struct {
		name          string
		markCompleted bool
		wasComplete   bool
		returned      float64
		want          string
	}{
		{"completed and reached", true, true, 0, "Congratulations! Goal completed and removed!"},
		{"completed early", true, false, 0, "Goal marked as completed and removed."},
		{"cancelled with refund", false, false, 150, "Goal cancelled. 150.00 returned to balance."},
		{"cancelled empty", false, false, 0, "Goal deleted."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deleteGoalMessage(tt.markCompleted, tt.wasComplete, tt.returned)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
