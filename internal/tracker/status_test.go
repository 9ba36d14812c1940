package tracker

import (
	"math"
	"testing"
)

func TestComputeFreshState(t *testing.T) {
	status, err := Compute(NewState(testGoal()))
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}

	if len(status.Plan) != 10 {
		t.Fatalf("plan length = %d, expected 10", len(status.Plan))
	}
	if status.Today == nil || status.Today.Day != 1 {
		t.Fatalf("Today = %+v, expected day 1", status.Today)
	}
	if status.SavedAmount != 0 || status.Progress != 0 {
		t.Errorf("expected nothing saved, got %v (%v%%)", status.SavedAmount, status.Progress)
	}
	if status.DaysLeft != 10 || status.CurrentWeek != 1 || status.TotalWeeks != 2 {
		t.Errorf("unexpected counters: %+v", status)
	}
	if status.Complete || status.Banned || status.SavedToday {
		t.Errorf("unexpected flags: %+v", status)
	}
}

func TestComputeAfterSaving(t *testing.T) {
	s := mustApply(t, NewState(testGoal()), EventSaveToday, EventNextDay, EventSaveToday)

	status, err := Compute(s)
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}

	want := status.Plan[0].DailyAmount + status.Plan[1].DailyAmount
	if math.Abs(status.SavedAmount-want) > 1e-9 {
		t.Errorf("SavedAmount = %v, expected %v", status.SavedAmount, want)
	}
	if status.Today == nil || status.Today.Day != 3 {
		t.Errorf("Today = %+v, expected day 3", status.Today)
	}
	if !status.SavedToday {
		t.Error("expected SavedToday")
	}
	if status.DaysLeft != 8 {
		t.Errorf("DaysLeft = %d, expected 8", status.DaysLeft)
	}
}

func TestComputeComplete(t *testing.T) {
	s := NewState(testGoal())
	s.CompletedDays = 10

	status, err := Compute(s)
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}
	if !status.Complete || status.Today != nil {
		t.Errorf("expected a complete plan, got %+v", status)
	}
	if status.SavedAmount != 100 || status.Progress != 100 {
		t.Errorf("SavedAmount = %v, Progress = %v", status.SavedAmount, status.Progress)
	}
}

func TestComputeBadGoal(t *testing.T) {
	s := NewState(testGoal())
	s.Goal.Deadline = "someday"
	if _, err := Compute(s); err == nil {
		t.Error("expected error for unparseable deadline")
	}
}
