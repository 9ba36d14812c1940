package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/iwvelando/savings-orbit/internal/config"
	"github.com/iwvelando/savings-orbit/internal/goal"
	"github.com/iwvelando/savings-orbit/internal/store"
	"github.com/iwvelando/savings-orbit/internal/tracker"
	"github.com/iwvelando/savings-orbit/pkg/datetime"
	"github.com/iwvelando/savings-orbit/pkg/testutil"
	"go.uber.org/zap"
)

// TestRunner is a simple test runner for debugging
func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

// TestBasicFunctionality tests basic functionality works
func TestBasicFunctionality(t *testing.T) {
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}

	g, err := conf.BuildGoal(testToday)
	if err != nil {
		t.Fatalf("BuildGoal failed: %v", err)
	}

	plan, err := g.Plan()
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(plan) == 0 {
		t.Fatalf("Expected plan entries but got none")
	}

	t.Logf("Successfully generated %d plan entries", len(plan))
}

// TestPerformance tests performance characteristics
func TestPerformance(t *testing.T) {
	start := time.Now()
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	loadTime := time.Since(start)

	start = time.Now()
	g, err := conf.BuildGoal(testToday)
	if err != nil {
		t.Fatalf("BuildGoal failed: %v", err)
	}
	goalTime := time.Since(start)

	// Ten years of daily entries.
	start = time.Now()
	long, err := goal.New(250000,
		datetime.MustParseTime(datetime.DateLayout, "2034-12-31"),
		datetime.MustParseTime(datetime.DateLayout, "2025-01-01"),
		goal.AccuracyBasic, goal.Financials{})
	if err != nil {
		t.Fatalf("goal.New failed: %v", err)
	}
	plan, err := long.Plan()
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	planTime := time.Since(start)

	start = time.Now()
	ctx := context.Background()
	ctrl := tracker.NewController(zap.NewNop(), store.NewMemory(), "")
	if _, err := ctrl.SetGoal(ctx, g); err != nil {
		t.Fatalf("SetGoal failed: %v", err)
	}
	for i := 0; i < 30; i++ {
		if _, err := ctrl.Dispatch(ctx, tracker.Event{Kind: tracker.EventSaveToday}); err != nil {
			t.Fatalf("save failed on day %d: %v", i+1, err)
		}
		if _, err := ctrl.Dispatch(ctx, tracker.Event{Kind: tracker.EventNextDay}); err != nil {
			t.Fatalf("next-day failed on day %d: %v", i+1, err)
		}
	}
	trackTime := time.Since(start)

	totalTime := loadTime + goalTime + planTime + trackTime

	t.Logf("Performance metrics:")
	t.Logf("  Load config: %v", loadTime)
	t.Logf("  Build goal: %v", goalTime)
	t.Logf("  Generate 10 year plan: %v", planTime)
	t.Logf("  Track 30 days: %v", trackTime)
	t.Logf("  Total time: %v", totalTime)

	if totalTime > 10*time.Second {
		t.Errorf("Total processing time %v exceeds 10 second threshold", totalTime)
	}

	if len(plan) != 3652 {
		t.Errorf("Expected 3652 entries, got %d", len(plan))
	}
	testutil.CheckPlan(t, plan, 250000, 1e-4)
}

// TestMemoryUsage performs basic memory usage validation
func TestMemoryUsage(t *testing.T) {
	for i := 0; i < 10; i++ {
		conf, err := config.LoadConfiguration("../test_config.yaml")
		if err != nil {
			t.Fatalf("LoadConfiguration failed on iteration %d: %v", i, err)
		}

		g, err := conf.BuildGoal(testToday)
		if err != nil {
			t.Fatalf("BuildGoal failed on iteration %d: %v", i, err)
		}

		if _, err := g.Plan(); err != nil {
			t.Fatalf("Plan failed on iteration %d: %v", i, err)
		}
	}

	t.Log("Successfully completed 10 iterations without memory issues")
}

// TestDataConsistency validates that multiple runs produce identical plans
func TestDataConsistency(t *testing.T) {
	var first []float64

	for run := 0; run < 3; run++ {
		conf, err := config.LoadConfiguration("../test_config.yaml")
		if err != nil {
			t.Fatalf("LoadConfiguration failed on run %d: %v", run, err)
		}

		g, err := conf.BuildGoal(testToday)
		if err != nil {
			t.Fatalf("BuildGoal failed on run %d: %v", run, err)
		}

		plan, err := g.Plan()
		if err != nil {
			t.Fatalf("Plan failed on run %d: %v", run, err)
		}

		amounts := make([]float64, len(plan))
		for i, e := range plan {
			amounts[i] = e.DailyAmount
		}

		if run == 0 {
			first = amounts
			continue
		}

		if len(amounts) != len(first) {
			t.Errorf("Run %d: got %d entries, expected %d", run, len(amounts), len(first))
			continue
		}
		for i := range amounts {
			if amounts[i] != first[i] {
				t.Errorf("Run %d, day %d: amount mismatch %v != %v", run, i+1, amounts[i], first[i])
				break
			}
		}
	}
}
