package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/iwvelando/savings-orbit/internal/goal"
	"github.com/iwvelando/savings-orbit/internal/store"
	"github.com/iwvelando/savings-orbit/pkg/constants"
	"go.uber.org/zap"
)

// Controller owns the single persisted State and applies events to it.
type Controller struct {
	mu     sync.Mutex
	store  store.Store
	key    string
	logger *zap.Logger
}

// NewController returns a controller persisting state under key in st.
func NewController(logger *zap.Logger, st store.Store, key string) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if key == "" {
		key = constants.DefaultStateKey
	}
	return &Controller{store: st, key: key, logger: logger}
}

// Load returns the stored state, or ErrNoGoal when there is none. A record
// that cannot be decoded is discarded.
func (c *Controller) Load(ctx context.Context) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *Controller) load(ctx context.Context) (State, error) {
	data, err := c.store.Get(ctx, c.key)
	if errors.Is(err, store.ErrNotFound) {
		return State{}, ErrNoGoal
	}
	if err != nil {
		return State{}, fmt.Errorf("loading state: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		c.logger.Error("failed to decode stored state, discarding it",
			zap.String("op", "tracker.Load"),
			zap.String("key", c.key),
			zap.Error(err),
		)
		if delErr := c.store.Delete(ctx, c.key); delErr != nil {
			c.logger.Warn("failed to remove corrupt state",
				zap.String("op", "tracker.Load"),
				zap.Error(delErr),
			)
		}
		return State{}, ErrNoGoal
	}
	return s, nil
}

func (c *Controller) save(ctx context.Context, s State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// SetGoal replaces any existing state with a fresh one for g.
func (c *Controller) SetGoal(ctx context.Context, g goal.Goal) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := NewState(g)
	if err := c.save(ctx, s); err != nil {
		return State{}, err
	}

	c.logger.Info("savings goal set",
		zap.String("op", "tracker.SetGoal"),
		zap.String("goal", g.ID.String()),
		zap.Float64("targetAmount", g.TargetAmount),
		zap.String("deadline", g.Deadline),
	)
	return s, nil
}

// Dispatch applies e to the stored state and persists the result.
func (c *Controller) Dispatch(ctx context.Context, e Event) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.load(ctx)
	if err != nil {
		return State{}, err
	}

	next, err := Apply(current, e)
	if err != nil {
		c.logger.Debug("event rejected",
			zap.String("op", "tracker.Dispatch"),
			zap.String("event", string(e.Kind)),
			zap.Error(err),
		)
		return current, err
	}

	if err := c.save(ctx, next); err != nil {
		return current, err
	}

	c.logger.Info("event applied",
		zap.String("op", "tracker.Dispatch"),
		zap.String("event", string(e.Kind)),
		zap.Int("completedDays", next.CompletedDays),
		zap.String("currentDate", next.CurrentDate),
		zap.Int("missedDaysStreak", next.MissedDaysStreak),
	)
	if next.Banned() && !current.Banned() {
		c.logger.Warn("tracker banned after consecutive missed days",
			zap.String("op", "tracker.Dispatch"),
			zap.Int("missedDaysStreak", next.MissedDaysStreak),
		)
	}
	return next, nil
}

// Status loads the state and derives its status.
func (c *Controller) Status(ctx context.Context) (State, Status, error) {
	s, err := c.Load(ctx)
	if err != nil {
		return State{}, Status{}, err
	}
	status, err := Compute(s)
	if err != nil {
		return s, Status{}, err
	}
	return s, status, nil
}

// Reset discards the stored state.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Delete(ctx, c.key); err != nil {
		return fmt.Errorf("resetting state: %w", err)
	}
	c.logger.Info("savings goal reset", zap.String("op", "tracker.Reset"))
	return nil
}
