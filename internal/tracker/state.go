// Package tracker follows a user's day-by-day progress through a savings plan.
//
// State is a plain value and every change to it is a pure transition,
// Apply(State, Event). The Controller loads and stores that value through a
// store.Store so the transitions themselves never touch I/O.
package tracker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/savings-orbit/internal/goal"
	"github.com/iwvelando/savings-orbit/pkg/constants"
	"github.com/iwvelando/savings-orbit/pkg/datetime"
	"github.com/iwvelando/savings-orbit/pkg/savings"
)

var (
	// ErrNoGoal indicates no goal has been set.
	ErrNoGoal = errors.New("tracker: no savings goal set")
	// ErrBanned indicates too many consecutive missed days; only Unban is accepted.
	ErrBanned = errors.New("tracker: banned after missing too many days in a row")
	// ErrNotBanned indicates Unban was sent while not banned.
	ErrNotBanned = errors.New("tracker: not banned")
	// ErrAlreadySaved indicates today's amount was already recorded.
	ErrAlreadySaved = errors.New("tracker: already saved today")
	// ErrNotSavedToday indicates an attempt to move on before saving.
	ErrNotSavedToday = errors.New("tracker: today's amount has not been saved")
	// ErrGoalComplete indicates every day of the plan has been saved.
	ErrGoalComplete = errors.New("tracker: savings goal already complete")
	// ErrEmptyAdvice indicates a completed recommendation without advice text.
	ErrEmptyAdvice = errors.New("tracker: recommendation advice is empty")
	// ErrUnknownEvent indicates an unrecognized event kind.
	ErrUnknownEvent = errors.New("tracker: unknown event")
)

// EventKind names a state transition.
type EventKind string

const (
	EventSaveToday              EventKind = "save"
	EventNextDay                EventKind = "next-day"
	EventMissDay                EventKind = "miss-day"
	EventUnban                  EventKind = "unban"
	EventCompleteRecommendation EventKind = "complete-recommendation"
)

// Event is a request to change State. Advice is used by
// EventCompleteRecommendation only.
type Event struct {
	Kind   EventKind `json:"kind"`
	Advice string    `json:"advice,omitempty"`
}

// ParseEventKind maps a CLI or URL name onto an EventKind.
func ParseEventKind(s string) (EventKind, error) {
	kind := EventKind(strings.ToLower(strings.TrimSpace(s)))
	switch kind {
	case EventSaveToday, EventNextDay, EventMissDay, EventUnban, EventCompleteRecommendation:
		return kind, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEvent, s)
}

// State is everything persisted about a user's progress.
type State struct {
	Goal                     goal.Goal `json:"goal"`
	CompletedDays            int       `json:"completedDays"`
	LastCompletionDate       string    `json:"lastCompletionDate,omitempty"`
	CurrentDate              string    `json:"currentDate"`
	MissedDaysStreak         int       `json:"missedDaysStreak"`
	MissedDays               []string  `json:"missedDays,omitempty"`
	Penalized                bool      `json:"isPenalized"`
	CompletedRecommendations []string  `json:"completedRecommendations,omitempty"`
}

// NewState starts tracking g on its start date.
func NewState(g goal.Goal) State {
	return State{
		Goal:        g,
		CurrentDate: g.StartDate,
	}
}

// Banned reports whether the missed-day streak has reached the ban threshold.
func (s State) Banned() bool {
	return s.MissedDaysStreak >= constants.BanThreshold
}

// SavedToday reports whether the current date's amount has been recorded.
func (s State) SavedToday() bool {
	return s.LastCompletionDate != "" && s.LastCompletionDate == s.CurrentDate
}

// PlanDays returns the length of the goal's plan.
func (s State) PlanDays() (int, error) {
	start, err := s.Goal.StartDateTime()
	if err != nil {
		return 0, err
	}
	deadline, err := s.Goal.DeadlineDate()
	if err != nil {
		return 0, err
	}
	return savings.PlanLength(deadline, start), nil
}

// Apply returns the state that results from e. s is left untouched.
func Apply(s State, e Event) (State, error) {
	if e.Kind == EventUnban {
		if !s.Banned() {
			return s, ErrNotBanned
		}
		s.MissedDaysStreak = 0
		s.Penalized = true
		return s, nil
	}

	if s.Banned() {
		return s, ErrBanned
	}

	switch e.Kind {
	case EventSaveToday:
		if s.SavedToday() {
			return s, ErrAlreadySaved
		}
		days, err := s.PlanDays()
		if err != nil {
			return s, err
		}
		if s.CompletedDays >= days {
			return s, ErrGoalComplete
		}
		s.CompletedDays++
		s.LastCompletionDate = s.CurrentDate
		s.MissedDaysStreak = 0
		return s, nil

	case EventNextDay:
		if !s.SavedToday() {
			return s, ErrNotSavedToday
		}
		next, err := datetime.OffsetDate(s.CurrentDate, 1)
		if err != nil {
			return s, fmt.Errorf("advancing current date: %w", err)
		}
		s.CurrentDate = next
		return s, nil

	case EventMissDay:
		next, err := datetime.OffsetDate(s.CurrentDate, 1)
		if err != nil {
			return s, fmt.Errorf("advancing current date: %w", err)
		}
		missed := make([]string, len(s.MissedDays), len(s.MissedDays)+1)
		copy(missed, s.MissedDays)
		s.MissedDays = append(missed, s.CurrentDate)
		s.MissedDaysStreak++
		s.CurrentDate = next
		return s, nil

	case EventCompleteRecommendation:
		advice := strings.TrimSpace(e.Advice)
		if advice == "" {
			return s, ErrEmptyAdvice
		}
		for _, done := range s.CompletedRecommendations {
			if done == advice {
				return s, nil
			}
		}
		completed := make([]string, len(s.CompletedRecommendations), len(s.CompletedRecommendations)+1)
		copy(completed, s.CompletedRecommendations)
		s.CompletedRecommendations = append(completed, advice)
		return s, nil
	}

	return s, fmt.Errorf("%w: %q", ErrUnknownEvent, e.Kind)
}
