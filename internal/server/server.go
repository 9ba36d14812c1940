// Package server exposes savings plans and progress tracking over an HTTP JSON API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/iwvelando/savings-orbit/internal/goal"
	"github.com/iwvelando/savings-orbit/internal/recommend"
	"github.com/iwvelando/savings-orbit/internal/tracker"
	"github.com/iwvelando/savings-orbit/pkg/constants"
	"github.com/iwvelando/savings-orbit/pkg/datetime"
	"github.com/iwvelando/savings-orbit/pkg/ledger"
	"github.com/iwvelando/savings-orbit/pkg/savings"
	"go.uber.org/zap"
)

const requestTimeout = 60 * time.Second

// Options holds what the handler needs besides its logger.
type Options struct {
	Controller     *tracker.Controller
	Recommender    recommend.Provider
	MaxUploadSize  int64
	Version        string
	AllowedOrigins []string
	// CurrencySymbol is passed to the recommender for its prompts.
	CurrencySymbol string
	// Today returns the current date; defaults to datetime.Today.
	Today func() time.Time
}

type handler struct {
	logger        *zap.Logger
	ctrl          *tracker.Controller
	recommender   recommend.Provider
	maxUploadSize int64
	version       string
	symbol        string
	today         func() time.Time
}

// NewHandler constructs the HTTP handler that serves the savings API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	today := opts.Today
	if today == nil {
		today = datetime.Today
	}

	recommender := opts.Recommender
	if recommender == nil {
		recommender = recommend.WithFallback(nil, logger)
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	h := &handler{
		logger:        logger,
		ctrl:          opts.Controller,
		recommender:   recommender,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		symbol:        opts.CurrencySymbol,
		today:         today,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Post("/plan", h.handlePlan)
		r.Post("/import", h.handleImport)

		r.Group(func(r chi.Router) {
			r.Use(h.requireController)
			r.Get("/status", h.handleStatus)
			r.Post("/goal", h.handleSetGoal)
			r.Delete("/goal", h.handleReset)
			r.Post("/progress/{event}", h.handleProgress)
			r.Get("/recommendations", h.handleRecommendations)
			r.Post("/recommendations/complete", h.handleCompleteRecommendation)
		})
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request served",
				zap.String("op", "server.request"),
				zap.String("requestID", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func (h *handler) requireController(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.ctrl == nil {
			h.respondErrorWithOp(w, http.StatusServiceUnavailable, "progress tracking is not configured", "server.requireController")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

type planRequest struct {
	TargetAmount float64 `json:"targetAmount"`
	Deadline     string  `json:"deadline"`
	StartDate    string  `json:"startDate,omitempty"`
}

type planResponse struct {
	Days      int             `json:"days"`
	FirstDay  float64         `json:"firstDay"`
	LastDay   float64         `json:"lastDay"`
	Increment float64         `json:"increment"`
	Plan      []savings.Entry `json:"plan"`
}

func (h *handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePlan"

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode plan request: %v", err), op)
		return
	}

	anchor, deadline, err := h.parseDates(req.StartDate, req.Deadline)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	plan, err := savings.Generate(req.TargetAmount, deadline, anchor)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	resp := planResponse{
		Days:     len(plan),
		FirstDay: plan[0].DailyAmount,
		LastDay:  plan[len(plan)-1].DailyAmount,
		Plan:     plan,
	}
	if len(plan) > 1 {
		resp.Increment = plan[1].DailyAmount - plan[0].DailyAmount
	}
	h.writeJSON(w, http.StatusOK, resp)
}

type stateResponse struct {
	State  tracker.State  `json:"state"`
	Status tracker.Status `json:"status"`
}

func (h *handler) respondState(w http.ResponseWriter, status int, s tracker.State, op string) {
	st, err := tracker.Compute(s)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}
	h.writeJSON(w, status, stateResponse{State: s, Status: st})
}

func (h *handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleStatus"

	s, err := h.ctrl.Load(r.Context())
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}
	h.respondState(w, http.StatusOK, s, op)
}

type goalRequest struct {
	TargetAmount  float64         `json:"targetAmount"`
	Deadline      string          `json:"deadline"`
	StartDate     string          `json:"startDate,omitempty"`
	AccuracyLevel string          `json:"accuracyLevel,omitempty"`
	Financials    goal.Financials `json:"financials"`
}

func (h *handler) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSetGoal"

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode goal: %v", err), op)
		return
	}

	level, err := goal.ParseAccuracyLevel(req.AccuracyLevel)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	start, deadline, err := h.parseDates(req.StartDate, req.Deadline)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	g, err := goal.New(req.TargetAmount, deadline, start, level, req.Financials)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	s, err := h.ctrl.SetGoal(r.Context(), g)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}
	h.respondState(w, http.StatusCreated, s, op)
}

func (h *handler) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Reset(r.Context()); err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), "server.handleReset")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProgress"

	kind, err := tracker.ParseEventKind(chi.URLParam(r, "event"))
	if err != nil || kind == tracker.EventCompleteRecommendation {
		h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("unknown progress event %q", chi.URLParam(r, "event")), op)
		return
	}

	s, err := h.ctrl.Dispatch(r.Context(), tracker.Event{Kind: kind})
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}
	h.respondState(w, http.StatusOK, s, op)
}

type completeRequest struct {
	Advice string `json:"advice"`
}

func (h *handler) handleCompleteRecommendation(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompleteRecommendation"

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	s, err := h.ctrl.Dispatch(r.Context(), tracker.Event{Kind: tracker.EventCompleteRecommendation, Advice: req.Advice})
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}
	h.respondState(w, http.StatusOK, s, op)
}

type recommendationsResponse struct {
	recommend.Result
	Week                    int      `json:"week"`
	WeeklySpending          float64  `json:"weeklySpending"`
	NewWeeklySpendingTarget *float64 `json:"newWeeklySpendingTarget,omitempty"`
}

func (h *handler) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRecommendations"

	s, err := h.ctrl.Load(r.Context())
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	week := savings.CurrentWeek(s.CompletedDays)
	result, err := h.recommender.Recommend(r.Context(), recommend.Request{
		Goal:        s.Goal,
		Completed:   s.CompletedRecommendations,
		CurrentWeek: week,
		Symbol:      h.symbol,
	})
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadGateway, err.Error(), op)
		return
	}

	resp := recommendationsResponse{
		Result:         result,
		Week:           week,
		WeeklySpending: s.Goal.WeeklySpending(),
	}
	if target, ok := recommend.NewWeeklySpendTarget(resp.WeeklySpending, result); ok {
		resp.NewWeeklySpendingTarget = &target
	}
	h.writeJSON(w, http.StatusOK, resp)
}

type importResponse struct {
	Transactions   []ledger.Transaction `json:"transactions"`
	WeeklySpending float64              `json:"weeklySpending"`
}

func (h *handler) handleImport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleImport"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing transactions file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	transactions, err := ledger.ParseCSV(file)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, importResponse{
		Transactions:   transactions,
		WeeklySpending: ledger.WeeklySpending(transactions),
	})
}

// parseDates parses an optional start date (today when empty) and a deadline.
func (h *handler) parseDates(startDate, deadline string) (time.Time, time.Time, error) {
	start := datetime.Midnight(h.today())
	if startDate != "" {
		parsed, err := datetime.ParseDate(startDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", startDate)
		}
		start = parsed
	}

	end, err := datetime.ParseDate(deadline)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid deadline %q: expected YYYY-MM-DD", deadline)
	}
	return start, end, nil
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, savings.ErrInvalidGoal),
		errors.Is(err, savings.ErrInvalidDeadline),
		errors.Is(err, savings.ErrDegenerateSchedule),
		errors.Is(err, ledger.ErrTooFewRows),
		errors.Is(err, ledger.ErrMissingColumns),
		errors.Is(err, ledger.ErrNoSpending),
		errors.Is(err, tracker.ErrEmptyAdvice),
		errors.Is(err, tracker.ErrUnknownEvent):
		return http.StatusBadRequest
	case errors.Is(err, tracker.ErrNoGoal):
		return http.StatusNotFound
	case errors.Is(err, tracker.ErrAlreadySaved),
		errors.Is(err, tracker.ErrNotSavedToday),
		errors.Is(err, tracker.ErrNotBanned),
		errors.Is(err, tracker.ErrGoalComplete):
		return http.StatusConflict
	case errors.Is(err, tracker.ErrBanned):
		return http.StatusLocked
	}
	return http.StatusInternalServerError
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	level := h.logger.Warn
	if status >= http.StatusInternalServerError {
		level = h.logger.Error
	}
	level("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
