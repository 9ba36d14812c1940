package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/savings-orbit/internal/goal"
	"github.com/iwvelando/savings-orbit/internal/recommend"
	"github.com/iwvelando/savings-orbit/internal/server"
	"github.com/iwvelando/savings-orbit/internal/tracker"
	"github.com/iwvelando/savings-orbit/pkg/constants"
	"github.com/iwvelando/savings-orbit/pkg/datetime"
	"github.com/iwvelando/savings-orbit/pkg/ledger"
	"github.com/iwvelando/savings-orbit/pkg/output"
	"github.com/iwvelando/savings-orbit/pkg/savings"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// goalFlags override the config file's goal section.
type goalFlags struct {
	target          float64
	deadline        string
	start           string
	accuracy        string
	monthlyIncome   float64
	monthlySpending float64
	weeklyGroceries float64
	transactions    string
}

func (f *goalFlags) register(cmd *cobra.Command, full bool) {
	cmd.Flags().Float64VarP(&f.target, "target", "t", 0, "amount to save")
	cmd.Flags().StringVarP(&f.deadline, "deadline", "d", "", "deadline date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.start, "start", "", "first day of the plan (YYYY-MM-DD, default today)")
	if !full {
		return
	}
	cmd.Flags().StringVar(&f.accuracy, "accuracy", "", "detail level: basic, intermediate, advanced")
	cmd.Flags().Float64Var(&f.monthlyIncome, "monthly-income", 0, "monthly income")
	cmd.Flags().Float64Var(&f.monthlySpending, "monthly-spending", 0, "monthly spending")
	cmd.Flags().Float64Var(&f.weeklyGroceries, "weekly-groceries", 0, "weekly grocery spending")
	cmd.Flags().StringVar(&f.transactions, "transactions", "", "CSV ledger export for advanced accuracy")
}

func (f *goalFlags) apply(a *app, cmd *cobra.Command) {
	g := &a.conf.Goal
	flags := cmd.Flags()
	if flags.Changed("target") {
		g.TargetAmount = f.target
	}
	if flags.Changed("deadline") {
		g.Deadline = f.deadline
	}
	if flags.Changed("start") {
		g.StartDate = f.start
	}
	if flags.Changed("accuracy") {
		g.AccuracyLevel = f.accuracy
	}
	if flags.Changed("monthly-income") {
		g.MonthlyIncome = f.monthlyIncome
	}
	if flags.Changed("monthly-spending") {
		g.MonthlySpending = f.monthlySpending
	}
	if flags.Changed("weekly-groceries") {
		g.WeeklyGroceries = f.weeklyGroceries
	}
	if flags.Changed("transactions") {
		g.TransactionsFile = f.transactions
		if g.AccuracyLevel == "" || g.AccuracyLevel == string(goal.AccuracyBasic) {
			g.AccuracyLevel = string(goal.AccuracyAdvanced)
		}
	}
}

func newPlanCmd(a *app) *cobra.Command {
	var f goalFlags
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the daily savings plan for a target and deadline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.apply(a, cmd)

			anchor := datetime.Today()
			if a.conf.Goal.StartDate != "" {
				parsed, err := datetime.ParseDate(a.conf.Goal.StartDate)
				if err != nil {
					return fmt.Errorf("invalid start date: %w", err)
				}
				anchor = parsed
			}
			deadline, err := datetime.ParseDate(a.conf.Goal.Deadline)
			if err != nil {
				return fmt.Errorf("invalid deadline: %w", err)
			}

			plan, err := savings.Generate(a.conf.Goal.TargetAmount, deadline, anchor)
			if err != nil {
				return err
			}
			a.logger.Debug("plan generated",
				zap.String("op", "main.plan"),
				zap.Int("days", len(plan)),
				zap.Float64("firstDay", plan[0].DailyAmount),
			)
			return output.Plan(cmd.OutOrStdout(), a.outputFormat, a.symbol(), plan)
		},
	}
	f.register(cmd, false)
	return cmd
}

func newGoalCmd(a *app) *cobra.Command {
	var f goalFlags
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Set a new savings goal, replacing any current progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.apply(a, cmd)
			if !a.conf.HasGoal() {
				return errors.New("no goal given: pass --target and --deadline or set them in the config file")
			}

			g, err := a.conf.BuildGoal(datetime.Today())
			if err != nil {
				return err
			}

			ctrl, err := a.controller(cmd.Context())
			if err != nil {
				return err
			}
			s, err := ctrl.SetGoal(cmd.Context(), g)
			if err != nil {
				return err
			}
			return a.printStatus(cmd, s)
		},
	}
	f.register(cmd, true)
	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show progress towards the current goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := a.controller(cmd.Context())
			if err != nil {
				return err
			}
			s, err := ctrl.Load(cmd.Context())
			if err != nil {
				return noGoalHint(err)
			}
			return a.printStatus(cmd, s)
		},
	}
}

func newProgressCmd(a *app, use, short string, kind tracker.EventKind) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := a.controller(cmd.Context())
			if err != nil {
				return err
			}
			s, err := ctrl.Dispatch(cmd.Context(), tracker.Event{Kind: kind})
			if err != nil {
				return noGoalHint(err)
			}
			return a.printStatus(cmd, s)
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the current goal and all progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := a.controller(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctrl.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Goal reset.")
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <ledger.csv>",
		Short: "Parse a bank ledger export and report weekly spending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			transactions, err := ledger.ParseCSV(f)
			if err != nil {
				return err
			}
			weekly := ledger.WeeklySpending(transactions)

			out := cmd.OutOrStdout()
			if a.outputFormat == constants.OutputFormatJSON {
				return output.JSONFormat(out, map[string]any{
					"transactions":   transactions,
					"weeklySpending": weekly,
				})
			}
			fmt.Fprintf(out, "Imported %d spending transactions totalling %s%s\n",
				len(transactions), a.symbol(), ledger.Total(transactions).StringFixed(2))
			fmt.Fprintf(out, "Average weekly spending: %s%.2f\n", a.symbol(), weekly)
			fmt.Fprintf(out, "Use it with: savings-orbit goal --transactions %s ...\n", args[0])
			return nil
		},
	}
}

func newRecommendCmd(a *app) *cobra.Command {
	var complete string
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Get this week's savings advice, or mark advice as done",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			ctrl, err := a.controller(ctx)
			if err != nil {
				return err
			}

			if complete != "" {
				if _, err := ctrl.Dispatch(ctx, tracker.Event{Kind: tracker.EventCompleteRecommendation, Advice: complete}); err != nil {
					return noGoalHint(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marked as done: %s\n", complete)
				return nil
			}

			s, err := ctrl.Load(ctx)
			if err != nil {
				return noGoalHint(err)
			}

			provider := recommend.New(a.conf.RecommendOptions(), a.logger)
			result, err := provider.Recommend(ctx, recommend.Request{
				Goal:        s.Goal,
				Completed:   s.CompletedRecommendations,
				CurrentWeek: savings.CurrentWeek(s.CompletedDays),
				Symbol:      a.symbol(),
			})
			if err != nil {
				return err
			}
			return output.Recommendations(cmd.OutOrStdout(), a.outputFormat, a.symbol(), result, s.Goal.WeeklySpending())
		},
	}
	cmd.Flags().StringVar(&complete, "complete", "", "mark the given advice as done")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var serverConfigPath string
	var address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the savings API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			serverConf, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			if address != "" {
				serverConf.Address = address
			}

			logger := a.logger
			if serverConf.Logging.Level != "" || serverConf.Logging.Format != "" || serverConf.Logging.OutputFile != "" {
				logger, err = initializeLogger(serverConf.Logging, a.logLevel)
				if err != nil {
					return fmt.Errorf("failed to initialize server logger: %w", err)
				}
				defer func() { _ = logger.Sync() }()
			}

			ctrl, err := a.controller(cmd.Context())
			if err != nil {
				return err
			}

			handler := server.NewHandler(logger, server.Options{
				Controller:     ctrl,
				Recommender:    recommend.New(a.conf.RecommendOptions(), logger),
				MaxUploadSize:  serverConf.UploadSizeBytes(),
				Version:        version,
				AllowedOrigins: serverConf.AllowedOrigins,
				CurrencySymbol: a.symbol(),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.ListenAndServe(ctx, logger, serverConf, handler)
		},
	}
	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	return cmd
}

func (a *app) printStatus(cmd *cobra.Command, s tracker.State) error {
	status, err := tracker.Compute(s)
	if err != nil {
		return err
	}
	return output.Status(cmd.OutOrStdout(), a.outputFormat, a.symbol(), status)
}

func noGoalHint(err error) error {
	if errors.Is(err, tracker.ErrNoGoal) {
		return fmt.Errorf("%w: create one with 'savings-orbit goal --target <amount> --deadline <YYYY-MM-DD>'", err)
	}
	return err
}
