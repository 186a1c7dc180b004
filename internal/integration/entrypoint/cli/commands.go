package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mealsync/backend/config"
	"github.com/mealsync/backend/internal/domain/entity"
	"github.com/mealsync/backend/internal/domain/mealplan"
)

type options struct {
	catalogFile  string
	snapshotFile string
	week         int
}

// NewRootCommand builds the mealctl command tree writing to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "mealctl",
		Short:         "Inspect MealSync catalogs and plan snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(out)
	root.PersistentFlags().StringVarP(&opts.catalogFile, "catalog", "c", os.Getenv("CATALOG_FILE"), "Catalog TOML file (embedded catalog when empty)")

	root.AddCommand(
		newCatalogCommand(opts),
		newValidateCommand(opts),
		newSummaryCommand(opts),
		newWeekCommand(opts),
	)
	return root
}

// Execute runs mealctl against os.Args.
func Execute() {
	if err := NewRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, overStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func newCatalogCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print meals, defaults and budget targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := config.LoadCatalog(opts.catalogFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTitle("MEAL CATALOG"))
			for _, mt := range entity.MealTypes {
				rows := [][]string{}
				for _, meal := range catalog.Meals(mt) {
					rows = append(rows, []string{meal.ID, meal.Name, meal.Price.StringFixed(2)})
				}
				fmt.Fprint(out, renderTable(table{
					title:   string(mt),
					headers: []string{"ID", "Name", "Price"},
					rows:    rows,
				}))
			}

			budgets := [][]string{}
			for _, key := range entity.BudgetKeys {
				budgets = append(budgets, []string{string(key), catalog.DefaultBudgets.Get(key).StringFixed(2)})
			}
			fmt.Fprint(out, renderTable(table{
				title:   "default budgets",
				headers: []string{"Key", "Target"},
				rows:    budgets,
			}))
			return nil
		},
	}
}

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a catalog file for errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := config.LoadCatalog(opts.catalogFile)
			if err != nil {
				return err
			}

			count := 0
			for _, mt := range entity.MealTypes {
				count += len(catalog.Meals(mt))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d meals, %d defaults\n",
				underStyle.Render("catalog ok:"), count, len(catalog.Defaults))
			return nil
		},
	}
}

func newSummaryCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the budget summary of a plan snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			aggregator, plan, err := loadPlan(cmd, opts)
			if err != nil {
				return err
			}
			week := opts.week
			if week == 0 {
				week = plan.SelectedWeek
			}
			if !entity.ValidWeek(week) {
				return fmt.Errorf("week %d is outside 1..%d", week, entity.WeeksPerPlan)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSummary(aggregator.Summary(plan, week)))
			return nil
		},
	}
	addSnapshotFlags(cmd, opts)
	return cmd
}

func newWeekCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the meal board of one week of a plan snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			aggregator, plan, err := loadPlan(cmd, opts)
			if err != nil {
				return err
			}
			week := opts.week
			if week == 0 {
				week = plan.SelectedWeek
			}
			if !entity.ValidWeek(week) {
				return fmt.Errorf("week %d is outside 1..%d", week, entity.WeeksPerPlan)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderBoard(aggregator.Board(plan, week)))
			return nil
		},
	}
	addSnapshotFlags(cmd, opts)
	return cmd
}

func addSnapshotFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.snapshotFile, "snapshot", "s", "", "Plan snapshot JSON file, - for stdin")
	cmd.Flags().IntVarP(&opts.week, "week", "w", 0, "Week to show (selected week when 0)")
	_ = cmd.MarkFlagRequired("snapshot")
}

// loadPlan restores a plan from a snapshot file. Both a bare snapshot and
// the GET /api/v1/plan response body are accepted.
func loadPlan(cmd *cobra.Command, opts *options) (*mealplan.Aggregator, *entity.Plan, error) {
	catalog, err := config.LoadCatalog(opts.catalogFile)
	if err != nil {
		return nil, nil, err
	}

	var data []byte
	if opts.snapshotFile == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(opts.snapshotFile)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var envelope struct {
		Snapshot json.RawMessage `json:"snapshot"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Snapshot) > 0 {
		data = envelope.Snapshot
	}

	plan := entity.NewPlan(catalog.DefaultBudgets)
	if err := entity.UnmarshalPlanState(data, plan); err != nil {
		return nil, nil, err
	}
	return mealplan.NewAggregator(catalog), plan, nil
}
