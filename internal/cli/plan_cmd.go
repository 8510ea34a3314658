package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/bakeryops/ovenplan/internal/cli/formatter"
	"github.com/bakeryops/ovenplan/internal/contract"
	"github.com/spf13/cobra"
)

// commitRetries bounds how often a commit is retried after losing a window
// version race to a concurrent planner.
const commitRetries = 3

var timeLayouts = []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"}

func parseTimeFlag(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (expected YYYY-MM-DD or YYYY-MM-DD HH:MM)", value)
}

func newPlanCmd(app *App) *cobra.Command {
	var (
		product  string
		quantity int
		lot      int
		start    string
		deadline string
		orderKey string
		commit   bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a production run across its route",
		Long: "Splits the quantity into batches, simulates every route step and " +
			"prints the resulting placements. With --commit the plan is persisted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			startTime, err := parseTimeFlag(start)
			if err != nil {
				return err
			}

			req := contract.PlanRequest{
				ProductID:      product,
				Quantity:       quantity,
				MinLotSize:     lot,
				RequestedStart: startTime,
				OrderKey:       orderKey,
			}
			if deadline != "" {
				d, err := parseTimeFlag(deadline)
				if err != nil {
					return err
				}
				req.Deadline = &d
			}

			ctx := context.Background()
			resp, err := runPlan(ctx, app, req, commit)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatPlan(resp))
			if !commit {
				fmt.Println(formatter.StyleDim.Render("dry run, nothing persisted (use --commit)"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&product, "product", "", "Product ID (required)")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "Total units to produce (required)")
	cmd.Flags().IntVar(&lot, "lot", 0, "Minimum lot size (default: product default)")
	cmd.Flags().StringVar(&start, "start", "", "Requested start, YYYY-MM-DD [HH:MM] (required)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline enabling overflow to alternates")
	cmd.Flags().StringVar(&orderKey, "order-key", "", "Explicit order key (default: next number)")
	cmd.Flags().BoolVar(&commit, "commit", false, "Persist the plan")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("quantity")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

// runPlan executes a plan or commit. Commits that lose the window version
// race are replanned against the new window state.
func runPlan(ctx context.Context, app *App, req contract.PlanRequest, commit bool) (*contract.PlanResponse, error) {
	if !commit {
		return app.Cascade.Plan(ctx, req)
	}

	var lastErr error
	for attempt := 0; attempt < commitRetries; attempt++ {
		resp, err := app.Cascade.Commit(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !contract.IsConflict(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("schedule window kept changing, giving up after %d attempts: %w", commitRetries, lastErr)
}
