package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/bakeryops/ovenplan/internal/cli/formatter"
	"github.com/bakeryops/ovenplan/internal/domain"
	"github.com/spf13/cobra"
)

func newRouteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Manage product routes and process parameters",
	}

	cmd.AddCommand(
		newRouteSetCmd(app),
		newRouteShowCmd(app),
		newRouteProductivityCmd(app),
		newRouteRestCmd(app),
	)

	return cmd
}

func newRouteSetCmd(app *App) *cobra.Command {
	var product string
	var steps []string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace a product's route",
		Long:  `Each --step takes "work-center:operation"; order of the flags defines the sequence.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			routeSteps := make([]domain.RouteStep, 0, len(steps))
			for i, s := range steps {
				wcID, operation, ok := strings.Cut(s, ":")
				if !ok || wcID == "" || operation == "" {
					return fmt.Errorf("invalid step %q (expected work-center:operation)", s)
				}
				routeSteps = append(routeSteps, domain.RouteStep{
					WorkCenterID: wcID,
					Operation:    operation,
					Sequence:     i + 1,
				})
			}
			if err := app.Plant.SetRoute(context.Background(), product, routeSteps); err != nil {
				return err
			}
			fmt.Printf("Set route of %s (%d steps)\n", product, len(routeSteps))
			return nil
		},
	}

	cmd.Flags().StringVar(&product, "product", "", "Product ID (required)")
	cmd.Flags().StringArrayVar(&steps, "step", nil, `Route step "work-center:operation" (repeatable)`)
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("step")

	return cmd
}

func newRouteShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show a product's route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := app.Plant.Route(context.Background(), args[0])
			if err != nil {
				return err
			}
			if len(route) == 0 {
				fmt.Printf("No route for %s.\n", args[0])
				return nil
			}

			rows := make([][]string, 0, len(route))
			for _, s := range route {
				rows = append(rows, []string{
					fmt.Sprintf("%d", s.Sequence), s.Operation, s.WorkCenterID,
				})
			}
			fmt.Print(formatter.RenderTable([]string{"SEQ", "OPERATION", "WORK CENTER"}, rows))
			return nil
		},
	}
}

func newRouteProductivityCmd(app *App) *cobra.Command {
	var (
		product, wcID string
		unitsPerHour  float64
		fixedMinutes  int
	)

	cmd := &cobra.Command{
		Use:   "productivity",
		Short: "Set the throughput of a product at a work center",
		RunE: func(cmd *cobra.Command, args []string) error {
			if unitsPerHour > 0 && fixedMinutes > 0 {
				return fmt.Errorf("--uph and --fixed-min are mutually exclusive")
			}
			p := domain.ProductivityParam{
				ProductID:    product,
				WorkCenterID: wcID,
				UnitsPerHour: unitsPerHour,
				FixedMinutes: fixedMinutes,
				UseFixed:     fixedMinutes > 0,
			}
			if err := app.Plant.SetProductivity(context.Background(), p); err != nil {
				return err
			}
			fmt.Printf("Set productivity of %s at %s\n", product, wcID)
			return nil
		},
	}

	cmd.Flags().StringVar(&product, "product", "", "Product ID (required)")
	cmd.Flags().StringVar(&wcID, "wc", "", "Work center ID (required)")
	cmd.Flags().Float64Var(&unitsPerHour, "uph", 0, "Units per hour")
	cmd.Flags().IntVar(&fixedMinutes, "fixed-min", 0, "Fixed minutes per batch")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("wc")

	return cmd
}

func newRouteRestCmd(app *App) *cobra.Command {
	var (
		product, operation string
		hours              float64
	)

	cmd := &cobra.Command{
		Use:   "rest",
		Short: "Set the rest time required before an operation",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := domain.RestTime{ProductID: product, Operation: operation, Hours: hours}
			if err := app.Plant.SetRestTime(context.Background(), r); err != nil {
				return err
			}
			fmt.Printf("Set rest time of %s before %s to %.1fh\n", product, operation, hours)
			return nil
		},
	}

	cmd.Flags().StringVar(&product, "product", "", "Product ID (required)")
	cmd.Flags().StringVar(&operation, "operation", "", "Downstream operation (required)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Rest hours (required)")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("operation")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}
