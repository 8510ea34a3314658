package cli

import (
	"context"
	"fmt"

	"github.com/bakeryops/ovenplan/internal/cli/formatter"
	"github.com/bakeryops/ovenplan/internal/domain"
	"github.com/bakeryops/ovenplan/internal/scheduler"
	"github.com/spf13/cobra"
)

func newWorkCenterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wc",
		Short: "Manage work centers, staffing and shift blocks",
	}

	cmd.AddCommand(
		newWorkCenterAddCmd(app),
		newWorkCenterListCmd(app),
		newWorkCenterAlternatesCmd(app),
		newWorkCenterStaffCmd(app),
		newWorkCenterBlockCmd(app),
		newWorkCenterUnblockCmd(app),
	)

	return cmd
}

func newWorkCenterAddCmd(app *App) *cobra.Command {
	var (
		id, name, capacity string
		slots              int
		crossOrder         bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a work center",
		RunE: func(cmd *cobra.Command, args []string) error {
			wc := &domain.WorkCenter{
				ID:                       id,
				Name:                     name,
				CapacityUnit:             capacity,
				MaxConcurrent:            slots,
				AllowsCrossOrderParallel: crossOrder,
			}
			if err := app.Plant.CreateWorkCenter(context.Background(), wc); err != nil {
				return err
			}
			fmt.Printf("Created work center %s (%s mode)\n", wc.ID, scheduler.ClassifyMode(*wc))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Work center ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&capacity, "capacity", "line", "Capacity unit (carts, line, ...)")
	cmd.Flags().IntVar(&slots, "slots", 1, "Concurrent slots")
	cmd.Flags().BoolVar(&crossOrder, "cross-order", false, "Allow different orders in parallel")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newWorkCenterListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List work centers with their processing mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			wcs, err := app.Plant.ListWorkCenters(context.Background())
			if err != nil {
				return err
			}
			if len(wcs) == 0 {
				fmt.Println("No work centers.")
				return nil
			}
			fmt.Print(formatter.FormatWorkCenters(wcs, scheduler.ClassifyMode))
			return nil
		},
	}
}

func newWorkCenterAlternatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "alternates <work-center-id> [alternate-id ...]",
		Short: "Set the overflow alternates of a work center, in priority order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Plant.SetAlternates(context.Background(), args[0], args[1:]); err != nil {
				return err
			}
			fmt.Printf("Set %d alternate(s) for %s\n", len(args)-1, args[0])
			return nil
		},
	}
}

func newWorkCenterStaffCmd(app *App) *cobra.Command {
	var (
		wcID, date string
		shift      int
		headcount  int
	)

	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Record the headcount for one work center, date and shift",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseTimeFlag(date)
			if err != nil {
				return err
			}
			err = app.Plant.SetStaffing(context.Background(), domain.Staffing{
				WorkCenterID: wcID,
				Date:         day,
				Shift:        domain.ShiftNumber(shift),
				Headcount:    headcount,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Staffed %s on %s shift %d with %d\n", wcID, date, shift, headcount)
			return nil
		},
	}

	cmd.Flags().StringVar(&wcID, "wc", "", "Work center ID (required)")
	cmd.Flags().StringVar(&date, "date", "", "Date, YYYY-MM-DD (required)")
	cmd.Flags().IntVar(&shift, "shift", 0, "Shift number 1-3 (required)")
	cmd.Flags().IntVar(&headcount, "headcount", 0, "People assigned")
	_ = cmd.MarkFlagRequired("wc")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("shift")

	return cmd
}

func newWorkCenterBlockCmd(app *App) *cobra.Command {
	var (
		wcID, date, reason string
		shift              int
	)

	cmd := &cobra.Command{
		Use:   "block",
		Short: "Block one shift of a work center",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseTimeFlag(date)
			if err != nil {
				return err
			}
			err = app.Plant.BlockShift(context.Background(), domain.ShiftBlock{
				WorkCenterID: wcID,
				Date:         day,
				Shift:        domain.ShiftNumber(shift),
				Reason:       reason,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Blocked %s on %s shift %d\n", wcID, date, shift)
			return nil
		},
	}

	cmd.Flags().StringVar(&wcID, "wc", "", "Work center ID (required)")
	cmd.Flags().StringVar(&date, "date", "", "Date, YYYY-MM-DD (required)")
	cmd.Flags().IntVar(&shift, "shift", 0, "Shift number 1-3 (required)")
	cmd.Flags().StringVar(&reason, "reason", "", "Why the shift is blocked")
	_ = cmd.MarkFlagRequired("wc")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("shift")

	return cmd
}

func newWorkCenterUnblockCmd(app *App) *cobra.Command {
	var (
		wcID, date string
		shift      int
	)

	cmd := &cobra.Command{
		Use:   "unblock",
		Short: "Remove a shift block",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseTimeFlag(date)
			if err != nil {
				return err
			}
			err = app.Plant.UnblockShift(context.Background(), wcID, day, domain.ShiftNumber(shift))
			if err != nil {
				return err
			}
			fmt.Printf("Unblocked %s on %s shift %d\n", wcID, date, shift)
			return nil
		},
	}

	cmd.Flags().StringVar(&wcID, "wc", "", "Work center ID (required)")
	cmd.Flags().StringVar(&date, "date", "", "Date, YYYY-MM-DD (required)")
	cmd.Flags().IntVar(&shift, "shift", 0, "Shift number 1-3 (required)")
	_ = cmd.MarkFlagRequired("wc")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("shift")

	return cmd
}
