package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <plant.json>",
		Short: "Import a plant configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportPlant(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d work centers, %d route steps, %d productivity records, "+
				"%d rest times, %d staffing slots, %d shift blocks\n",
				result.WorkCenterCount, result.RouteStepCount, result.ProductivityCount,
				result.RestTimeCount, result.StaffingCount, result.ShiftBlockCount)
			return nil
		},
	}
}
