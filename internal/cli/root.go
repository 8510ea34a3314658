package cli

import (
	"github.com/bakeryops/ovenplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds the service interfaces CLI commands run against.
type App struct {
	Cascade  service.CascadeService
	Schedule service.ScheduleService
	Plant    service.PlantService
	Import   service.ImportService

	// IsInteractive gates confirmation prompts and the live board.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "ovenplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "ovenplan",
		Short: "Bakery production cascade planner",
	}

	root.AddCommand(
		newPlanCmd(app),
		newOrderCmd(app),
		newWorkCenterCmd(app),
		newRouteCmd(app),
		newImportCmd(app),
		newBoardCmd(app),
	)

	return root
}
