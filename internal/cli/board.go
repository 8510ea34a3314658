package cli

import (
	"context"
	"fmt"

	"github.com/bakeryops/ovenplan/internal/cli/formatter"
	"github.com/bakeryops/ovenplan/internal/domain"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	var (
		wcID string
		from string
		days int
	)

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show a work center's schedule window",
		Long: "Interactive schedule board for one work center. Falls back to a " +
			"plain table when stdout is not a terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseTimeFlag(from)
			if err != nil {
				return err
			}
			end := start.AddDate(0, 0, days)

			entries, err := app.Schedule.Window(context.Background(), wcID, start, end)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Printf("No entries at %s between %s and %s.\n",
					wcID, start.Format("2006-01-02"), end.Format("2006-01-02"))
				return nil
			}

			if !app.interactive() {
				fmt.Print(formatter.FormatEntries(entries))
				return nil
			}

			model := newBoardModel(wcID, entries)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&wcID, "wc", "", "Work center ID (required)")
	cmd.Flags().StringVar(&from, "from", "", "Window start, YYYY-MM-DD (required)")
	cmd.Flags().IntVar(&days, "days", 7, "Window length in days")
	_ = cmd.MarkFlagRequired("wc")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

var boardFrame = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(formatter.ColorDim)

type boardModel struct {
	workCenterID string
	table        table.Model
}

func newBoardModel(workCenterID string, entries []domain.ScheduleEntry) boardModel {
	columns := []table.Column{
		{Title: "ORDER", Width: 12},
		{Title: "PRODUCT", Width: 14},
		{Title: "BATCH", Width: 6},
		{Title: "ARRIVAL", Width: 17},
		{Title: "START", Width: 17},
		{Title: "END", Width: 17},
	}

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			e.OrderKey,
			e.ProductID,
			fmt.Sprintf("%d/%d", e.BatchIndex, e.BatchTotal),
			e.ArrivalTime.Format("2006-01-02 15:04"),
			e.StartTime.Format("2006-01-02 15:04"),
			e.EndTime.Format("2006-01-02 15:04"),
		})
	}

	height := len(rows)
	if height > 20 {
		height = 20
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(formatter.ColorHeader).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(formatter.ColorDim).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Foreground(formatter.ColorFg).
		Background(formatter.ColorBlue).
		Bold(false)
	tbl.SetStyles(styles)

	return boardModel{workCenterID: workCenterID, table: tbl}
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m boardModel) View() string {
	title := formatter.StyleHeader.Render(fmt.Sprintf(" Schedule · %s ", m.workCenterID))
	help := formatter.StyleDim.Render("↑/↓ scroll · q quit")
	return fmt.Sprintf("%s\n%s\n%s\n", title, boardFrame.Render(m.table.View()), help)
}
