package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/bakeryops/ovenplan/internal/contract"
)

const timeLayout = "2006-01-02 15:04"

// FormatPlan renders a plan or commit response: one table per route step
// plus any warnings.
func FormatPlan(resp *contract.PlanResponse) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Order %s", resp.OrderKey)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("State: %s\n", StateBadge(resp.State)))

	for _, step := range resp.Steps {
		b.WriteString("\n")
		b.WriteString(StyleBold.Render(fmt.Sprintf("Step %d · %s", step.Sequence, step.Operation)))
		b.WriteString("\n")

		rows := make([][]string, 0, len(step.Entries))
		for _, e := range step.Entries {
			wc := e.WorkCenterID
			if wc != step.WorkCenterID {
				// Overflow placements stand out from the primary.
				wc = StyleYellow.Render(wc)
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d/%d", e.BatchIndex, e.BatchTotal),
				wc,
				e.ArrivalTime.Format(timeLayout),
				e.StartTime.Format(timeLayout),
				e.EndTime.Format(timeLayout),
				fmt.Sprintf("%dm", e.DurationMin),
			})
		}
		b.WriteString(RenderTable(
			[]string{"BATCH", "WORK CENTER", "ARRIVAL", "START", "END", "DUR"},
			rows,
		))
	}

	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range resp.Warnings {
			b.WriteString(StyleYellow.Render(fmt.Sprintf("warning [%s]: %s", w.Code, w.Message)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatDeadline renders an optional deadline for order listings.
func FormatDeadline(deadline *time.Time) string {
	if deadline == nil {
		return StyleDim.Render("—")
	}
	return deadline.Format(timeLayout)
}
