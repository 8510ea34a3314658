package formatter

import (
	"fmt"

	"github.com/bakeryops/ovenplan/internal/domain"
)

// FormatEntries renders schedule entries as a table, in the given order.
func FormatEntries(entries []domain.ScheduleEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.OrderKey,
			e.ProductID,
			fmt.Sprintf("%d/%d", e.BatchIndex, e.BatchTotal),
			e.WorkCenterID,
			e.StartTime.Format(timeLayout),
			e.EndTime.Format(timeLayout),
		})
	}
	return RenderTable(
		[]string{"ORDER", "PRODUCT", "BATCH", "WORK CENTER", "START", "END"},
		rows,
	)
}

// FormatOrders renders production orders as a table.
func FormatOrders(orders []*domain.ProductionOrder) string {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			o.OrderKey,
			o.ProductID,
			fmt.Sprintf("%d", o.Quantity),
			StateBadge(o.State),
			o.RequestedStart.Format(timeLayout),
			FormatDeadline(o.Deadline),
		})
	}
	return RenderTable(
		[]string{"ORDER", "PRODUCT", "QTY", "STATE", "REQUESTED", "DEADLINE"},
		rows,
	)
}

// FormatWorkCenters renders work centers with their derived processing mode.
func FormatWorkCenters(wcs []*domain.WorkCenter, mode func(domain.WorkCenter) domain.ProcessingMode) string {
	rows := make([][]string, 0, len(wcs))
	for _, wc := range wcs {
		rows = append(rows, []string{
			wc.ID,
			wc.Name,
			wc.CapacityUnit,
			fmt.Sprintf("%d", wc.MaxConcurrent),
			ModeBadge(mode(*wc)),
		})
	}
	return RenderTable(
		[]string{"ID", "NAME", "CAPACITY", "SLOTS", "MODE"},
		rows,
	)
}
