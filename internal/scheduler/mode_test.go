package scheduler

import (
	"testing"

	"github.com/bakeryops/ovenplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifyMode(t *testing.T) {
	tests := []struct {
		name string
		wc   domain.WorkCenter
		want domain.ProcessingMode
	}{
		{
			"multi-cart oven is parallel",
			domain.WorkCenter{CapacityUnit: domain.CapacityUnitCarts, MaxConcurrent: 4},
			domain.ModeParallel,
		},
		{
			"single-cart oven is not parallel",
			domain.WorkCenter{CapacityUnit: domain.CapacityUnitCarts, MaxConcurrent: 1},
			domain.ModeSequential,
		},
		{
			"cross-order line is hybrid",
			domain.WorkCenter{CapacityUnit: "line", MaxConcurrent: 1, AllowsCrossOrderParallel: true},
			domain.ModeHybrid,
		},
		{
			"parallel beats hybrid flag",
			domain.WorkCenter{CapacityUnit: domain.CapacityUnitCarts, MaxConcurrent: 2, AllowsCrossOrderParallel: true},
			domain.ModeParallel,
		},
		{
			"plain line is sequential",
			domain.WorkCenter{CapacityUnit: "line", MaxConcurrent: 1},
			domain.ModeSequential,
		},
		{
			"zero-config work center defaults to sequential",
			domain.WorkCenter{},
			domain.ModeSequential,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyMode(tt.wc))
		})
	}
}
