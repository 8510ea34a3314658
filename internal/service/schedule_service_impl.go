package service

import (
	"context"
	"time"

	"github.com/bakeryops/ovenplan/internal/domain"
	"github.com/bakeryops/ovenplan/internal/repository"
)

type scheduleService struct {
	entries repository.ScheduleEntryRepo
	orders  repository.OrderRepo
}

func NewScheduleService(entries repository.ScheduleEntryRepo, orders repository.OrderRepo) ScheduleService {
	return &scheduleService{entries: entries, orders: orders}
}

func (s *scheduleService) Window(ctx context.Context, workCenterID string, from, to time.Time) ([]domain.ScheduleEntry, error) {
	return s.entries.ListWindow(ctx, workCenterID, from, to)
}

func (s *scheduleService) ListByOrder(ctx context.Context, orderKey string) ([]domain.ScheduleEntry, error) {
	return s.entries.ListByOrder(ctx, orderKey)
}

func (s *scheduleService) Orders(ctx context.Context) ([]*domain.ProductionOrder, error) {
	return s.orders.List(ctx)
}

func (s *scheduleService) GetOrder(ctx context.Context, key string) (*domain.ProductionOrder, error) {
	return s.orders.GetByKey(ctx, key)
}
