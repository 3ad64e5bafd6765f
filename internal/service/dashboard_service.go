package service

import (
	"context"

	"inventory-spa/internal/model"
	"inventory-spa/internal/repository"
)

// LowStockThreshold marks items worth reordering.
const LowStockThreshold = 10

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalItems     int     `json:"total_items"`
	TotalUnits     int     `json:"total_units"`
	TotalValuation float64 `json:"total_valuation"`
	LowStockCount  int     `json:"low_stock_count"`
}

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	stockRepo repository.StockRepository
}

func NewDashboardService(stockRepo repository.StockRepository) DashboardService {
	return &dashboardService{stockRepo: stockRepo}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	items, err := s.stockRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	stats := SummarizeStock(items)
	return &stats, nil
}

// SummarizeStock totals a stock list.
func SummarizeStock(items []model.StockItem) DashboardStats {
	var stats DashboardStats
	for _, it := range items {
		stats.TotalItems++
		stats.TotalUnits += it.Quantity
		stats.TotalValuation += it.PurchasePrice * float64(it.Quantity)
		if it.Quantity < LowStockThreshold {
			stats.LowStockCount++
		}
	}
	return stats
}
