package usecase

import (
	"context"

	"github.com/almacen-dev/almacen-api/internal/application/dto"
	"github.com/almacen-dev/almacen-api/internal/domain/repository"
)

// StatsUseCase estadísticas por área más la lista de stock bajo.
type StatsUseCase struct {
	statsRepo   repository.StatsRepository
	productRepo repository.ProductRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(statsRepo repository.StatsRepository, productRepo repository.ProductRepository) *StatsUseCase {
	return &StatsUseCase{statsRepo: statsRepo, productRepo: productRepo}
}

// Statistics agrega métricas por área y adjunta los productos en stock bajo.
func (uc *StatsUseCase) Statistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	stats, err := uc.statsRepo.AreaStatistics(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	areas := make([]dto.AreaStatsResponse, 0, len(stats))
	for _, s := range stats {
		areas = append(areas, dto.AreaStatsResponse{
			Area:               s.Area,
			TotalProducts:      s.TotalProducts,
			TotalQuantity:      s.TotalQuantity,
			LowStockCount:      s.LowStockCount,
			AverageDaysInStock: s.AverageDaysInStock,
		})
	}
	return &dto.StatisticsResponse{
		AreaStatistics:   areas,
		LowStockProducts: toProductResponses(lowStock),
	}, nil
}
