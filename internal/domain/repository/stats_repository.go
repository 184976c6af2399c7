package repository

import (
	"context"

	"github.com/almacen-dev/almacen-api/internal/domain/entity"
)

// StatsRepository consultas de solo lectura para estadísticas por área.
type StatsRepository interface {
	AreaStatistics(ctx context.Context) ([]entity.AreaStats, error)
}
