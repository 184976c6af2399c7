package postgres

import (
	"context"
	"fmt"

	"github.com/almacen-dev/almacen-api/internal/domain/entity"
	"github.com/almacen-dev/almacen-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura para estadísticas por área.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// AreaStatistics agrega, por área y sobre productos activos: total de
// productos, unidades totales, productos en stock bajo y días promedio en
// stock desde la fecha de entrada.
func (r *StatsRepo) AreaStatistics(ctx context.Context) ([]entity.AreaStats, error) {
	const query = `
	SELECT
	    area,
	    COUNT(*)                                                         AS total_products,
	    COALESCE(SUM(quantity), 0)                                       AS total_quantity,
	    COUNT(*) FILTER (WHERE quantity <= min_quantity)                 AS low_stock_count,
	    COALESCE(AVG(EXTRACT(DAY FROM now() - entry_date)), 0)           AS average_days_in_stock
	FROM products
	WHERE active
	GROUP BY area
	ORDER BY area`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("area statistics: %w", err)
	}
	defer rows.Close()

	var stats []entity.AreaStats
	for rows.Next() {
		var s entity.AreaStats
		if err := rows.Scan(
			&s.Area, &s.TotalProducts, &s.TotalQuantity, &s.LowStockCount, &s.AverageDaysInStock,
		); err != nil {
			return nil, fmt.Errorf("scan area statistics: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
