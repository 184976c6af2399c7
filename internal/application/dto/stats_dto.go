package dto

// AreaStatsResponse métricas de inventario de un área.
type AreaStatsResponse struct {
	Area               string  `json:"area"`
	TotalProducts      int     `json:"total_products"`
	TotalQuantity      int     `json:"total_quantity"`
	LowStockCount      int     `json:"low_stock_count"`
	AverageDaysInStock float64 `json:"average_days_in_stock"`
}

// StatisticsResponse estadísticas por área más la lista de productos con
// stock bajo, como las muestra el panel.
type StatisticsResponse struct {
	AreaStatistics   []AreaStatsResponse `json:"area_statistics"`
	LowStockProducts []ProductResponse   `json:"low_stock_products"`
}
