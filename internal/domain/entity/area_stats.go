package entity

// AreaStats agrega métricas de inventario por área sobre productos activos.
type AreaStats struct {
	Area               string
	TotalProducts      int
	TotalQuantity      int
	LowStockCount      int
	AverageDaysInStock float64 // días promedio desde fecha de entrada
}
