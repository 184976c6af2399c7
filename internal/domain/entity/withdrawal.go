package entity

import "time"

// Withdrawal representa una salida de almacén: unidades retiradas de un
// producto por una persona responsable hacia un área destino. Guarda
// instantáneas del stock antes y después para el histórico; ProductName y
// Unit también son instantáneas, de modo que el libro sobrevive a la
// eliminación del producto.
//
// Una salida tiene exactamente dos estados: activa (descontada del stock) o
// eliminada (fila borrada, stock restaurado). Solo el motor transaccional la
// crea o elimina.
type Withdrawal struct {
	ID              int64
	ProductCode     string
	ProductName     string
	Quantity        int // > 0
	Unit            string
	Responsible     string
	DestinationArea string
	Notes           string
	StockBefore     int
	StockAfter      int
	CreatedAt       time.Time
}
