package inventory

import (
	"context"

	"github.com/almacen-dev/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el descuento de stock y la
// escritura en el libro de salidas se confirman juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		withdrawalRepo repository.WithdrawalRepository,
	) error) error
}
