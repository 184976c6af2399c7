package repository

import (
	"context"

	"github.com/almacen-dev/almacen-api/internal/domain/entity"
)

// WithdrawalRepository define el puerto de persistencia para el libro de
// salidas. Create y Delete solo se invocan dentro de la transacción del
// motor de salidas.
type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *entity.Withdrawal) error
	GetByID(ctx context.Context, id int64) (*entity.Withdrawal, error)
	// List devuelve todas las salidas ordenadas por fecha descendente.
	List(ctx context.Context) ([]*entity.Withdrawal, error)
	// Delete elimina la fila (hard delete; el libro no conserva tombstones).
	Delete(ctx context.Context, id int64) error
}
