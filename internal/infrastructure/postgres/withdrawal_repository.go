package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/almacen-dev/almacen-api/internal/domain/entity"
	"github.com/almacen-dev/almacen-api/internal/domain/repository"
)

var _ repository.WithdrawalRepository = (*WithdrawalRepo)(nil)

const withdrawalColumns = `id, product_code, product_name, quantity, unit, responsible,
		destination_area, notes, stock_before, stock_after, created_at`

// WithdrawalRepo implementación del puerto WithdrawalRepository sobre
// PostgreSQL (usable con pool o tx).
type WithdrawalRepo struct {
	q Querier
}

// NewWithdrawalRepository construye el adaptador del libro de salidas.
// Pasar pool o tx (Querier).
func NewWithdrawalRepository(q Querier) *WithdrawalRepo {
	return &WithdrawalRepo{q: q}
}

// Create persiste una salida y asigna el ID generado.
func (r *WithdrawalRepo) Create(ctx context.Context, w *entity.Withdrawal) error {
	query := `
		INSERT INTO withdrawals (product_code, product_name, quantity, unit, responsible,
		                         destination_area, notes, stock_before, stock_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		w.ProductCode, w.ProductName, w.Quantity, w.Unit, w.Responsible,
		w.DestinationArea, w.Notes, w.StockBefore, w.StockAfter, w.CreatedAt,
	).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}

// GetByID obtiene una salida. Devuelve nil si no existe.
func (r *WithdrawalRepo) GetByID(ctx context.Context, id int64) (*entity.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id = $1`
	var w entity.Withdrawal
	err := r.q.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.ProductCode, &w.ProductName, &w.Quantity, &w.Unit, &w.Responsible,
		&w.DestinationArea, &w.Notes, &w.StockBefore, &w.StockAfter, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get withdrawal: %w", err)
	}
	return &w, nil
}

// List devuelve todas las salidas, más reciente primero.
func (r *WithdrawalRepo) List(ctx context.Context) ([]*entity.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()

	var list []*entity.Withdrawal
	for rows.Next() {
		var w entity.Withdrawal
		if err := rows.Scan(
			&w.ID, &w.ProductCode, &w.ProductName, &w.Quantity, &w.Unit, &w.Responsible,
			&w.DestinationArea, &w.Notes, &w.StockBefore, &w.StockAfter, &w.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan withdrawal: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Delete elimina la fila del libro (hard delete).
func (r *WithdrawalRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM withdrawals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete withdrawal: %w", err)
	}
	return nil
}
