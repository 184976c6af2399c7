package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/almacen-dev/almacen-api/internal/domain"
	"github.com/almacen-dev/almacen-api/internal/domain/entity"
	"github.com/almacen-dev/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `code, name, area, quantity, min_quantity, unit, piece_factor,
		purchase_price, location, entry_date, supplier_id, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (code, name, area, quantity, min_quantity, unit, piece_factor,
		                      purchase_price, location, entry_date, supplier_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.Code, p.Name, p.Area, p.Quantity, p.MinQuantity, p.Unit, p.PieceFactor,
		p.PurchasePrice, p.Location, p.EntryDate, p.SupplierID, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByCode obtiene un producto activo por código. Devuelve nil si no existe.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1 AND active`
	return r.scanOne(r.q.QueryRow(ctx, query, code), "get product")
}

// GetByCodeForUpdate obtiene el producto activo y bloquea su fila
// (SELECT FOR UPDATE) para serializar salidas concurrentes.
func (r *ProductRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1 AND active FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, code), "get product for update")
}

// List lista productos activos. Search filtra por subcadena en nombre o
// código (ILIKE); Area por igualdad exacta; se combinan con AND. Los códigos
// numéricos ordenan numéricamente (longitud primero, luego texto).
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE active`
	args := []any{}
	pos := 1
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR code ILIKE $%d)", pos, pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	if filter.Area != "" {
		query += fmt.Sprintf(" AND area = $%d", pos)
		args = append(args, filter.Area)
		pos++
	}
	query += " ORDER BY length(code), code"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListLowStock lista productos activos con cantidad <= mínimo, ordenados por
// holgura ascendente.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE active AND quantity <= min_quantity
		ORDER BY (quantity - min_quantity) ASC, code ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// Update actualiza los campos descriptivos de un producto. No escribe
// quantity: la cantidad solo la mutan UpdateQuantity y AddQuantity, de modo
// que una edición concurrente no pise el descuento de una salida ya
// confirmada.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, area = $3, min_quantity = $4, unit = $5,
		    piece_factor = $6, purchase_price = $7, location = $8, supplier_id = $9, updated_at = $10
		WHERE code = $1 AND active`
	_, err := r.q.Exec(ctx, query,
		p.Code, p.Name, p.Area, p.MinQuantity, p.Unit,
		p.PieceFactor, p.PurchasePrice, p.Location, p.SupplierID, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateQuantity fija la cantidad absoluta (usada dentro de la transacción de
// salidas, con la fila ya bloqueada).
func (r *ProductRepo) UpdateQuantity(ctx context.Context, code string, quantity int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $2, updated_at = now() WHERE code = $1`,
		code, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// AddQuantity suma delta a la cantidad viva. Incluye filas inactivas para que
// una reversión restaure el stock de productos desactivados. Devuelve false
// si la fila ya no existe.
func (r *ProductRepo) AddQuantity(ctx context.Context, code string, delta int) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = quantity + $2, updated_at = now() WHERE code = $1`,
		code, delta,
	)
	if err != nil {
		return false, fmt.Errorf("add product quantity: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Delete marca el producto como inactivo (soft delete).
func (r *ProductRepo) Delete(ctx context.Context, code string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET active = FALSE, updated_at = now() WHERE code = $1`,
		code,
	)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// NextCode devuelve el máximo código numérico + 1, ignorando códigos no
// numéricos.
func (r *ProductRepo) NextCode(ctx context.Context) (int64, error) {
	var next int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(code::BIGINT), 0) + 1 FROM products WHERE code ~ '^[0-9]+$'`,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next product code: %w", err)
	}
	return next, nil
}

// CountBySupplier cuenta productos activos que referencian al proveedor.
func (r *ProductRepo) CountBySupplier(ctx context.Context, supplierID int64) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE supplier_id = $1 AND active`,
		supplierID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by supplier: %w", err)
	}
	return count, nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.Code, &p.Name, &p.Area, &p.Quantity, &p.MinQuantity, &p.Unit, &p.PieceFactor,
		&p.PurchasePrice, &p.Location, &p.EntryDate, &p.SupplierID, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func (r *ProductRepo) scanMany(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.Code, &p.Name, &p.Area, &p.Quantity, &p.MinQuantity, &p.Unit, &p.PieceFactor,
			&p.PurchasePrice, &p.Location, &p.EntryDate, &p.SupplierID, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
