package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/almacen-dev/almacen-api/internal/application/dto"
	"github.com/almacen-dev/almacen-api/internal/domain"
	"github.com/almacen-dev/almacen-api/internal/domain/entity"
	"github.com/almacen-dev/almacen-api/internal/domain/repository"
	"github.com/almacen-dev/almacen-api/pkg/logger"
	"github.com/almacen-dev/almacen-api/pkg/metrics"
)

// WithdrawalUseCase registra y revierte salidas de almacén de forma
// transaccional: la cantidad del producto y el libro de salidas se mutan en la
// misma transacción, con bloqueo de fila (SELECT FOR UPDATE) para que dos
// salidas concurrentes no puedan sobregirar el stock contra una lectura vieja.
type WithdrawalUseCase struct {
	txRunner       TxRunner
	withdrawalRepo repository.WithdrawalRepository
	log            *logger.Logger
}

// NewWithdrawalUseCase construye el caso de uso. withdrawalRepo atado al pool
// se usa solo para lecturas fuera de transacción.
func NewWithdrawalUseCase(txRunner TxRunner, withdrawalRepo repository.WithdrawalRepository, log *logger.Logger) *WithdrawalUseCase {
	return &WithdrawalUseCase{txRunner: txRunner, withdrawalRepo: withdrawalRepo, log: log}
}

// Register valida la entrada, verifica stock suficiente bajo bloqueo de fila
// y dentro de una sola transacción inserta la salida (con instantáneas
// stock_before/stock_after) y descuenta la cantidad del producto. Ninguna
// validación fallida toca el almacenamiento.
func (uc *WithdrawalUseCase) Register(ctx context.Context, in dto.RegisterWithdrawalRequest) (*dto.WithdrawalResponse, error) {
	if strings.TrimSpace(in.ProductCode) == "" || strings.TrimSpace(in.Responsible) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.Withdrawal
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		withdrawalRepo repository.WithdrawalRepository,
	) error {
		// Bloquea la fila del producto; toda decisión de suficiencia se toma
		// sobre la cantidad autoritativa bajo el candado.
		product, err := productRepo.GetByCodeForUpdate(ctx, in.ProductCode)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.Quantity > product.Quantity {
			metrics.InsufficientStockRejections.Inc()
			return &domain.InsufficientStockError{
				ProductCode: product.Code,
				Requested:   in.Quantity,
				Available:   product.Quantity,
			}
		}

		w := &entity.Withdrawal{
			ProductCode:     product.Code,
			ProductName:     product.Name,
			Quantity:        in.Quantity,
			Unit:            product.Unit,
			Responsible:     strings.TrimSpace(in.Responsible),
			DestinationArea: in.DestinationArea,
			Notes:           in.Notes,
			StockBefore:     product.Quantity,
			StockAfter:      product.Quantity - in.Quantity,
			CreatedAt:       time.Now(),
		}
		if err := withdrawalRepo.Create(ctx, w); err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(ctx, product.Code, w.StockAfter); err != nil {
			return err
		}
		created = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.WithdrawalsRegistered.Inc()
	uc.log.Info().
		Int64("withdrawal_id", created.ID).
		Str("product_code", created.ProductCode).
		Int("quantity", created.Quantity).
		Int("stock_after", created.StockAfter).
		Msg("salida registrada")
	return toWithdrawalResponse(created), nil
}

// Reverse elimina una salida y devuelve su cantidad sobre la cantidad VIVA
// del producto (no la instantánea stock_before, para componer con ediciones
// posteriores). Si el producto ya no existe, la restauración se omite pero la
// salida se elimina igualmente; el caso queda registrado en el log y en la
// métrica de reversiones huérfanas.
func (uc *WithdrawalUseCase) Reverse(ctx context.Context, id int64) error {
	var orphan bool
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		withdrawalRepo repository.WithdrawalRepository,
	) error {
		w, err := withdrawalRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.ErrNotFound
		}
		if err := withdrawalRepo.Delete(ctx, id); err != nil {
			return err
		}
		restored, err := productRepo.AddQuantity(ctx, w.ProductCode, w.Quantity)
		if err != nil {
			return err
		}
		if !restored {
			orphan = true
			uc.log.Warn().
				Int64("withdrawal_id", id).
				Str("product_code", w.ProductCode).
				Int("quantity", w.Quantity).
				Msg("producto inexistente al revertir salida; stock no restaurado")
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.WithdrawalsReversed.Inc()
	if orphan {
		metrics.OrphanReversals.Inc()
	}
	return nil
}

// List devuelve todas las salidas, más reciente primero.
func (uc *WithdrawalUseCase) List(ctx context.Context) ([]dto.WithdrawalResponse, error) {
	list, err := uc.withdrawalRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WithdrawalResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWithdrawalResponse(w))
	}
	return items, nil
}

func toWithdrawalResponse(w *entity.Withdrawal) *dto.WithdrawalResponse {
	if w == nil {
		return nil
	}
	return &dto.WithdrawalResponse{
		ID:              w.ID,
		ProductCode:     w.ProductCode,
		ProductName:     w.ProductName,
		Quantity:        w.Quantity,
		Unit:            w.Unit,
		Responsible:     w.Responsible,
		DestinationArea: w.DestinationArea,
		Notes:           w.Notes,
		StockBefore:     w.StockBefore,
		StockAfter:      w.StockAfter,
		CreatedAt:       w.CreatedAt,
	}
}
