package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/almacen-dev/almacen-api/internal/application/dto"
	"github.com/almacen-dev/almacen-api/internal/application/inventory"
)

// WithdrawalHandler maneja las peticiones HTTP del libro de salidas. Altas y
// bajas pasan por el motor transaccional.
type WithdrawalHandler struct {
	uc *inventory.WithdrawalUseCase
}

// NewWithdrawalHandler construye el handler.
func NewWithdrawalHandler(uc *inventory.WithdrawalUseCase) *WithdrawalHandler {
	return &WithdrawalHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar salida de almacén
// @Description  Descuenta la cantidad del producto y escribe la salida en la
// @Description  misma transacción; rechaza con 400 si el stock es insuficiente.
// @Tags         withdrawals
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterWithdrawalRequest  true  "product_code, quantity, responsible, destination_area, notes"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/withdrawals [post]
func (h *WithdrawalHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterWithdrawalRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage(out, "salida registrada"))
}

// List godoc
// @Summary      Listar salidas (más reciente primero)
// @Tags         withdrawals
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/withdrawals [get]
func (h *WithdrawalHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKList(out, len(out)))
}

// Reverse godoc
// @Summary      Eliminar salida restaurando stock
// @Description  Borra la salida y devuelve su cantidad a la cantidad viva del
// @Description  producto en la misma transacción.
// @Tags         withdrawals
// @Produce      json
// @Param        id   path  int  true  "ID de la salida"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/withdrawals/{id} [delete]
func (h *WithdrawalHandler) Reverse(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("id inválido"))
	}
	if err := h.uc.Reverse(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.Response{Success: true, Message: "salida eliminada y stock restaurado"})
}
