package http

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/almacen-dev/almacen-api/internal/application/dto"
	"github.com/almacen-dev/almacen-api/internal/domain"
)

// validate instancia compartida para los DTOs de entrada.
var validate = validator.New()

// parseBody decodifica y valida el cuerpo JSON. Devuelve false si ya se
// respondió un 400.
func parseBody(c *fiber.Ctx, out any) bool {
	if err := c.BodyParser(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.Err("cuerpo inválido"))
		return false
	}
	if err := validate.Struct(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.Err("datos inválidos: " + err.Error()))
		return false
	}
	return true
}

// respondError traduce errores de dominio al sobre JSON y código HTTP:
// validación y reglas de negocio 400, no encontrado 404, resto 500 sin
// exponer detalle interno.
func respondError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{
			Success: false,
			Error:   "stock insuficiente",
			Message: fmt.Sprintf("solicitado %d, disponible %d", insufficient.Requested, insufficient.Available),
			Data:    fiber.Map{"available": insufficient.Available},
		})
	}
	var referenced *domain.SupplierReferencedError
	if errors.As(err, &referenced) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{
			Success: false,
			Error:   "proveedor referenciado por productos",
			Message: fmt.Sprintf("%d producto(s) activo(s) lo referencian", referenced.ProductCount),
			Data:    fiber.Map{"product_count": referenced.ProductCount},
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Err("recurso no encontrado"))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("entrada inválida"))
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err(err.Error()))
	}

	// Fallo inesperado (almacenamiento, etc.): la causa va al log con el ID
	// de la petición; el cliente recibe el genérico.
	requestID, _ := c.Locals("request_id").(string)
	log.Error().
		Err(err).
		Str("request_id", requestID).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Err("error interno del servidor"))
}
