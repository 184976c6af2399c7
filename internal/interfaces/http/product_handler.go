package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacen-dev/almacen-api/internal/application/dto"
	"github.com/almacen-dev/almacen-api/internal/application/usecase"
	"github.com/almacen-dev/almacen-api/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage(out, "producto creado"))
}

// List godoc
// @Summary      Listar productos (búsqueda y filtro por área)
// @Tags         products
// @Produce      json
// @Param        search  query  string  false  "Subcadena en nombre o código"
// @Param        area    query  string  false  "Área exacta"
// @Success      200     {object}  dto.Response
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Search: c.Query("search"),
		Area:   c.Query("area"),
	}
	out, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKList(out, len(out)))
}

// GetByCode godoc
// @Summary      Obtener producto por código
// @Tags         products
// @Produce      json
// @Param        code  path  string  true  "Código del producto"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/products/{code} [get]
func (h *ProductHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.Context(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Err("producto no encontrado"))
	}
	return c.JSON(dto.OK(out))
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/products/{code} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.Context(), c.Params("code"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Err("producto no encontrado"))
	}
	return c.JSON(dto.OKMessage(out, "producto actualizado"))
}

// Delete godoc
// @Summary      Eliminar producto (soft delete)
// @Tags         products
// @Produce      json
// @Param        code  path  string  true  "Código del producto"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/products/{code} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("code")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.Response{Success: true, Message: "producto eliminado"})
}

// LowStock godoc
// @Summary      Productos en o por debajo del mínimo
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/low-stock [get]
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKList(out, len(out)))
}

// NextCode godoc
// @Summary      Siguiente código numérico libre
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/next-product-code [get]
func (h *ProductHandler) NextCode(c *fiber.Ctx) error {
	next, err := h.uc.NextCode(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(dto.NextCodeResponse{NextCode: next}))
}
