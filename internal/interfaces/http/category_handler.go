package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/lm-inventario/internal/application/dto"
	"github.com/jhoicas/lm-inventario/internal/application/usecase"
	"github.com/jhoicas/lm-inventario/internal/domain"
)

// CategoryHandler categorías del catálogo. El parámetro :name es el nombre codificado para URL.
type CategoryHandler struct {
	uc     *usecase.CategoryUseCase
	logger zerolog.Logger
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, logger: logger}
}

// List godoc
// @Summary      Listar categorías
// @Description  Registradas y usadas por productos, con cantidad, stock total y valor.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse{data=[]dto.CategoryResponse}
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Data: list})
}

// Get godoc
// @Summary      Obtener categoría con sus productos
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "Nombre de la categoría"
// @Success      200  {object}  dto.SuccessResponse{data=dto.CategoryDetailResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{name} [get]
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	name, err := categoryParam(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	out, err := h.uc.Get(c.UserContext(), name)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Data: out})
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Categoría"
// @Success      201  {object}  dto.SuccessResponse{data=dto.CategoryResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := bindAndValidate(c, &in); err != nil {
		return writeError(c, h.logger, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{
		Success: true, Message: "Categoría creada exitosamente", Data: out,
	})
}

// Rename godoc
// @Summary      Renombrar categoría
// @Description  El nombre nuevo se aplica también a todos los productos de la categoría.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Nombre actual"
// @Param        body  body  dto.RenameCategoryRequest  true  "Nombre nuevo"
// @Success      200  {object}  dto.SuccessResponse{data=dto.RenameCategoryResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{name} [put]
func (h *CategoryHandler) Rename(c *fiber.Ctx) error {
	name, err := categoryParam(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	var in dto.RenameCategoryRequest
	if err := bindAndValidate(c, &in); err != nil {
		return writeError(c, h.logger, err)
	}
	out, err := h.uc.Rename(c.UserContext(), GetActor(c), name, in)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "Categoría actualizada exitosamente", Data: out})
}

// Delete godoc
// @Summary      Eliminar categoría
// @Description  Solo si ningún producto la usa.
// @Tags         categories
// @Security     Bearer
// @Param        name  path  string  true  "Nombre de la categoría"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{name} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	name, err := categoryParam(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetActor(c), name); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ProductsCount godoc
// @Summary      Cantidad de productos de una categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "Nombre de la categoría"
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/categories/{name}/products-count [get]
func (h *CategoryHandler) ProductsCount(c *fiber.Ctx) error {
	name, err := categoryParam(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	n, err := h.uc.ProductsCount(c.UserContext(), name)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Data: fiber.Map{"count": n}})
}

func categoryParam(c *fiber.Ctx) (string, error) {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || name == "" {
		return "", domain.InvalidInput("nombre de categoría inválido")
	}
	return name, nil
}
