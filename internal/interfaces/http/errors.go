package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/lm-inventario/internal/application/dto"
	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/pkg/validator"
)

const msgInternal = "Error interno del servidor"

// apiError es la traducción de un error de dominio a respuesta HTTP.
type apiError struct {
	status  int
	code    string
	message string
}

// mapError traduce errores de dominio a status, código estable y mensaje para el cliente.
// Los errores desconocidos son INTERNAL y nunca exponen el detalle.
func mapError(err error) apiError {
	var insufficient *domain.InsufficientStockError
	var ve *validator.ValidationError
	switch {
	case errors.As(err, &insufficient):
		return apiError{fiber.StatusBadRequest, dto.CodeInsufficientStock, insufficient.Error()}
	case errors.As(err, &ve):
		return apiError{fiber.StatusBadRequest, dto.CodeValidation, ve.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return apiError{fiber.StatusBadRequest, dto.CodeValidation, detail(err, domain.ErrInvalidInput)}
	case errors.Is(err, domain.ErrUserNotFound):
		return apiError{fiber.StatusNotFound, dto.CodeNotFound, "Usuario no encontrado."}
	case errors.Is(err, domain.ErrNotFound):
		return apiError{fiber.StatusNotFound, dto.CodeNotFound, detail(err, domain.ErrNotFound)}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return apiError{fiber.StatusConflict, dto.CodeDuplicate, "El email ya está registrado."}
	case errors.Is(err, domain.ErrDuplicate):
		return apiError{fiber.StatusConflict, dto.CodeDuplicate, "Ya existe un registro con esos datos."}
	case errors.Is(err, domain.ErrConflict):
		return apiError{fiber.StatusConflict, dto.CodeConflict, "El recurso fue modificado concurrentemente. Intente de nuevo."}
	case errors.Is(err, domain.ErrUnauthorized):
		return apiError{fiber.StatusUnauthorized, dto.CodeUnauthorized, "Credenciales inválidas."}
	case errors.Is(err, domain.ErrForbidden):
		return apiError{fiber.StatusForbidden, dto.CodeForbidden, "Acceso denegado."}
	default:
		return apiError{fiber.StatusInternalServerError, dto.CodeInternal, msgInternal}
	}
}

// mapLedgerError aplica el contrato de POST /api/movements: todo rechazo del libro
// (validación, producto inexistente, stock insuficiente) es 400; conflicto agotado e interno son 500.
func mapLedgerError(err error) apiError {
	e := mapError(err)
	switch e.code {
	case dto.CodeNotFound:
		e.status = fiber.StatusBadRequest
	case dto.CodeConflict:
		e.status = fiber.StatusInternalServerError
	}
	return e
}

// detail quita el prefijo del sentinel ("entrada inválida: ...") para mostrar solo el motivo.
func detail(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return rest
	}
	return msg
}

func respondError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Code: code, Message: message})
}

// writeError responde el error mapeado y registra los 5xx con el detalle original.
func writeError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	return write(c, logger, err, mapError(err))
}

func write(c *fiber.Ctx, logger zerolog.Logger, err error, e apiError) error {
	if e.status >= fiber.StatusInternalServerError {
		logger.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error en petición")
	}
	return respondError(c, e.status, e.code, e.message)
}

// ErrorHandler para fiber.Config: errores no manejados por los handlers (404 de ruta, panics recuperados).
func ErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := dto.CodeInternal
			msg := fe.Message
			switch fe.Code {
			case fiber.StatusNotFound:
				code, msg = dto.CodeNotFound, "Ruta no encontrada"
			case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
				code = dto.CodeValidation
			case fiber.StatusMethodNotAllowed:
				code = dto.CodeNotFound
			}
			return respondError(c, fe.Code, code, msg)
		}
		return writeError(c, logger, err)
	}
}

// parseBody decodifica el JSON del cuerpo; un cuerpo ilegible es VALIDATION.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.InvalidInput("cuerpo inválido")
	}
	return nil
}

// bindAndValidate decodifica y valida con las etiquetas del DTO.
func bindAndValidate(c *fiber.Ctx, dst any) error {
	if err := parseBody(c, dst); err != nil {
		return err
	}
	return validator.Struct(dst)
}
