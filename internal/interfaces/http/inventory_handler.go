package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/lm-inventario/internal/application/dto"
	"github.com/jhoicas/lm-inventario/internal/application/inventory"
)

// Cabeceras del registro de movimientos.
const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
	HeaderStockAlert     = "X-Stock-Alert"
)

const msgMovementRecorded = "Movimiento registrado exitosamente."

// InventoryHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type InventoryHandler struct {
	record        *inventory.RecordMovementUseCase
	query         *inventory.QueryUseCase
	replenishment *inventory.ReplenishmentUseCase
	logger        zerolog.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	record *inventory.RecordMovementUseCase,
	query *inventory.QueryUseCase,
	replenishment *inventory.ReplenishmentUseCase,
	logger zerolog.Logger,
) *InventoryHandler {
	return &InventoryHandler{record: record, query: query, replenishment: replenishment, logger: logger}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Entrada o salida de stock. El autor sale del token. Con Idempotency-Key, un reintento
// @Description  devuelve el movimiento ya registrado sin volver a mover el stock.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                       false  "Clave de idempotencia del cliente"
// @Param        body             body    dto.RegisterMovementRequest  true   "productId, type (entrada|salida), quantity, reason, observations"
// @Success      201  {object}  dto.SuccessResponse{data=dto.MovementResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      429  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	actor := GetActor(c)
	if actor.ID == "" {
		return respondError(c, fiber.StatusUnauthorized, dto.CodeUnauthorized, "token inválido")
	}
	var in dto.RegisterMovementRequest
	if err := parseBody(c, &in); err != nil {
		return write(c, h.logger, err, mapLedgerError(err))
	}
	// la validación de campos la hace el caso de uso para que el rechazo quede en las métricas
	res, err := h.record.RecordMovement(c.UserContext(), inventory.RecordMovementInput{
		ProductID:      in.ProductID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		Reason:         in.Reason,
		Observations:   in.Observations,
		Actor:          actor,
		IdempotencyKey: c.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return write(c, h.logger, err, mapLedgerError(err))
	}

	status := fiber.StatusCreated
	if res.Replayed {
		status = fiber.StatusOK
		c.Set(HeaderReplayed, "true")
	}
	if res.AlertRaised {
		c.Set(HeaderStockAlert, "low-stock")
	}
	return c.Status(status).JSON(dto.SuccessResponse{
		Success: true,
		Message: msgMovementRecorded,
		Data:    toMovementResponse(res.Movement),
	})
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Description  Más recientes primero. startDate/endDate son días completos (YYYY-MM-DD) en la zona horaria del negocio.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        productId  query  string  false  "Filtrar por producto"
// @Param        type       query  string  false  "entrada | salida"
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Param        limit      query  int     false  "Límite (default 50)"
// @Param        offset     query  int     false  "Offset"
// @Success      200  {object}  dto.SuccessResponse{data=[]dto.MovementResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	list, err := h.query.ListMovements(c.UserContext(), inventory.ListMovementsInput{
		ProductID: c.Query("productId"),
		Type:      c.Query("type"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Limit:     c.QueryInt("limit", 50),
		Offset:    c.QueryInt("offset", 0),
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Data: toMovementList(list)})
}

// MovementStats godoc
// @Summary      Estadísticas de movimientos
// @Description  Total, entradas, salidas y movimientos de los últimos 7 días.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse{data=dto.MovementStatsResponse}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/reports/movement-stats [get]
func (h *InventoryHandler) MovementStats(c *fiber.Ctx) error {
	st, err := h.query.MovementStats(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Data: dto.MovementStatsResponse{
		TotalMovements:  st.Total,
		Entradas:        st.Entradas,
		Salidas:         st.Salidas,
		RecentMovements: st.Recent,
	}})
}

// GetMovement godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	m, err := h.query.GetMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(toMovementResponse(m))
}

// VerifyLedger godoc
// @Summary      Verificar el libro de un producto
// @Description  Reconstruye el saldo desde todos los movimientos y reporta diferencias con lo almacenado.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.LedgerVerificationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/verify/{productId} [get]
func (h *InventoryHandler) VerifyLedger(c *fiber.Ctx) error {
	productID := c.Params("productId")
	report, err := h.query.VerifyLedger(c.UserContext(), productID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(toVerificationResponse(productID, report))
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo su stock mínimo con la cantidad sugerida para volver al máximo,
// @Description  priorizados por salidas de los últimos 90 días.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if list == nil {
		list = []dto.ReplenishmentSuggestionDTO{}
	}
	return c.JSON(list)
}
