package entity

import "time"

// Acciones registradas en la bitácora de actividad.
const (
	ActionRegistrarMovimiento = "REGISTRAR_MOVIMIENTO"
	ActionLoginExitoso        = "LOGIN_EXITOSO"
	ActionCrearProducto       = "CREO_PRODUCTO"
	ActionActualizarProducto  = "ACTUALIZO_PRODUCTO"
	ActionEliminarProducto    = "ELIMINO_PRODUCTO"
	ActionCambiarRol          = "CAMBIO_ROL_USUARIO"
	ActionCambiarEstado       = "CAMBIO_ESTADO_USUARIO"
	ActionCrearCategoria      = "CREO_CATEGORIA"
	ActionRenombrarCategoria  = "RENOMBRO_CATEGORIA"
	ActionEliminarCategoria   = "ELIMINO_CATEGORIA"
)

// ActivityLog es una entrada de auditoría. Es observacional: su escritura nunca bloquea una operación.
type ActivityLog struct {
	ID        string
	Actor     string // email o nombre de quien realizó la acción
	Action    string
	Details   string
	Timestamp time.Time
}
