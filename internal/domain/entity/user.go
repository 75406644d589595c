package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, operador
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si r es un rol soportado.
func IsValidRole(r string) bool {
	return r == RoleAdmin || r == RoleOperador
}

// Actor es la identidad ya verificada de quien ejecuta una acción.
// El núcleo de inventario la usa tal cual, sin volver a validarla.
type Actor struct {
	ID          string
	DisplayName string // nombre o, en su defecto, email
	Email       string
	Role        string
}

// LogName es el identificador con que el actor aparece en la bitácora: email o, sin él, el nombre.
func (a Actor) LogName() string {
	if a.Email != "" {
		return a.Email
	}
	return a.DisplayName
}
