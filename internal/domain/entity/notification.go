package entity

import "time"

// Tipos de notificación.
const (
	NotificationKindStockAlert = "stock_alert"
	NotificationKindInfo       = "info"
)

// Notification es un aviso dirigido a un usuario. Solo Read cambia después de creada.
type Notification struct {
	ID           string
	TargetUserID string
	Message      string
	Kind         string
	Link         string
	Read         bool
	CreatedAt    time.Time
}

// IsValidNotificationKind indica si k es un tipo de notificación soportado.
func IsValidNotificationKind(k string) bool {
	return k == NotificationKindStockAlert || k == NotificationKindInfo
}
