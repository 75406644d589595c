package entity

import "time"

// Category categoría del catálogo. El nombre es su identificador y es lo que guarda Product.Category.
type Category struct {
	Name        string
	Description string
	CreatedAt   time.Time
}
