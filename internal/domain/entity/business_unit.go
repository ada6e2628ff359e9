package entity

import "time"

// BusinessUnit es una sede o tienda de la empresa. Su Slug forma el segmento
// de ruta de los menús del panel (/{slug}/catalog/products).
type BusinessUnit struct {
	ID        string
	CompanyID string
	Name      string
	Slug      string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
