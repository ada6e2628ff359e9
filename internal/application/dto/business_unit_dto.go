package dto

import "time"

// BusinessUnitResponse salida de una unidad de negocio con su segmento de ruta.
type BusinessUnitResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BusinessUnitListResponse lista de unidades de negocio de la empresa.
type BusinessUnitListResponse struct {
	Items []BusinessUnitResponse `json:"items"`
}
