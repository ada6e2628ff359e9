package repository

import (
	"context"

	"github.com/jhoicas/Invorya-access-api/internal/domain/entity"
)

// BusinessUnitRepository define el puerto de persistencia para BusinessUnit (DIP).
type BusinessUnitRepository interface {
	GetByID(ctx context.Context, id string) (*entity.BusinessUnit, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.BusinessUnit, error)
}
