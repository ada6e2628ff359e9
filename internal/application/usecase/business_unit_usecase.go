package usecase

import (
	"context"

	"github.com/jhoicas/Invorya-access-api/internal/application/dto"
	"github.com/jhoicas/Invorya-access-api/internal/domain/entity"
	"github.com/jhoicas/Invorya-access-api/internal/domain/repository"
)

// BusinessUnitUseCase consulta de unidades de negocio (sedes/tiendas).
type BusinessUnitUseCase struct {
	repo repository.BusinessUnitRepository
}

// NewBusinessUnitUseCase construye el caso de uso.
func NewBusinessUnitUseCase(repo repository.BusinessUnitRepository) *BusinessUnitUseCase {
	return &BusinessUnitUseCase{repo: repo}
}

// List lista las unidades de negocio de la empresa con su segmento de ruta resuelto.
func (uc *BusinessUnitUseCase) List(ctx context.Context, companyID string) (*dto.BusinessUnitListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BusinessUnitResponse, 0, len(list))
	for _, bu := range list {
		items = append(items, toBusinessUnitResponse(bu))
	}
	return &dto.BusinessUnitListResponse{Items: items}, nil
}

func toBusinessUnitResponse(bu *entity.BusinessUnit) dto.BusinessUnitResponse {
	return dto.BusinessUnitResponse{
		ID:        bu.ID,
		CompanyID: bu.CompanyID,
		Name:      bu.Name,
		Slug:      RouteSlug(bu),
		Status:    bu.Status,
		CreatedAt: bu.CreatedAt,
		UpdatedAt: bu.UpdatedAt,
	}
}
