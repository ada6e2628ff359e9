package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Invorya-access-api/internal/domain/entity"
	"github.com/jhoicas/Invorya-access-api/internal/domain/repository"
)

var _ repository.BusinessUnitRepository = (*BusinessUnitRepo)(nil)

// BusinessUnitRepo implementación del puerto BusinessUnitRepository sobre PostgreSQL.
type BusinessUnitRepo struct {
	pool *pgxpool.Pool
}

// NewBusinessUnitRepository construye el adaptador de persistencia para unidades de negocio.
func NewBusinessUnitRepository(pool *pgxpool.Pool) *BusinessUnitRepo {
	return &BusinessUnitRepo{pool: pool}
}

// GetByID obtiene una unidad de negocio por ID.
func (r *BusinessUnitRepo) GetByID(ctx context.Context, id string) (*entity.BusinessUnit, error) {
	const q = `
		SELECT id, company_id, name, COALESCE(slug, ''), status, created_at, updated_at
		FROM business_units WHERE id = $1`
	bu, err := scanBusinessUnit(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business unit: %w", err)
	}
	return bu, nil
}

// ListByCompany lista las unidades de negocio de la empresa ordenadas por nombre.
func (r *BusinessUnitRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.BusinessUnit, error) {
	const q = `
		SELECT id, company_id, name, COALESCE(slug, ''), status, created_at, updated_at
		FROM business_units WHERE company_id = $1 ORDER BY name`
	rows, err := r.pool.Query(ctx, q, companyID)
	if err != nil {
		return nil, fmt.Errorf("list business units: %w", err)
	}
	defer rows.Close()
	var list []*entity.BusinessUnit
	for rows.Next() {
		bu, err := scanBusinessUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan business unit: %w", err)
		}
		list = append(list, bu)
	}
	return list, rows.Err()
}

func scanBusinessUnit(row pgx.Row) (*entity.BusinessUnit, error) {
	var bu entity.BusinessUnit
	err := row.Scan(&bu.ID, &bu.CompanyID, &bu.Name, &bu.Slug, &bu.Status, &bu.CreatedAt, &bu.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &bu, nil
}
