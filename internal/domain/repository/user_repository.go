package repository

import (
	"context"

	"github.com/jhoicas/Invorya-access-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// GetByID devuelve nil, nil si el usuario no existe.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
}
