package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Invorya-access-api/internal/domain/permission"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx: los repositorios aceptan
// cualquiera de los dos para poder usarse dentro de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// decodeGrants interpreta una columna JSONB de permisos. NULL queda en nil.
func decodeGrants(raw []byte) (permission.Grants, error) {
	if raw == nil {
		return nil, nil
	}
	var g permission.Grants
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("decode grants: %w", err)
	}
	return g, nil
}
