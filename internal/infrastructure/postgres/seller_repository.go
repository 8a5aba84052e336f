package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/dvalencia/bookstore-api/internal/domain/entity"
	"github.com/dvalencia/bookstore-api/internal/domain/repository"
)

var _ repository.SellerRepository = (*SellerRepo)(nil)

// SellerRepo lectura de vendedores sobre PostgreSQL.
type SellerRepo struct {
	pool *pgxpool.Pool
}

// NewSellerRepository construye el adaptador de vendedores.
func NewSellerRepository(pool *pgxpool.Pool) *SellerRepo {
	return &SellerRepo{pool: pool}
}

// GetByID obtiene un vendedor por ID. Devuelve (nil, nil) si no existe.
func (r *SellerRepo) GetByID(ctx context.Context, id string) (*entity.Seller, error) {
	const query = `
		SELECT id, email, display_name, store_name, created_at
		FROM sellers WHERE id = $1`
	var s entity.Seller
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Email, &s.DisplayName, &s.StoreName, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seller: %w", err)
	}
	return &s, nil
}
