package repository

import (
	"context"

	"github.com/dvalencia/bookstore-api/internal/domain/entity"
)

// SellerRepository puerto de lectura de vendedores (la identidad viene del token;
// aquí solo se resuelven display name y datos de la tienda).
type SellerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Seller, error)
}
