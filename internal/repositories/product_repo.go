package repositories

import (
	"context"
	"errors"

	"storefront/internal/models"
	"storefront/internal/pagination"
)

// ErrProductNotFound is returned when no product row matches an id.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, filter models.ProductFilter, window pagination.Window) ([]models.Product, error)
	Count(ctx context.Context, filter models.ProductFilter) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	CreateMany(ctx context.Context, products []models.Product) error
	Update(ctx context.Context, id int64, update models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id int64) (*models.Product, error)
}
