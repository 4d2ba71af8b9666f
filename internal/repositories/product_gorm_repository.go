package repositories

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const createBatchSize = 50

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// filtered applies the listing predicate. The page query and the count query
// both go through it so they always agree on which rows match.
func filtered(filter models.ProductFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.IsActive != nil {
			db = db.Where("is_active = ?", *filter.IsActive)
		}
		return db
	}
}

// List returns the products matching filter inside window, newest first.
func (r *GORMProductRepository) List(ctx context.Context, filter models.ProductFilter, window pagination.Window) ([]models.Product, error) {
	products := make([]models.Product, 0, window.Limit)
	err := r.db.WithContext(ctx).
		Scopes(filtered(filter)).
		Order("id DESC").
		Offset(window.Offset).
		Limit(window.Limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Count returns the number of products matching filter.
func (r *GORMProductRepository) Count(ctx context.Context, filter models.ProductFilter) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Scopes(filtered(filter)).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts product; the database assigns its ID.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.ID = 0
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// CreateMany inserts products in batches.
func (r *GORMProductRepository) CreateMany(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(products, createBatchSize).Error; err != nil {
		return fmt.Errorf("failed to create products: %w", err)
	}
	return nil
}

// Update writes the fields set in update and returns the resulting row.
// An update with no fields returns the current row.
func (r *GORMProductRepository) Update(ctx context.Context, id int64, update models.ProductUpdate) (*models.Product, error) {
	columns := update.Columns()
	if len(columns) == 0 {
		return r.GetByID(ctx, id)
	}

	var product models.Product
	res := r.db.WithContext(ctx).
		Model(&product).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(columns)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Delete removes a product by its ID and returns the deleted row.
func (r *GORMProductRepository) Delete(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&product)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}
	return &product, nil
}
