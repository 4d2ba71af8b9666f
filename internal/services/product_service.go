package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"storefront/internal/models"
	"storefront/internal/pagination"
	"storefront/internal/repositories"
)

// Product lifecycle routing keys.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher delivers an encoded event under a routing key.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// ProductEvent is the message published after a product mutation.
type ProductEvent struct {
	Event      string         `json:"event"`
	Product    models.Product `json:"product"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	now       func() time.Time
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are sent.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// ListProducts returns one page of products and the page metadata.
//
// The count and the page are two independent reads. A write landing between
// them can make totalItems disagree with the rows returned; that is accepted.
func (s *ProductService) ListProducts(ctx context.Context, query models.ProductQuery) (*models.ProductPage, error) {
	total, err := s.repo.Count(ctx, query.Filter)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.List(ctx, query.Filter, pagination.NewWindow(query.Page, query.Limit))
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return &models.ProductPage{
		Data:       products,
		TotalItems: total,
		PageInfo:   pagination.Info(query.Page, query.Limit, total),
	}, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct creates a new product and returns the stored row.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.publish(EventProductCreated, *product)
	return product, nil
}

// UpdateProduct applies a partial update and returns the new row.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, update models.ProductUpdate) (*models.Product, error) {
	product, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if len(update.Columns()) > 0 {
		s.publish(EventProductUpdated, *product)
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID and returns the removed row.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(EventProductDeleted, *product)
	return product, nil
}

// publish never fails the caller; delivery problems are only logged.
func (s *ProductService) publish(event string, product models.Product) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(ProductEvent{Event: event, Product: product, OccurredAt: s.now().UTC()})
	if err != nil {
		log.Printf("Error encoding %s event for product %d: %v", event, product.ID, err)
		return
	}
	if err := s.publisher.Publish(event, body); err != nil {
		log.Printf("Error publishing %s event for product %d: %v", event, product.ID, err)
	}
}
