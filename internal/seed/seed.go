// Package seed fills an empty product table with fake products.
package seed

import (
	"context"
	"fmt"
	"log"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// DefaultCount is how many products a fresh database receives.
const DefaultCount = 100

const (
	minPrice = 1
	maxPrice = 1000
)

// Seeder inserts fake products.
type Seeder struct {
	repo  repositories.ProductRepository
	faker *gofakeit.Faker
}

// NewSeeder creates a Seeder. A zero seed picks a random one.
func NewSeeder(repo repositories.ProductRepository, seed uint64) *Seeder {
	return &Seeder{
		repo:  repo,
		faker: gofakeit.New(seed),
	}
}

// Products generates n products. Every even position is active.
func (s *Seeder) Products(n int) []models.Product {
	products := make([]models.Product, 0, n)
	for i := 0; i < n; i++ {
		description := s.faker.ProductDescription()
		price := decimal.NewFromFloat(s.faker.Price(minPrice, maxPrice)).Round(2)
		products = append(products, models.Product{
			Name:        s.faker.ProductName(),
			Description: &description,
			Price:       price.InexactFloat64(),
			IsActive:    i%2 == 0,
		})
	}
	return products
}

// Seed inserts n products when the table is empty and reports how many rows
// it wrote.
func (s *Seeder) Seed(ctx context.Context, n int) (int, error) {
	existing, err := s.repo.Count(ctx, models.ProductFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if existing > 0 {
		log.Printf("Products already seeded (%d rows). Skipping...", existing)
		return 0, nil
	}

	if err := s.repo.CreateMany(ctx, s.Products(n)); err != nil {
		return 0, fmt.Errorf("failed to seed products: %w", err)
	}
	log.Printf("Seeded %d products", n)
	return n, nil
}
