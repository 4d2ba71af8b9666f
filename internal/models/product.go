package models

import "storefront/internal/pagination"

// Product represents a product in the store.
type Product struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"type:varchar(255);not null"`
	Description *string `json:"description" gorm:"type:text"`
	Price       float64 `json:"price" gorm:"not null"`
	IsActive    bool    `json:"isActive" gorm:"not null"`
}

// TableName returns the table name for Product.
func (Product) TableName() string {
	return "products"
}

// ProductFilter is the predicate shared by the page query and the count query.
// A nil IsActive matches every row.
type ProductFilter struct {
	IsActive *bool
}

// ProductQuery is a validated listing request.
type ProductQuery struct {
	Page   int
	Limit  int
	Filter ProductFilter
}

// ProductUpdate holds the fields of a partial update. Nil fields are left untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	IsActive    *bool
}

// Columns returns the column assignments for the fields that are set.
func (u ProductUpdate) Columns() map[string]interface{} {
	columns := make(map[string]interface{})
	if u.Name != nil {
		columns["name"] = *u.Name
	}
	if u.Description != nil {
		columns["description"] = *u.Description
	}
	if u.Price != nil {
		columns["price"] = *u.Price
	}
	if u.IsActive != nil {
		columns["is_active"] = *u.IsActive
	}
	return columns
}

// ProductPage is one page of the product listing.
type ProductPage struct {
	Data       []Product           `json:"data"`
	TotalItems int64               `json:"totalItems"`
	PageInfo   pagination.PageInfo `json:"pageInfo"`
}
