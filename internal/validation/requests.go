package validation

// Default listing parameters applied when the query omits them.
const (
	DefaultPage  = "1"
	DefaultLimit = "10"
)

// CreateProductRequest is the body of POST /product/create.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=1"`
	Description *string `json:"description,omitempty"`
	Price       string  `json:"price" validate:"required,decimalstr"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// UpdateProductRequest is CreateProductRequest with every field optional.
type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitnil,min=1"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty" validate:"omitnil,decimalstr"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// ListProductsQuery is the raw query string of GET /product/all.
type ListProductsQuery struct {
	Page     string `query:"page" json:"page" validate:"decimalstr"`
	Limit    string `query:"limit" json:"limit" validate:"decimalstr"`
	IsActive string `query:"isActive" json:"isActive"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"required"`
}
