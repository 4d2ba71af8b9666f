// Package validation checks raw request input against the product and auth
// schemas and converts it into typed, defaulted values. Nothing reaches a
// service or the database unless it passed through here.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"storefront/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidID is returned by ParseID when a path id is not a number.
var ErrInvalidID = errors.New("invalid id")

// Issue is a single field that failed validation.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lists every violation found in one request.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	messages := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		messages = append(messages, issue.Message)
	}
	return strings.Join(messages, "; ")
}

// Validator wraps a configured go-playground validator.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their JSON names and knows
// the decimalstr tag (a string holding a number).
func New() *Validator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		}
		return name
	})
	if err := validate.RegisterValidation("decimalstr", isDecimalString); err != nil {
		panic(fmt.Sprintf("register decimalstr validation: %v", err))
	}
	return &Validator{validate: validate}
}

// Struct validates s and returns an *Error describing every failed field.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	issues := make([]Issue, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		issues = append(issues, Issue{Field: fe.Field(), Message: describe(fe)})
	}
	return &Error{Issues: issues}
}

// CreateProduct validates a create body and builds the product to insert.
// isActive defaults to true.
func (v *Validator) CreateProduct(req CreateProductRequest) (*models.Product, error) {
	if err := v.Struct(req); err != nil {
		return nil, err
	}
	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		IsActive:    isActive,
	}, nil
}

// UpdateProduct validates a partial update body. Absent fields stay nil.
func (v *Validator) UpdateProduct(req UpdateProductRequest) (models.ProductUpdate, error) {
	if err := v.Struct(req); err != nil {
		return models.ProductUpdate{}, err
	}
	update := models.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return models.ProductUpdate{}, err
		}
		update.Price = &price
	}
	return update, nil
}

// ProductQuery validates listing parameters. Missing or empty page and limit
// fall back to DefaultPage and DefaultLimit; isActive is a filter only when it
// is exactly "true" or "false".
func (v *Validator) ProductQuery(q ListProductsQuery) (models.ProductQuery, error) {
	if strings.TrimSpace(q.Page) == "" {
		q.Page = DefaultPage
	}
	if strings.TrimSpace(q.Limit) == "" {
		q.Limit = DefaultLimit
	}
	if err := v.Struct(q); err != nil {
		return models.ProductQuery{}, err
	}
	page, err := parseNumber(q.Page)
	if err != nil {
		return models.ProductQuery{}, notANumber("page")
	}
	limit, err := parseNumber(q.Limit)
	if err != nil {
		return models.ProductQuery{}, notANumber("limit")
	}
	return models.ProductQuery{
		Page:   boundedInt(page),
		Limit:  boundedInt(limit),
		Filter: models.ProductFilter{IsActive: activeFlag(q.IsActive)},
	}, nil
}

// ParseID parses a path id. A non-numeric id yields ErrInvalidID. A numeric id
// that no row can carry (fractional, out of range) reports ok == false.
func ParseID(raw string) (id int64, ok bool, err error) {
	d, err := parseNumber(raw)
	if err != nil {
		return 0, false, ErrInvalidID
	}
	if !d.IsInteger() || d.LessThan(minID) || d.GreaterThan(maxID) {
		return 0, false, nil
	}
	return d.IntPart(), true, nil
}

var (
	minID    = decimal.NewFromInt(math.MinInt64)
	maxID    = decimal.NewFromInt(math.MaxInt64)
	minInt32 = decimal.NewFromInt(math.MinInt32)
	maxInt32 = decimal.NewFromInt(math.MaxInt32)
)

func parseNumber(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// parsePrice converts a price string to the stored float. Magnitudes that
// overflow float64 are rejected; the row could never be encoded as JSON.
func parsePrice(raw string) (float64, error) {
	d, err := parseNumber(raw)
	if err != nil {
		return 0, notANumber("price")
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, notANumber("price")
	}
	return f, nil
}

func isDecimalString(fl validator.FieldLevel) bool {
	_, err := parseNumber(fl.Field().String())
	return err == nil
}

// boundedInt truncates toward zero and clamps to the 32-bit range.
func boundedInt(d decimal.Decimal) int {
	d = d.Truncate(0)
	switch {
	case d.LessThan(minInt32):
		d = minInt32
	case d.GreaterThan(maxInt32):
		d = maxInt32
	}
	return int(d.IntPart())
}

func activeFlag(raw string) *bool {
	var flag bool
	switch raw {
	case "true":
		flag = true
	case "false":
		flag = false
	default:
		return nil
	}
	return &flag
}

func notANumber(field string) *Error {
	return &Error{Issues: []Issue{{Field: field, Message: displayName(field) + " must be a number"}}}
}

func describe(fe validator.FieldError) string {
	name := displayName(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "min":
		return fmt.Sprintf("%s must contain at least %s character(s)", name, fe.Param())
	case "email":
		return name + " must be a valid email"
	case "decimalstr":
		return name + " must be a number"
	}
	return fmt.Sprintf("%s failed on the '%s' rule", name, fe.Tag())
}

func displayName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
