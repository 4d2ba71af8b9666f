package handlers

import (
	"errors"

	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service   *services.ProductService
	validator *validation.Validator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validator *validation.Validator) *ProductHandler {
	return &ProductHandler{
		service:   service,
		validator: validator,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/product")
	productRoutes.Get("/all", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/create", h.HandleCreateProduct)
	productRoutes.Put("/update/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/delete/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns one page of products.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	var raw validation.ListProductsQuery
	if err := c.QueryParser(&raw); err != nil {
		return invalidBody(c, err)
	}
	query, err := h.validator.ProductQuery(raw)
	if err != nil {
		return validationFailed(c, err)
	}

	page, err := h.service.ListProducts(c.UserContext(), query)
	if err != nil {
		return internalError(c, "list products", err)
	}
	return c.JSON(page)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return invalidID(c)
	}
	if !ok {
		return productNotFound(c)
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return productNotFound(c)
		}
		return internalError(c, "get product", err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req validation.CreateProductRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c, err)
	}
	product, err := h.validator.CreateProduct(req)
	if err != nil {
		return validationFailed(c, err)
	}

	created, err := h.service.CreateProduct(c.UserContext(), product)
	if err != nil {
		return internalError(c, "create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    created,
	})
}

// HandleUpdateProduct changes the fields present in the body.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return invalidID(c)
	}

	var req validation.UpdateProductRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c, err)
	}
	update, err := h.validator.UpdateProduct(req)
	if err != nil {
		return validationFailed(c, err)
	}
	if !ok {
		return productNotFound(c)
	}

	updated, err := h.service.UpdateProduct(c.UserContext(), id, update)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return productNotFound(c)
		}
		return internalError(c, "update product", err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    updated,
	})
}

// HandleDeleteProduct deletes a product and echoes the removed row.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return invalidID(c)
	}
	if !ok {
		return productNotFound(c)
	}

	deleted, err := h.service.DeleteProduct(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return productNotFound(c)
		}
		return internalError(c, "delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
		"data":    deleted,
	})
}
