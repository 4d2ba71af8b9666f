package handlers

import (
	"storefront/internal/services"
	"storefront/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validator   *validation.Validator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// HandleRegister creates an account with the auth provider.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req validation.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	result, err := h.authService.Register(c.UserContext(), req.Email, req.Password, req.Phone)
	if err != nil {
		return authFailed(c, "register", err)
	}
	return c.JSON(result)
}

// HandleLogin signs a user in and returns the session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req validation.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	result, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return authFailed(c, "login", err)
	}
	return c.JSON(result)
}

// authFailed reports provider rejections as 404 with the provider's message.
func authFailed(c *fiber.Ctx, operation string, err error) error {
	if providerErr, ok := services.IsProviderError(err); ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": providerErr.Message,
		})
	}
	return internalError(c, operation, err)
}
