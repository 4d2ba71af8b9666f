package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const referencePage = `<!doctype html>
<html>
  <head>
    <title>Storefront API Reference</title>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>
  <body>
    <script id="api-reference" data-url="%s"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
  </body>
</html>
`

// DocsHandler serves the OpenAPI document and a reference page rendering it.
type DocsHandler struct {
	document []byte
}

// NewDocsHandler creates a DocsHandler for an encoded OpenAPI document.
func NewDocsHandler(document []byte) *DocsHandler {
	return &DocsHandler{document: document}
}

// RegisterRoutes registers the documentation routes with the Fiber app.
func (h *DocsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/openapi", h.HandleOpenAPI)
	router.Get("/docs", h.HandleReference)
}

// HandleOpenAPI returns the OpenAPI document.
func (h *DocsHandler) HandleOpenAPI(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(h.document)
}

// HandleReference returns the HTML reference page.
func (h *DocsHandler) HandleReference(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(fmt.Sprintf(referencePage, "openapi"))
}
