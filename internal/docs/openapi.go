// Package docs derives the OpenAPI 3 document of the HTTP API from the same
// request types the validator checks.
package docs

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"storefront/internal/models"
	"storefront/internal/validation"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// Tags group the operations in the rendered reference.
const (
	TagAuthentication = "Authentication"
	TagProducts       = "Products"
)

// Version is the API version advertised in the document.
const Version = "1.0.0"

type errorResponse struct {
	Error string `json:"error"`
}

type validationErrorResponse struct {
	Success bool               `json:"success"`
	Error   string             `json:"error"`
	Issues  []validation.Issue `json:"issues"`
}

type productResponse struct {
	Success bool           `json:"success"`
	Data    models.Product `json:"data"`
}

type deleteResponse struct {
	Message string         `json:"message"`
	Data    models.Product `json:"data"`
}

var components = []struct {
	name  string
	value interface{}
}{
	{"LoginRequest", validation.LoginRequest{}},
	{"RegisterRequest", validation.RegisterRequest{}},
	{"AuthResult", models.AuthResult{}},
	{"CreateProductRequest", validation.CreateProductRequest{}},
	{"UpdateProductRequest", validation.UpdateProductRequest{}},
	{"Product", models.Product{}},
	{"ProductPage", models.ProductPage{}},
	{"ProductResponse", productResponse{}},
	{"DeleteProductResponse", deleteResponse{}},
	{"Error", errorResponse{}},
	{"ValidationError", validationErrorResponse{}},
}

// Build assembles the document. serverURL is advertised as the only server;
// every path is relative to the /api/v1 base.
func Build(serverURL string) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Storefront API",
			Description: "Authentication and product catalogue.",
			Version:     Version,
		},
		Servers: openapi3.Servers{{URL: strings.TrimRight(serverURL, "/") + "/api/v1"}},
		Tags: openapi3.Tags{
			{Name: TagAuthentication, Description: "Password sign-in and sign-up"},
			{Name: TagProducts, Description: "Product CRUD and listing"},
		},
		Components: &openapi3.Components{Schemas: openapi3.Schemas{}},
		Paths:      openapi3.NewPaths(),
	}

	generator := openapi3gen.NewGenerator(openapi3gen.SchemaCustomizer(fromValidateTags))
	for _, c := range components {
		ref, err := generator.NewSchemaRefForValue(c.value, doc.Components.Schemas)
		if err != nil {
			return nil, fmt.Errorf("generate %s schema: %w", c.name, err)
		}
		doc.Components.Schemas[c.name] = &openapi3.SchemaRef{Value: ref.Value}
	}

	b := builder{doc: doc}
	b.addAuthOperations()
	b.addProductOperations()
	return doc, nil
}

// JSON builds the document and encodes it.
func JSON(serverURL string) ([]byte, error) {
	doc, err := Build(serverURL)
	if err != nil {
		return nil, err
	}
	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}
	return data, nil
}

// fromValidateTags copies validator rules into the schema.
func fromValidateTags(_ string, t reflect.Type, tag reflect.StructTag, schema *openapi3.Schema) error {
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if hasRule(field.Tag.Get("validate"), "required") {
				schema.Required = append(schema.Required, jsonName(field))
			}
		}
		return nil
	}

	for _, rule := range strings.Split(tag.Get("validate"), ",") {
		name, param, _ := strings.Cut(rule, "=")
		switch name {
		case "min":
			if t.Kind() != reflect.String {
				continue
			}
			n, err := strconv.ParseUint(param, 10, 64)
			if err != nil {
				return fmt.Errorf("min rule %q: %w", rule, err)
			}
			schema.MinLength = n
		case "email":
			schema.Format = "email"
		case "decimalstr":
			schema.Description = "Numeric string, e.g. \"19.99\""
		}
	}
	return nil
}

func hasRule(validate, rule string) bool {
	for _, r := range strings.Split(validate, ",") {
		if r == rule {
			return true
		}
	}
	return false
}

func jsonName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "" {
		return field.Name
	}
	return name
}

// builder resolves component references against the document so the
// result validates without a loader pass.
type builder struct {
	doc *openapi3.T
}

func (b builder) schemaRef(name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, b.doc.Components.Schemas[name].Value)
}

func (b builder) jsonResponse(description, schema string) *openapi3.Response {
	return openapi3.NewResponse().WithDescription(description).WithJSONSchemaRef(b.schemaRef(schema))
}

func (b builder) jsonBody(schema string) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(b.schemaRef(schema))}
}

func operation(id, summary, tag string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = id
	op.Summary = summary
	op.Tags = []string{tag}
	return op
}

func idParameter() *openapi3.Parameter {
	return openapi3.NewPathParameter("id").
		WithDescription("Product id").
		WithSchema(openapi3.NewStringSchema())
}
func (b builder) addAuthOperations() {
	login := operation("login", "Sign in with email and password", TagAuthentication)
	login.RequestBody = b.jsonBody("LoginRequest")
	login.AddResponse(http.StatusOK, b.jsonResponse("Signed in", "AuthResult"))
	login.AddResponse(http.StatusBadRequest, b.jsonResponse("Invalid request", "ValidationError"))
	login.AddResponse(http.StatusNotFound, b.jsonResponse("Rejected by the auth provider", "Error"))
	login.AddResponse(http.StatusInternalServerError, b.jsonResponse("Internal server error", "Error"))
	b.doc.AddOperation("/auth/login", http.MethodPost, login)

	register := operation("register", "Create an account", TagAuthentication)
	register.RequestBody = b.jsonBody("RegisterRequest")
	register.AddResponse(http.StatusOK, b.jsonResponse("Registered; session is null until the address is confirmed", "AuthResult"))
	register.AddResponse(http.StatusBadRequest, b.jsonResponse("Invalid request", "ValidationError"))
	register.AddResponse(http.StatusNotFound, b.jsonResponse("Rejected by the auth provider", "Error"))
	register.AddResponse(http.StatusInternalServerError, b.jsonResponse("Internal server error", "Error"))
	b.doc.AddOperation("/auth/register", http.MethodPost, register)
}

func (b builder) addProductOperations() {
	list := operation("listProducts", "List products newest first", TagProducts)
	list.AddParameter(openapi3.NewQueryParameter("page").
		WithDescription("1-based page number").
		WithSchema(openapi3.NewStringSchema().WithDefault(validation.DefaultPage)))
	list.AddParameter(openapi3.NewQueryParameter("limit").
		WithDescription("Page size").
		WithSchema(openapi3.NewStringSchema().WithDefault(validation.DefaultLimit)))
	list.AddParameter(openapi3.NewQueryParameter("isActive").
		WithDescription("Only \"true\" or \"false\" filter; any other value lists every product").
		WithSchema(openapi3.NewStringSchema().WithEnum("true", "false")))
	list.AddResponse(http.StatusOK, b.jsonResponse("One page of products", "ProductPage"))
	list.AddResponse(http.StatusBadRequest, b.jsonResponse("Invalid query", "ValidationError"))
	b.doc.AddOperation("/product/all", http.MethodGet, list)

	get := operation("getProduct", "Get a product", TagProducts)
	get.AddParameter(idParameter())
	get.AddResponse(http.StatusOK, b.jsonResponse("The product", "Product"))
	get.AddResponse(http.StatusBadRequest, b.jsonResponse("Invalid ID", "Error"))
	get.AddResponse(http.StatusNotFound, b.jsonResponse("Product not found", "Error"))
	b.doc.AddOperation("/product/{id}", http.MethodGet, get)

	create := operation("createProduct", "Create a product", TagProducts)
	create.RequestBody = b.jsonBody("CreateProductRequest")
	create.AddResponse(http.StatusCreated, b.jsonResponse("Created", "ProductResponse"))
	create.AddResponse(http.StatusBadRequest, b.jsonResponse("Invalid request", "ValidationError"))
	b.doc.AddOperation("/product/create", http.MethodPost, create)

	update := operation("updateProduct", "Update some fields of a product", TagProducts)
	update.AddParameter(idParameter())
	update.RequestBody = b.jsonBody("UpdateProductRequest")
	update.AddResponse(http.StatusOK, b.jsonResponse("Updated", "ProductResponse"))
	update.AddResponse(http.StatusBadRequest, b.jsonResponse("Invalid ID or request", "ValidationError"))
	update.AddResponse(http.StatusNotFound, b.jsonResponse("Product not found", "Error"))
	b.doc.AddOperation("/product/update/{id}", http.MethodPut, update)

	remove := operation("deleteProduct", "Delete a product", TagProducts)
	remove.AddParameter(idParameter())
	remove.AddResponse(http.StatusOK, b.jsonResponse("Deleted", "DeleteProductResponse"))
	remove.AddResponse(http.StatusBadRequest, b.jsonResponse("Invalid ID", "Error"))
	remove.AddResponse(http.StatusNotFound, b.jsonResponse("Product not found", "Error"))
	b.doc.AddOperation("/product/delete/{id}", http.MethodDelete, remove)
}
