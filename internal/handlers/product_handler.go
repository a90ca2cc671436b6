package handlers

import (
	"math"
	"strconv"

	"stockflow/internal/models"
	"stockflow/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:code", h.HandleGetProduct)
	productRoutes.Put("/:code", h.HandleUpdateProduct)
	productRoutes.Delete("/:code", h.HandleDeleteProduct)
}

// HandleListProducts returns one page of products. Query parameters page,
// size, sortBy and sortDirection default to 0, 10, productCode and ASC.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	query := models.DefaultProductQuery()
	if err := c.QueryParser(&query); err != nil {
		return services.ValidationError("invalid query parameters: " + err.Error())
	}

	page, err := h.service.ListProducts(c.UserContext(), query)
	if err != nil {
		return err
	}

	c.Set("X-Total-Count", strconv.FormatInt(page.TotalElements, 10))
	return c.JSON(page)
}

// HandleGetProduct returns a single product by its code.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	code, err := productCode(c)
	if err != nil {
		return err
	}

	product, err := h.service.GetProductByCode(c.UserContext(), code)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req models.ProductCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return services.ValidationError("invalid request body: " + err.Error())
	}

	product, err := h.service.CreateProduct(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct merges the fields present in the body into an
// existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	code, err := productCode(c)
	if err != nil {
		return err
	}

	var req models.ProductUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return services.ValidationError("invalid request body: " + err.Error())
	}

	product, err := h.service.UpdateProduct(c.UserContext(), code, req)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleDeleteProduct soft-deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	code, err := productCode(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(c.UserContext(), code); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// productCode parses the code path parameter. Codes outside the 32-bit
// column range cannot exist and are reported as not found.
func productCode(c *fiber.Ctx) (int, error) {
	code, err := strconv.ParseInt(c.Params("code"), 10, 64)
	if err != nil {
		return 0, services.ValidationError("productCode: must be an integer")
	}
	if code < math.MinInt32 || code > math.MaxInt32 {
		return 0, services.NotFoundError(int(code))
	}
	return int(code), nil
}
