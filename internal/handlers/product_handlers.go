package handlers

import (
	"net/http"
	"strconv"

	"storefront/internal/common"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ProductHandlers handles the product catalog endpoints. Reads are open to
// any authenticated user; writes require a superuser.
type ProductHandlers struct {
	productService services.ProductService
}

func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

// CreateProductRequest represents the product creation payload.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	InStock     *bool   `json:"in_stock"`
}

// UpdateProductRequest represents a partial product update.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	InStock     *bool    `json:"in_stock"`
}

func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Name == "" {
		return common.SendValidationError(c, "name", "Product name is required")
	}
	if req.Price < 0 {
		return common.SendValidationError(c, "price", "Price cannot be negative")
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		InStock:     true,
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := h.productService.Create(ctx, product); err != nil {
		c.Logger().Errorf("Failed to create product: %v", err)
		return common.SendServerError(c, "Failed to create product")
	}

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandlers) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "Invalid product ID format")
	}

	product, err := h.productService.GetByID(ctx, productID)
	if err != nil {
		c.Logger().Errorf("Failed to get product %s: %v", productID, err)
		return common.SendServerError(c, "Failed to get product")
	}
	if product == nil {
		return common.SendNotFoundError(c, "Product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	products, err := h.productService.List(ctx, page, pageSize)
	if err != nil {
		c.Logger().Errorf("Failed to list products: %v", err)
		return common.SendServerError(c, "Failed to list products")
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "Invalid product ID format")
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	product, err := h.productService.GetByID(ctx, productID)
	if err != nil {
		c.Logger().Errorf("Failed to get product %s: %v", productID, err)
		return common.SendServerError(c, "Failed to update product")
	}
	if product == nil {
		return common.SendNotFoundError(c, "Product")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return common.SendValidationError(c, "price", "Price cannot be negative")
		}
		product.Price = *req.Price
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := h.productService.Update(ctx, product); err != nil {
		c.Logger().Errorf("Failed to update product %s: %v", productID, err)
		return common.SendServerError(c, "Failed to update product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "Invalid product ID format")
	}

	deleted, err := h.productService.Delete(ctx, productID)
	if err != nil {
		c.Logger().Errorf("Failed to delete product %s: %v", productID, err)
		return common.SendServerError(c, "Failed to delete product")
	}
	if !deleted {
		return common.SendNotFoundError(c, "Product")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Product deleted successfully",
	})
}

// UploadProductImage stores the uploaded file in object storage and records
// the object name on the product.
func (h *ProductHandlers) UploadProductImage(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "Invalid product ID format")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return common.SendValidationError(c, "image", "Image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return common.SendClientError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.productService.UploadImage(ctx, productID, contentType, file, fileHeader.Size); err != nil {
		c.Logger().Errorf("Failed to upload image for product %s: %v", productID, err)
		return common.SendServerError(c, "Failed to upload image")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Image uploaded successfully",
	})
}

// GetProductImageURL returns a short-lived presigned URL for the product image.
func (h *ProductHandlers) GetProductImageURL(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "Invalid product ID format")
	}

	url, err := h.productService.ImageURL(ctx, productID)
	if err != nil {
		return common.SendNotFoundError(c, "Product image")
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
