package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yhkang/stylehub-backend/internal/app/service"
	errs "github.com/yhkang/stylehub-backend/internal/errors"
	"github.com/yhkang/stylehub-backend/internal/middleware"
)

// CatalogController serves the read-only lookups the variant mutations
// reference: products, attributes, channels and warehouses.
type CatalogController struct {
	productService service.ProductService
}

func NewCatalogController(productService service.ProductService) *CatalogController {
	return &CatalogController{
		productService: productService,
	}
}

// GetProduct returns a product with its variants
// GET /api/v1/products/:id
func (ctrl *CatalogController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	product, err := ctrl.productService.GetProduct(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			errs.NotFoundResponse(c, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": c.Param("id"),
		})
		errs.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// ListProducts returns all products
// GET /api/v1/products
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.ListProducts()
	if err != nil {
		log.Error("Failed to list products", err, nil)
		errs.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// ListAttributes returns all attributes with their values
// GET /api/v1/attributes
func (ctrl *CatalogController) ListAttributes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	attributes, err := ctrl.productService.ListAttributes()
	if err != nil {
		log.Error("Failed to list attributes", err, nil)
		errs.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attributes": attributes,
		"count":      len(attributes),
	})
}

// ListChannels returns all sales channels
// GET /api/v1/channels
func (ctrl *CatalogController) ListChannels(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	channels, err := ctrl.productService.ListChannels()
	if err != nil {
		log.Error("Failed to list channels", err, nil)
		errs.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"channels": channels,
		"count":    len(channels),
	})
}

// ListWarehouses returns all warehouses
// GET /api/v1/warehouses
func (ctrl *CatalogController) ListWarehouses(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	warehouses, err := ctrl.productService.ListWarehouses()
	if err != nil {
		log.Error("Failed to list warehouses", err, nil)
		errs.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"warehouses": warehouses,
		"count":      len(warehouses),
	})
}
