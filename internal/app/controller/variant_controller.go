package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/internal/app/service"
	errs "github.com/yhkang/stylehub-backend/internal/errors"
	"github.com/yhkang/stylehub-backend/internal/middleware"
)

type VariantController struct {
	variantService service.VariantService
	bulkService    service.VariantBulkService
	stockService   service.StockService
	listingService service.ListingService
}

func NewVariantController(
	variantService service.VariantService,
	bulkService service.VariantBulkService,
	stockService service.StockService,
	listingService service.ListingService,
) *VariantController {
	return &VariantController{
		variantService: variantService,
		bulkService:    bulkService,
		stockService:   stockService,
		listingService: listingService,
	}
}

type BulkCreateRequest struct {
	Variants []service.BulkVariantInput `json:"variants" binding:"required"`
}

type StocksRequest struct {
	Stocks []service.StockInput `json:"stocks" binding:"required"`
}

type StocksDeleteRequest struct {
	WarehouseIDs []string `json:"warehouse_ids" binding:"required"`
}

type ChannelListingsRequest struct {
	ChannelListings []service.ChannelListingInput `json:"channel_listings" binding:"required"`
}

// GetVariant returns one variant with its assignment, stocks and listings
// GET /api/v1/variants/:id
func (ctrl *VariantController) GetVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	variant, err := ctrl.variantService.GetVariant(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			errs.NotFoundResponse(c, "Variant not found")
			return
		}
		log.Error("Failed to fetch variant", err, map[string]interface{}{
			"variant_id": c.Param("id"),
		})
		errs.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"variant": variant})
}

// ListVariants returns the product's variants
// GET /api/v1/products/:id/variants
func (ctrl *VariantController) ListVariants(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	variants, err := ctrl.variantService.ListVariants(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			errs.NotFoundResponse(c, "Product not found")
			return
		}
		log.Error("Failed to list variants", err, map[string]interface{}{
			"product_id": c.Param("id"),
		})
		errs.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variants": variants,
		"count":    len(variants),
	})
}

// CreateVariant creates a single variant under a product
// POST /api/v1/products/:id/variants
func (ctrl *VariantController) CreateVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.CreateVariantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid variant creation request", map[string]interface{}{
			"error": err.Error(),
		})
		errs.RespondWithError(c, http.StatusBadRequest, errs.Invalid, "Invalid request data")
		return
	}

	variant, verrs, err := ctrl.variantService.CreateVariant(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			errs.NotFoundResponse(c, "Product not found")
			return
		}
		log.Error("Failed to create variant", err, map[string]interface{}{
			"product_id": c.Param("id"),
		})
		errs.InternalError(c, "")
		return
	}
	if len(verrs) > 0 {
		errs.RespondWithValidationErrors(c, verrs)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"variant": variant})
}

// BulkCreateVariants creates many variants in one request; clean items
// commit even when siblings fail
// POST /api/v1/products/:id/variants/bulk
func (ctrl *VariantController) BulkCreateVariants(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid bulk variant request", map[string]interface{}{
			"error": err.Error(),
		})
		errs.RespondWithError(c, http.StatusBadRequest, errs.Invalid, "Invalid request data")
		return
	}

	result, err := ctrl.bulkService.BulkCreate(c.Param("id"), req.Variants)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			errs.NotFoundResponse(c, "Product not found")
			return
		}
		log.Error("Bulk variant create failed", err, map[string]interface{}{
			"product_id": c.Param("id"),
		})
		errs.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateVariant partially updates a variant
// PUT /api/v1/variants/:id
func (ctrl *VariantController) UpdateVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.UpdateVariantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid variant update request", map[string]interface{}{
			"error": err.Error(),
		})
		errs.RespondWithError(c, http.StatusBadRequest, errs.Invalid, "Invalid request data")
		return
	}

	variant, verrs, err := ctrl.variantService.UpdateVariant(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			errs.NotFoundResponse(c, "Variant not found")
			return
		}
		log.Error("Failed to update variant", err, map[string]interface{}{
			"variant_id": c.Param("id"),
		})
		errs.InternalError(c, "")
		return
	}
	if len(verrs) > 0 {
		errs.RespondWithValidationErrors(c, verrs)
		return
	}

	c.JSON(http.StatusOK, gin.H{"variant": variant})
}

// DeleteVariant removes a variant and its dependent records
// DELETE /api/v1/variants/:id
func (ctrl *VariantController) DeleteVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	variant, err := ctrl.variantService.DeleteVariant(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			errs.NotFoundResponse(c, "Variant not found")
			return
		}
		log.Error("Failed to delete variant", err, map[string]interface{}{
			"variant_id": c.Param("id"),
		})
		errs.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Variant deleted",
		"variant": variant,
	})
}

// CreateStocks adds stock rows for new warehouses
// POST /api/v1/variants/:id/stocks
func (ctrl *VariantController) CreateStocks(c *gin.Context) {
	ctrl.handleStocks(c, ctrl.stockService.StocksCreate)
}

// UpdateStocks upserts stock quantities per warehouse
// PUT /api/v1/variants/:id/stocks
func (ctrl *VariantController) UpdateStocks(c *gin.Context) {
	ctrl.handleStocks(c, ctrl.stockService.StocksUpdate)
}

func (ctrl *VariantController) handleStocks(c *gin.Context, op func(string, []service.StockInput) (*model.ProductVariant, []errs.BulkError, error)) {
	log := middleware.GetLoggerFromContext(c)

	var req StocksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid stocks request", map[string]interface{}{
			"error": err.Error(),
		})
		errs.RespondWithError(c, http.StatusBadRequest, errs.Invalid, "Invalid request data")
		return
	}

	variant, bulkErrs, err := op(c.Param("id"), req.Stocks)
	if err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			errs.NotFoundResponse(c, "Variant not found")
			return
		}
		log.Error("Stock operation failed", err, map[string]interface{}{
			"variant_id": c.Param("id"),
		})
		errs.InternalError(c, "")
		return
	}
	if len(bulkErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": bulkErrs})
		return
	}

	c.JSON(http.StatusOK, gin.H{"variant": variant})
}

// DeleteStocks removes the variant's stock in the given warehouses
// DELETE /api/v1/variants/:id/stocks
func (ctrl *VariantController) DeleteStocks(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req StocksDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid stocks delete request", map[string]interface{}{
			"error": err.Error(),
		})
		errs.RespondWithError(c, http.StatusBadRequest, errs.Invalid, "Invalid request data")
		return
	}

	variant, err := ctrl.stockService.StocksDelete(c.Param("id"), req.WarehouseIDs)
	if err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			errs.NotFoundResponse(c, "Variant not found")
			return
		}
		log.Error("Failed to delete stocks", err, map[string]interface{}{
			"variant_id": c.Param("id"),
		})
		errs.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"variant": variant})
}

// UpdateChannelListings sets the variant's per-channel prices
// PUT /api/v1/variants/:id/channel-listings
func (ctrl *VariantController) UpdateChannelListings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ChannelListingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid channel listings request", map[string]interface{}{
			"error": err.Error(),
		})
		errs.RespondWithError(c, http.StatusBadRequest, errs.Invalid, "Invalid request data")
		return
	}

	variant, verrs, err := ctrl.listingService.UpdateChannelListings(c.Param("id"), req.ChannelListings)
	if err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			errs.NotFoundResponse(c, "Variant not found")
			return
		}
		log.Error("Failed to update channel listings", err, map[string]interface{}{
			"variant_id": c.Param("id"),
		})
		errs.InternalError(c, "")
		return
	}
	if len(verrs) > 0 {
		errs.RespondWithValidationErrors(c, verrs)
		return
	}

	c.JSON(http.StatusOK, gin.H{"variant": variant})
}
