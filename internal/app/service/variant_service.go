package service

import (
	"errors"

	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/internal/app/repository"
	errs "github.com/yhkang/stylehub-backend/internal/errors"
	"github.com/yhkang/stylehub-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
)

// CreateVariantInput carries a single-variant create request.
type CreateVariantInput struct {
	SKU            string                `json:"sku"`
	Name           string                `json:"name"`
	Weight         *float64              `json:"weight"`
	TrackInventory *bool                 `json:"track_inventory"`
	Attributes     []AttributeValueInput `json:"attributes"`
	Stocks         []StockInput          `json:"stocks"`
}

// UpdateVariantInput carries a partial variant update. Nil fields are left
// untouched; a nil Attributes slice skips attribute validation entirely.
type UpdateVariantInput struct {
	SKU            *string               `json:"sku"`
	Name           *string               `json:"name"`
	Weight         *float64              `json:"weight"`
	TrackInventory *bool                 `json:"track_inventory"`
	Attributes     []AttributeValueInput `json:"attributes"`
}

type VariantService interface {
	GetVariant(id string) (*model.ProductVariant, error)
	ListVariants(productID string) ([]model.ProductVariant, error)
	CreateVariant(productID string, input CreateVariantInput) (*model.ProductVariant, []*errs.ValidationError, error)
	UpdateVariant(variantID string, input UpdateVariantInput) (*model.ProductVariant, []*errs.ValidationError, error)
	DeleteVariant(variantID string) (*model.ProductVariant, error)
}

type variantService struct {
	db            *gorm.DB
	productRepo   repository.ProductRepository
	variantRepo   repository.VariantRepository
	attributeRepo repository.AttributeRepository
	warehouseRepo repository.WarehouseRepository
	orderRepo     repository.OrderRepository
	notifier      ProductNotifier
}

func NewVariantService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	attributeRepo repository.AttributeRepository,
	warehouseRepo repository.WarehouseRepository,
	orderRepo repository.OrderRepository,
	notifier ProductNotifier,
) VariantService {
	return &variantService{
		db:            db,
		productRepo:   productRepo,
		variantRepo:   variantRepo,
		attributeRepo: attributeRepo,
		warehouseRepo: warehouseRepo,
		orderRepo:     orderRepo,
		notifier:      notifier,
	}
}

func (s *variantService) GetVariant(id string) (*model.ProductVariant, error) {
	variant, err := s.variantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	return variant, nil
}

func (s *variantService) ListVariants(productID string) ([]model.ProductVariant, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.variantRepo.FindByProduct(productID)
}

// CreateVariant validates and persists one variant under the product.
// Validation failures come back as the middle return value; the last return
// value is reserved for infrastructure errors.
func (s *variantService) CreateVariant(productID string, input CreateVariantInput) (*model.ProductVariant, []*errs.ValidationError, error) {
	logger.Debug("Creating variant", map[string]interface{}{
		"product_id": productID,
		"sku":        input.SKU,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProductNotFound
		}
		return nil, nil, err
	}

	var validationErrs []*errs.ValidationError

	if verr := s.checkSKU(input.SKU, ""); verr != nil {
		validationErrs = append(validationErrs, verr)
	}
	if verr := checkWeight(input.Weight); verr != nil {
		validationErrs = append(validationErrs, verr)
	}

	selection, err := s.productRepo.VariantSelectionAttributes(product.ID)
	if err != nil {
		return nil, nil, err
	}

	resolved, verr := newAssignmentValidator(s.attributeRepo).Validate(selection, input.Attributes)
	if verr != nil {
		validationErrs = append(validationErrs, verr)
	} else {
		assignments, err := s.variantRepo.FindAssignments(product.ID, "")
		if err != nil {
			return nil, nil, err
		}
		if verr := newConflictDetector(assignments).Check(resolved); verr != nil {
			validationErrs = append(validationErrs, verr)
		}
	}

	stockRows, stockErrs, err := s.buildStockRows(input.Stocks)
	if err != nil {
		return nil, nil, err
	}
	validationErrs = append(validationErrs, stockErrs...)

	if len(validationErrs) > 0 {
		return nil, validationErrs, nil
	}

	name := input.Name
	if name == "" {
		name = variantDisplayName(resolved)
	}
	trackInventory := true
	if input.TrackInventory != nil {
		trackInventory = *input.TrackInventory
	}

	variant := &model.ProductVariant{
		ProductID:       product.ID,
		SKU:             input.SKU,
		Name:            name,
		Weight:          input.Weight,
		TrackInventory:  trackInventory,
		AttributeValues: assignmentRows(resolved),
		Stocks:          stockRows,
	}
	if err := s.variantRepo.Create(variant); err != nil {
		if verr := errs.ParseDBError(err, "sku"); verr != nil {
			return nil, []*errs.ValidationError{verr}, nil
		}
		return nil, nil, err
	}

	s.notifier.ProductUpdated(product.ID)
	logger.Info("Variant created", map[string]interface{}{
		"variant_id": variant.ID,
		"sku":        variant.SKU,
	})

	created, err := s.variantRepo.FindByID(variant.ID)
	if err != nil {
		return nil, nil, err
	}
	return created, nil, nil
}

// UpdateVariant applies a partial update. When Attributes is nil the
// assignment is left as is and no attribute validation runs, so an empty
// update body always succeeds.
func (s *variantService) UpdateVariant(variantID string, input UpdateVariantInput) (*model.ProductVariant, []*errs.ValidationError, error) {
	variant, err := s.variantRepo.FindByID(variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrVariantNotFound
		}
		return nil, nil, err
	}

	var validationErrs []*errs.ValidationError

	if input.SKU != nil && *input.SKU != variant.SKU {
		if verr := s.checkSKU(*input.SKU, variant.ID); verr != nil {
			validationErrs = append(validationErrs, verr)
		}
	}
	if verr := checkWeight(input.Weight); verr != nil {
		validationErrs = append(validationErrs, verr)
	}

	var resolved []ResolvedAssignment
	if input.Attributes != nil {
		selection, err := s.productRepo.VariantSelectionAttributes(variant.ProductID)
		if err != nil {
			return nil, nil, err
		}
		var verr *errs.ValidationError
		resolved, verr = newAssignmentValidator(s.attributeRepo).Validate(selection, input.Attributes)
		if verr != nil {
			validationErrs = append(validationErrs, verr)
		} else {
			assignments, err := s.variantRepo.FindAssignments(variant.ProductID, variant.ID)
			if err != nil {
				return nil, nil, err
			}
			if verr := newConflictDetector(assignments).Check(resolved); verr != nil {
				validationErrs = append(validationErrs, verr)
			}
		}
	}

	if len(validationErrs) > 0 {
		return nil, validationErrs, nil
	}

	if input.SKU != nil {
		variant.SKU = *input.SKU
	}
	if input.Name != nil {
		variant.Name = *input.Name
	}
	if input.Weight != nil {
		variant.Weight = input.Weight
	}
	if input.TrackInventory != nil {
		variant.TrackInventory = *input.TrackInventory
	}
	if input.Attributes != nil && input.Name == nil {
		variant.Name = variantDisplayName(resolved)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		txVariants := repository.NewVariantRepository(tx)
		if err := txVariants.Update(variant); err != nil {
			return err
		}
		if input.Attributes != nil {
			return txVariants.ReplaceAssignments(variant.ID, assignmentRows(resolved))
		}
		return nil
	})
	if err != nil {
		if verr := errs.ParseDBError(err, "sku"); verr != nil {
			return nil, []*errs.ValidationError{verr}, nil
		}
		return nil, nil, err
	}

	s.notifier.ProductUpdated(variant.ProductID)
	logger.Info("Variant updated", map[string]interface{}{
		"variant_id": variant.ID,
	})

	updated, err := s.variantRepo.FindByID(variant.ID)
	if err != nil {
		return nil, nil, err
	}
	return updated, nil, nil
}

// DeleteVariant removes the variant and everything hanging off it. Draft
// order lines referencing the variant are deleted with it; lines of
// non-draft orders survive with the variant reference cleared, keeping their
// name, SKU and price snapshots. The whole removal is atomic.
func (s *variantService) DeleteVariant(variantID string) (*model.ProductVariant, error) {
	variant, err := s.variantRepo.FindByID(variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		txOrders := repository.NewOrderRepository(tx)

		draftLines, err := txOrders.FindDraftLinesReferencing(variant.ID)
		if err != nil {
			return err
		}
		lineIDs := make([]string, 0, len(draftLines))
		for _, line := range draftLines {
			lineIDs = append(lineIDs, line.ID)
		}
		if err := txOrders.DeleteLines(lineIDs); err != nil {
			return err
		}
		if err := txOrders.DetachVariant(variant.ID); err != nil {
			return err
		}

		for _, m := range []interface{}{
			&model.VariantAttributeValue{},
			&model.Stock{},
			&model.VariantChannelListing{},
		} {
			if err := tx.Where("variant_id = ?", variant.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.ProductVariant{}, "id = ?", variant.ID).Error
	})
	if err != nil {
		logger.Error("Failed to delete variant", err, map[string]interface{}{
			"variant_id": variant.ID,
		})
		return nil, err
	}

	s.notifier.ProductUpdated(variant.ProductID)
	logger.Info("Variant deleted", map[string]interface{}{
		"variant_id": variant.ID,
		"sku":        variant.SKU,
	})
	return variant, nil
}

func (s *variantService) checkSKU(sku, excludeVariantID string) *errs.ValidationError {
	if sku == "" {
		return errs.Validation("sku", errs.Required, "SKU cannot be blank.")
	}
	exists, err := s.variantRepo.SKUExists(sku, excludeVariantID)
	if err != nil {
		logger.Error("Failed to check SKU uniqueness", err, map[string]interface{}{
			"sku": sku,
		})
		return errs.Validation("sku", errs.Invalid, "Could not verify SKU uniqueness.")
	}
	if exists {
		return errs.Validation("sku", errs.Unique, "Product variant with this SKU already exists.")
	}
	return nil
}

func checkWeight(weight *float64) *errs.ValidationError {
	if weight != nil && *weight < 0 {
		return errs.Validation("weight", errs.Invalid, "Product variant can't have negative weight.")
	}
	return nil
}

// buildStockRows validates stock inputs for a single-variant create and
// returns the rows to cascade with the variant. New rows never carry an
// allocation.
func (s *variantService) buildStockRows(inputs []StockInput) ([]model.Stock, []*errs.ValidationError, error) {
	if len(inputs) == 0 {
		return nil, nil, nil
	}

	var validationErrs []*errs.ValidationError

	seen := make(map[string]bool, len(inputs))
	var duplicated []string
	ids := make([]string, 0, len(inputs))
	for _, input := range inputs {
		if seen[input.WarehouseID] {
			duplicated = append(duplicated, input.WarehouseID)
			continue
		}
		seen[input.WarehouseID] = true
		ids = append(ids, input.WarehouseID)
	}
	if len(duplicated) > 0 {
		verr := errs.Validation("stocks", errs.DuplicatedInputItem, "Duplicated warehouse ID.")
		verr.Warehouses = duplicated
		validationErrs = append(validationErrs, verr)
	}

	warehouses, err := s.warehouseRepo.FindByIDs(ids)
	if err != nil {
		return nil, nil, err
	}
	known := make(map[string]bool, len(warehouses))
	for _, warehouse := range warehouses {
		known[warehouse.ID] = true
	}
	var missing []string
	for _, id := range ids {
		if !known[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		verr := errs.Validation("stocks", errs.NotFound, "Could not resolve warehouse.")
		verr.Warehouses = missing
		validationErrs = append(validationErrs, verr)
	}

	if len(validationErrs) > 0 {
		return nil, validationErrs, nil
	}

	rows := make([]model.Stock, 0, len(inputs))
	for _, input := range inputs {
		rows = append(rows, model.Stock{
			WarehouseID:       input.WarehouseID,
			Quantity:          input.Quantity,
			QuantityAllocated: 0,
		})
	}
	return rows, nil, nil
}
