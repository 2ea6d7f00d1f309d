package service

import (
	"errors"
	"fmt"

	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/internal/app/repository"
	errs "github.com/yhkang/stylehub-backend/internal/errors"
	"github.com/yhkang/stylehub-backend/pkg/logger"
	"gorm.io/gorm"
)

// BulkVariantInput is one item of a bulk variant create request.
type BulkVariantInput struct {
	SKU             string                `json:"sku"`
	Name            string                `json:"name"`
	Weight          *float64              `json:"weight"`
	TrackInventory  *bool                 `json:"track_inventory"`
	Attributes      []AttributeValueInput `json:"attributes"`
	Stocks          []StockInput          `json:"stocks"`
	ChannelListings []ChannelListingInput `json:"channel_listings"`
}

// BulkCreateResult reports a bulk create outcome. Count and Variants cover
// the items that committed; Errors carries every rejected item's failures
// tagged with the item's position in the request.
type BulkCreateResult struct {
	Count    int                    `json:"count"`
	Variants []model.ProductVariant `json:"variants"`
	Errors   []errs.BulkError       `json:"errors"`
}

type VariantBulkService interface {
	BulkCreate(productID string, inputs []BulkVariantInput) (*BulkCreateResult, error)
}

type variantBulkService struct {
	db            *gorm.DB
	productRepo   repository.ProductRepository
	variantRepo   repository.VariantRepository
	attributeRepo repository.AttributeRepository
	warehouseRepo repository.WarehouseRepository
	channelRepo   repository.ChannelRepository
	notifier      ProductNotifier
}

func NewVariantBulkService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	attributeRepo repository.AttributeRepository,
	warehouseRepo repository.WarehouseRepository,
	channelRepo repository.ChannelRepository,
	notifier ProductNotifier,
) VariantBulkService {
	return &variantBulkService{
		db:            db,
		productRepo:   productRepo,
		variantRepo:   variantRepo,
		attributeRepo: attributeRepo,
		warehouseRepo: warehouseRepo,
		channelRepo:   channelRepo,
		notifier:      notifier,
	}
}

// BulkCreate validates every item independently and commits the clean ones.
// A rejected item never blocks its siblings; its failures are reported with
// the item's index. Items accepted earlier in the batch count as siblings
// for SKU and attribute-conflict checks on later items.
func (s *variantBulkService) BulkCreate(productID string, inputs []BulkVariantInput) (*BulkCreateResult, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	selection, err := s.productRepo.VariantSelectionAttributes(product.ID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.variantRepo.FindAssignments(product.ID, "")
	if err != nil {
		return nil, err
	}
	detector := newConflictDetector(assignments)
	validator := newAssignmentValidator(s.attributeRepo)

	warehouses, channels, assigned, err := s.loadReferences(product.ID, inputs)
	if err != nil {
		return nil, err
	}

	result := &BulkCreateResult{}
	batchSKUs := make(map[string]bool, len(inputs))

	for index, input := range inputs {
		itemErrs := s.validateSKU(input.SKU, batchSKUs)
		if input.SKU != "" {
			// First occurrence owns the SKU even when the item fails on
			// other grounds; later duplicates are always rejected.
			batchSKUs[input.SKU] = true
		}

		if verr := checkWeight(input.Weight); verr != nil {
			itemErrs = append(itemErrs, verr)
		}

		resolved, verr := validator.Validate(selection, input.Attributes)
		if verr != nil {
			itemErrs = append(itemErrs, verr)
		} else if verr := detector.Check(resolved); verr != nil {
			itemErrs = append(itemErrs, verr)
		}

		stockRows, stockErrs := validateItemStocks(input.Stocks, warehouses)
		itemErrs = append(itemErrs, stockErrs...)

		listingRows, listingErrs := validateItemListings(input.ChannelListings, channels, assigned)
		itemErrs = append(itemErrs, listingErrs...)

		if len(itemErrs) > 0 {
			for _, verr := range itemErrs {
				result.Errors = append(result.Errors, errs.Bulk(index, verr))
			}
			continue
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
			ChannelListings: listingRows,
		}
		if err := s.variantRepo.Create(variant); err != nil {
			if verr := errs.ParseDBError(err, "sku"); verr != nil {
				result.Errors = append(result.Errors, errs.Bulk(index, verr))
				continue
			}
			return nil, err
		}

		detector.Accept(resolved, index)

		created, err := s.variantRepo.FindByID(variant.ID)
		if err != nil {
			return nil, err
		}
		result.Variants = append(result.Variants, *created)
		result.Count++
	}

	if result.Count > 0 {
		s.notifier.ProductUpdated(product.ID)
	}
	logger.Info("Bulk variant create finished", map[string]interface{}{
		"product_id": product.ID,
		"requested":  len(inputs),
		"created":    result.Count,
		"rejected":   len(inputs) - result.Count,
	})
	return result, nil
}

// loadReferences resolves every warehouse and channel id the batch mentions
// in one query each, plus the set of channels the product is assigned to.
func (s *variantBulkService) loadReferences(productID string, inputs []BulkVariantInput) (map[string]bool, map[string]model.Channel, map[string]bool, error) {
	warehouseIDs := make([]string, 0)
	channelIDs := make([]string, 0)
	seenWarehouse := make(map[string]bool)
	seenChannel := make(map[string]bool)
	for _, input := range inputs {
		for _, stock := range input.Stocks {
			if !seenWarehouse[stock.WarehouseID] {
				seenWarehouse[stock.WarehouseID] = true
				warehouseIDs = append(warehouseIDs, stock.WarehouseID)
			}
		}
		for _, listing := range input.ChannelListings {
			if !seenChannel[listing.ChannelID] {
				seenChannel[listing.ChannelID] = true
				channelIDs = append(channelIDs, listing.ChannelID)
			}
		}
	}

	warehouseRows, err := s.warehouseRepo.FindByIDs(warehouseIDs)
	if err != nil {
		return nil, nil, nil, err
	}
	warehouses := make(map[string]bool, len(warehouseRows))
	for _, warehouse := range warehouseRows {
		warehouses[warehouse.ID] = true
	}

	channelRows, err := s.channelRepo.FindByIDs(channelIDs)
	if err != nil {
		return nil, nil, nil, err
	}
	channels := make(map[string]model.Channel, len(channelRows))
	for _, channel := range channelRows {
		channels[channel.ID] = channel
	}

	assignedIDs, err := s.productRepo.ChannelIDs(productID)
	if err != nil {
		return nil, nil, nil, err
	}
	assigned := make(map[string]bool, len(assignedIDs))
	for _, id := range assignedIDs {
		assigned[id] = true
	}

	return warehouses, channels, assigned, nil
}

func (s *variantBulkService) validateSKU(sku string, batchSKUs map[string]bool) []*errs.ValidationError {
	if sku == "" {
		return []*errs.ValidationError{errs.Validation("sku", errs.Required, "SKU cannot be blank.")}
	}
	if batchSKUs[sku] {
		return []*errs.ValidationError{errs.Validation("sku", errs.Unique, "Duplicated SKU in the request.")}
	}
	exists, err := s.variantRepo.SKUExists(sku, "")
	if err != nil {
		logger.Error("Failed to check SKU uniqueness", err, map[string]interface{}{"sku": sku})
		return []*errs.ValidationError{errs.Validation("sku", errs.Invalid, "Could not verify SKU uniqueness.")}
	}
	if exists {
		return []*errs.ValidationError{errs.Validation("sku", errs.Unique, "Product variant with this SKU already exists.")}
	}
	return nil
}

// validateItemStocks checks one item's stock list against the known
// warehouses. Valid lists become rows cascaded with the variant, with no
// allocation.
func validateItemStocks(inputs []StockInput, warehouses map[string]bool) ([]model.Stock, []*errs.ValidationError) {
	if len(inputs) == 0 {
		return nil, nil
	}

	var validationErrs []*errs.ValidationError

	seen := make(map[string]bool, len(inputs))
	var duplicated, missing []string
	for _, input := range inputs {
		if seen[input.WarehouseID] {
			duplicated = append(duplicated, input.WarehouseID)
			continue
		}
		seen[input.WarehouseID] = true
		if !warehouses[input.WarehouseID] {
			missing = append(missing, input.WarehouseID)
		}
	}
	if len(duplicated) > 0 {
		verr := errs.Validation("stocks", errs.DuplicatedInputItem, "Duplicated warehouse ID.")
		verr.Warehouses = duplicated
		validationErrs = append(validationErrs, verr)
	}
	if len(missing) > 0 {
		verr := errs.Validation("stocks", errs.NotFound, "Could not resolve warehouse.")
		verr.Warehouses = missing
		validationErrs = append(validationErrs, verr)
	}
	if len(validationErrs) > 0 {
		return nil, validationErrs
	}

	rows := make([]model.Stock, 0, len(inputs))
	for _, input := range inputs {
		rows = append(rows, model.Stock{
			WarehouseID:       input.WarehouseID,
			Quantity:          input.Quantity,
			QuantityAllocated: 0,
		})
	}
	return rows, nil
}

// validateItemListings checks one item's channel listings: duplicate and
// unknown channels, channels the product is not assigned to, and per-channel
// price validity. Prices are stored in the channel's currency.
func validateItemListings(inputs []ChannelListingInput, channels map[string]model.Channel, assigned map[string]bool) ([]model.VariantChannelListing, []*errs.ValidationError) {
	if len(inputs) == 0 {
		return nil, nil
	}

	var validationErrs []*errs.ValidationError

	seen := make(map[string]bool, len(inputs))
	var duplicated, missing, unassigned []string
	for _, input := range inputs {
		if seen[input.ChannelID] {
			duplicated = append(duplicated, input.ChannelID)
			continue
		}
		seen[input.ChannelID] = true

		channel, ok := channels[input.ChannelID]
		if !ok {
			missing = append(missing, input.ChannelID)
			continue
		}
		if !assigned[input.ChannelID] {
			unassigned = append(unassigned, input.ChannelID)
			continue
		}
		if verr := checkPrice(input.Price, channel); verr != nil {
			validationErrs = append(validationErrs, verr)
		}
	}
	if len(duplicated) > 0 {
		verr := errs.Validation("channelListings", errs.DuplicatedInputItem, "Duplicated channel ID.")
		verr.Channels = duplicated
		validationErrs = append(validationErrs, verr)
	}
	if len(missing) > 0 {
		verr := errs.Validation("channelListings", errs.NotFound, "Could not resolve channel.")
		verr.Channels = missing
		validationErrs = append(validationErrs, verr)
	}
	if len(unassigned) > 0 {
		verr := errs.Validation("channelId", errs.ProductNotAssignedToChannel,
			fmt.Sprintf("Product not available in channels: %s.", joinIDs(unassigned)))
		verr.Channels = unassigned
		validationErrs = append(validationErrs, verr)
	}
	if len(validationErrs) > 0 {
		return nil, validationErrs
	}

	rows := make([]model.VariantChannelListing, 0, len(inputs))
	for _, input := range inputs {
		rows = append(rows, model.VariantChannelListing{
			ChannelID: input.ChannelID,
			Price:     input.Price,
			Currency:  channels[input.ChannelID].CurrencyCode,
		})
	}
	return rows, nil
}
