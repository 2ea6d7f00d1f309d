package service

import (
	"errors"

	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/internal/app/repository"
	errs "github.com/yhkang/stylehub-backend/internal/errors"
	"github.com/yhkang/stylehub-backend/pkg/logger"
	"gorm.io/gorm"
)

// StockInput sets the available quantity of a variant in one warehouse.
type StockInput struct {
	WarehouseID string `json:"warehouse_id" binding:"required"`
	Quantity    int    `json:"quantity"`
}

type StockService interface {
	StocksCreate(variantID string, inputs []StockInput) (*model.ProductVariant, []errs.BulkError, error)
	StocksUpdate(variantID string, inputs []StockInput) (*model.ProductVariant, []errs.BulkError, error)
	StocksDelete(variantID string, warehouseIDs []string) (*model.ProductVariant, error)
}

type stockService struct {
	variantRepo   repository.VariantRepository
	stockRepo     repository.StockRepository
	warehouseRepo repository.WarehouseRepository
	notifier      ProductNotifier
}

func NewStockService(
	variantRepo repository.VariantRepository,
	stockRepo repository.StockRepository,
	warehouseRepo repository.WarehouseRepository,
	notifier ProductNotifier,
) StockService {
	return &stockService{
		variantRepo:   variantRepo,
		stockRepo:     stockRepo,
		warehouseRepo: warehouseRepo,
		notifier:      notifier,
	}
}

// StocksCreate adds stock rows for warehouses the variant has none in yet.
// The request is all-or-nothing: any invalid item rejects the whole call.
// An index can collect two errors when its warehouse both repeats an earlier
// item and already has a persisted row.
func (s *stockService) StocksCreate(variantID string, inputs []StockInput) (*model.ProductVariant, []errs.BulkError, error) {
	variant, err := s.variantRepo.FindByID(variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrVariantNotFound
		}
		return nil, nil, err
	}

	known, err := s.knownWarehouses(inputs)
	if err != nil {
		return nil, nil, err
	}
	persisted, err := s.persistedWarehouses(variant.ID)
	if err != nil {
		return nil, nil, err
	}

	var bulkErrs []errs.BulkError
	seen := make(map[string]bool, len(inputs))
	for index, input := range inputs {
		if !known[input.WarehouseID] {
			bulkErrs = append(bulkErrs, errs.Bulk(index,
				errs.Validation("warehouse", errs.NotFound, "Could not resolve warehouse.")))
			continue
		}
		if persisted[input.WarehouseID] {
			bulkErrs = append(bulkErrs, errs.Bulk(index,
				errs.Validation("warehouse", errs.Unique, "Stock for this warehouse already exists for this variant.")))
		}
		if seen[input.WarehouseID] {
			bulkErrs = append(bulkErrs, errs.Bulk(index,
				errs.Validation("warehouse", errs.Unique, "Duplicated warehouse in the request.")))
		}
		seen[input.WarehouseID] = true
	}
	if len(bulkErrs) > 0 {
		return nil, bulkErrs, nil
	}

	rows := make([]model.Stock, 0, len(inputs))
	for _, input := range inputs {
		rows = append(rows, model.Stock{
			VariantID:         variant.ID,
			WarehouseID:       input.WarehouseID,
			Quantity:          input.Quantity,
			QuantityAllocated: 0,
		})
	}
	if err := s.stockRepo.CreateBulk(rows); err != nil {
		return nil, nil, err
	}

	s.notifier.ProductUpdated(variant.ProductID)
	logger.Info("Stocks created", map[string]interface{}{
		"variant_id": variant.ID,
		"count":      len(rows),
	})
	return s.reload(variant.ID)
}

// StocksUpdate upserts quantities per warehouse. Warehouses with a
// persisted row get the new quantity; the rest get a fresh row. Repeating a
// warehouse within the request is an error at the repeating index.
func (s *stockService) StocksUpdate(variantID string, inputs []StockInput) (*model.ProductVariant, []errs.BulkError, error) {
	variant, err := s.variantRepo.FindByID(variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrVariantNotFound
		}
		return nil, nil, err
	}

	known, err := s.knownWarehouses(inputs)
	if err != nil {
		return nil, nil, err
	}

	var bulkErrs []errs.BulkError
	seen := make(map[string]bool, len(inputs))
	for index, input := range inputs {
		if !known[input.WarehouseID] {
			bulkErrs = append(bulkErrs, errs.Bulk(index,
				errs.Validation("warehouse", errs.NotFound, "Could not resolve warehouse.")))
			continue
		}
		if seen[input.WarehouseID] {
			bulkErrs = append(bulkErrs, errs.Bulk(index,
				errs.Validation("warehouse", errs.Unique, "Duplicated warehouse in the request.")))
		}
		seen[input.WarehouseID] = true
	}
	if len(bulkErrs) > 0 {
		return nil, bulkErrs, nil
	}

	for _, input := range inputs {
		stock := &model.Stock{
			VariantID:         variant.ID,
			WarehouseID:       input.WarehouseID,
			Quantity:          input.Quantity,
			QuantityAllocated: 0,
		}
		if err := s.stockRepo.Upsert(stock); err != nil {
			return nil, nil, err
		}
	}

	s.notifier.ProductUpdated(variant.ProductID)
	logger.Info("Stocks updated", map[string]interface{}{
		"variant_id": variant.ID,
		"count":      len(inputs),
	})
	return s.reload(variant.ID)
}

// StocksDelete removes the variant's stock rows in the given warehouses.
// Warehouses without a row are skipped silently.
func (s *stockService) StocksDelete(variantID string, warehouseIDs []string) (*model.ProductVariant, error) {
	variant, err := s.variantRepo.FindByID(variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}

	if err := s.stockRepo.DeleteByWarehouses(variant.ID, warehouseIDs); err != nil {
		return nil, err
	}

	s.notifier.ProductUpdated(variant.ProductID)
	logger.Info("Stocks deleted", map[string]interface{}{
		"variant_id": variant.ID,
	})
	updated, err := s.variantRepo.FindByID(variant.ID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *stockService) knownWarehouses(inputs []StockInput) (map[string]bool, error) {
	ids := make([]string, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for _, input := range inputs {
		if !seen[input.WarehouseID] {
			seen[input.WarehouseID] = true
			ids = append(ids, input.WarehouseID)
		}
	}
	warehouses, err := s.warehouseRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(warehouses))
	for _, warehouse := range warehouses {
		known[warehouse.ID] = true
	}
	return known, nil
}

func (s *stockService) persistedWarehouses(variantID string) (map[string]bool, error) {
	ids, err := s.stockRepo.WarehouseIDsForVariant(variantID)
	if err != nil {
		return nil, err
	}
	persisted := make(map[string]bool, len(ids))
	for _, id := range ids {
		persisted[id] = true
	}
	return persisted, nil
}

func (s *stockService) reload(variantID string) (*model.ProductVariant, []errs.BulkError, error) {
	variant, err := s.variantRepo.FindByID(variantID)
	if err != nil {
		return nil, nil, err
	}
	return variant, nil, nil
}
