package service

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/internal/app/repository"
	"github.com/yhkang/stylehub-backend/pkg/logger"
)

const exportSheet = "Variants"

type ExportService interface {
	ExportVariants() (*excelize.File, error)
}

type exportService struct {
	variantRepo repository.VariantRepository
}

func NewExportService(variantRepo repository.VariantRepository) ExportService {
	return &exportService{variantRepo: variantRepo}
}

// ExportVariants builds an XLSX workbook with one row per variant: its
// product, attribute assignment, total stock and channel prices.
func (s *exportService) ExportVariants() (*excelize.File, error) {
	variants, err := s.variantRepo.FindAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", exportSheet)

	headers := []interface{}{"Product", "Variant", "SKU", "Attributes", "Weight", "Total Stock", "Prices"}
	if err := f.SetSheetRow(exportSheet, "A1", &headers); err != nil {
		return nil, err
	}

	for i, variant := range variants {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		var weight interface{}
		if variant.Weight != nil {
			weight = *variant.Weight
		}

		row := []interface{}{
			variant.Product.Name,
			variant.Name,
			variant.SKU,
			formatAssignment(variant.AttributeValues),
			weight,
			totalStock(variant.Stocks),
			formatListings(variant.ChannelListings),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	logger.Info("Variant export built", map[string]interface{}{
		"variants": len(variants),
	})
	return f, nil
}

func formatAssignment(rows []model.VariantAttributeValue) string {
	parts := make([]string, 0, len(rows))
	for _, row := range rows {
		parts = append(parts, fmt.Sprintf("%s: %s", row.Attribute.Name, row.Value.Name))
	}
	return strings.Join(parts, ", ")
}

func totalStock(stocks []model.Stock) int {
	total := 0
	for _, stock := range stocks {
		total += stock.Quantity
	}
	return total
}

func formatListings(listings []model.VariantChannelListing) string {
	parts := make([]string, 0, len(listings))
	for _, listing := range listings {
		parts = append(parts, fmt.Sprintf("%s %s (%s)",
			listing.Price.StringFixed(minorUnits(listing.Currency)),
			listing.Currency,
			listing.Channel.Slug))
	}
	return strings.Join(parts, ", ")
}
