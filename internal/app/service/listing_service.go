package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/internal/app/repository"
	errs "github.com/yhkang/stylehub-backend/internal/errors"
	"github.com/yhkang/stylehub-backend/pkg/logger"
	"gorm.io/gorm"
)

// ChannelListingInput sets the variant's price in one sales channel.
type ChannelListingInput struct {
	ChannelID string          `json:"channel_id" binding:"required"`
	Price     decimal.Decimal `json:"price"`
}

type ListingService interface {
	UpdateChannelListings(variantID string, inputs []ChannelListingInput) (*model.ProductVariant, []*errs.ValidationError, error)
}

type listingService struct {
	variantRepo repository.VariantRepository
	productRepo repository.ProductRepository
	channelRepo repository.ChannelRepository
	listingRepo repository.ListingRepository
	notifier    ProductNotifier
}

func NewListingService(
	variantRepo repository.VariantRepository,
	productRepo repository.ProductRepository,
	channelRepo repository.ChannelRepository,
	listingRepo repository.ListingRepository,
	notifier ProductNotifier,
) ListingService {
	return &listingService{
		variantRepo: variantRepo,
		productRepo: productRepo,
		channelRepo: channelRepo,
		listingRepo: listingRepo,
		notifier:    notifier,
	}
}

// UpdateChannelListings upserts the variant's price per channel. A channel
// must exist, be assigned to the variant's product, and the price must fit
// the channel currency's minor units. Listings in channels the request does
// not mention are left alone.
func (s *listingService) UpdateChannelListings(variantID string, inputs []ChannelListingInput) (*model.ProductVariant, []*errs.ValidationError, error) {
	variant, err := s.variantRepo.FindByID(variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrVariantNotFound
		}
		return nil, nil, err
	}

	channelIDs := make([]string, 0, len(inputs))
	for _, input := range inputs {
		channelIDs = append(channelIDs, input.ChannelID)
	}
	channelRows, err := s.channelRepo.FindByIDs(channelIDs)
	if err != nil {
		return nil, nil, err
	}
	channels := make(map[string]model.Channel, len(channelRows))
	for _, channel := range channelRows {
		channels[channel.ID] = channel
	}

	assignedIDs, err := s.productRepo.ChannelIDs(variant.ProductID)
	if err != nil {
		return nil, nil, err
	}
	assigned := make(map[string]bool, len(assignedIDs))
	for _, id := range assignedIDs {
		assigned[id] = true
	}

	rows, validationErrs := validateItemListings(inputs, channels, assigned)
	if len(validationErrs) > 0 {
		return nil, validationErrs, nil
	}

	for i := range rows {
		rows[i].VariantID = variant.ID
		if err := s.listingRepo.Upsert(&rows[i]); err != nil {
			logger.Error("Failed to upsert channel listing", err, map[string]interface{}{
				"variant_id": variant.ID,
				"channel_id": rows[i].ChannelID,
			})
			return nil, nil, err
		}
	}

	s.notifier.ProductUpdated(variant.ProductID)
	logger.Info("Variant channel listings updated", map[string]interface{}{
		"variant_id": variant.ID,
		"channels":   len(rows),
	})

	updated, err := s.variantRepo.FindByID(variant.ID)
	if err != nil {
		return nil, nil, err
	}
	return updated, nil, nil
}

// currencyMinorUnits lists the ISO 4217 currencies whose minor unit differs
// from the default two decimal places.
var currencyMinorUnits = map[string]int32{
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0,
	"KMF": 0, "KRW": 0, "PYG": 0, "RWF": 0, "UGX": 0, "VND": 0,
	"VUV": 0, "XAF": 0, "XOF": 0, "XPF": 0,
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
}

func minorUnits(currency string) int32 {
	if units, ok := currencyMinorUnits[currency]; ok {
		return units
	}
	return 2
}

// checkPrice rejects negative prices and prices with more decimal places
// than the channel's currency supports.
func checkPrice(price decimal.Decimal, channel model.Channel) *errs.ValidationError {
	var verr *errs.ValidationError
	switch {
	case price.IsNegative():
		verr = errs.Validation("price", errs.Invalid, "Product price cannot be lower than 0.")
	case !price.Equal(price.Round(minorUnits(channel.CurrencyCode))):
		verr = errs.Validation("price", errs.Invalid,
			fmt.Sprintf("Price has more decimal places than %s allows.", channel.CurrencyCode))
	default:
		return nil
	}
	verr.Channels = []string{channel.ID}
	return verr
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ", ")
}
