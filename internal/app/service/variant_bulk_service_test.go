package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "github.com/yhkang/stylehub-backend/internal/errors"
)

func TestBulkCreate_Success(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.bulk.BulkCreate(env.product.ID, []BulkVariantInput{
		{
			SKU:        "BULK-1",
			Attributes: env.attrs("red", "small"),
			Stocks:     []StockInput{{WarehouseID: env.warehouse1.ID, Quantity: 10}},
			ChannelListings: []ChannelListingInput{
				{ChannelID: env.channelUSD.ID, Price: decimal.RequireFromString("19.99")},
			},
		},
		{
			SKU:        "BULK-2",
			Attributes: env.attrs("blue", "small"),
		},
	})

	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Variants, 2)

	first := result.Variants[0]
	assert.Equal(t, "BULK-1", first.SKU)
	assert.Equal(t, "red / small", first.Name)
	require.Len(t, first.Stocks, 1)
	assert.Equal(t, 10, first.Stocks[0].Quantity)
	require.Len(t, first.ChannelListings, 1)
	assert.True(t, first.ChannelListings[0].Price.Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, "USD", first.ChannelListings[0].Currency)
}

func TestBulkCreate_DuplicatedSKUInRequest(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.bulk.BulkCreate(env.product.ID, []BulkVariantInput{
		{SKU: "BULK-1", Attributes: env.attrs("red", "small")},
		{SKU: "BULK-2", Attributes: env.attrs("blue", "small")},
		{SKU: "BULK-1", Attributes: env.attrs("green", "small")},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Errors, 1)

	// only the later duplicate is rejected
	assert.Equal(t, 2, result.Errors[0].Index)
	assert.Equal(t, "sku", result.Errors[0].Field)
	assert.Equal(t, errs.Unique, result.Errors[0].Code)
}

func TestBulkCreate_PersistedSKU(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateVariant(t, "TAKEN", "red", "small")

	result, err := env.bulk.BulkCreate(env.product.ID, []BulkVariantInput{
		{SKU: "TAKEN", Attributes: env.attrs("blue", "small")},
		{SKU: "FREE", Attributes: env.attrs("green", "small")},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 0, result.Errors[0].Index)
	assert.Equal(t, errs.Unique, result.Errors[0].Code)
}

func TestBulkCreate_BlankSKU(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.bulk.BulkCreate(env.product.ID, []BulkVariantInput{
		{SKU: "", Attributes: env.attrs("red", "small")},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "sku", result.Errors[0].Field)
	assert.Equal(t, errs.Required, result.Errors[0].Code)
}

func TestBulkCreate_DuplicatedAttributesWithinBatch(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.bulk.BulkCreate(env.product.ID, []BulkVariantInput{
		{SKU: "BULK-1", Attributes: env.attrs("red", "small")},
		{SKU: "BULK-2", Attributes: env.attrs("red", "small")},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].Index)
	assert.Equal(t, "attributes", result.Errors[0].Field)
	assert.Equal(t, errs.DuplicatedInputItem, result.Errors[0].Code)
}

func TestBulkCreate_DuplicatedAttributesWithPersistedVariant(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateVariant(t, "SKU-1", "red", "small")

	result, err := env.bulk.BulkCreate(env.product.ID, []BulkVariantInput{
		{SKU: "BULK-1", Attributes: env.attrs("red", "small")},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, errs.DuplicatedInputItem, result.Errors[0].Code)
}

func TestBulkCreate_DuplicatedWarehouses(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.bulk.BulkCreate(env.product.ID, []BulkVariantInput{
		{
			SKU:        "BULK-1",
			Attributes: env.attrs("red", "small"),
			Stocks: []StockInput{
				{WarehouseID: env.warehouse1.ID, Quantity: 10},
				{WarehouseID: env.warehouse1.ID, Quantity: 15},
			},
		},
		{
			SKU:        "BULK-2",
			Attributes: env.attrs("blue", "small"),
			Stocks:     []StockInput{{WarehouseID: env.warehouse1.ID, Quantity: 10}},
		},
	})

	require.NoError(t, err)

	// the clean sibling still commits
	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Variants, 1)
	assert.Equal(t, "BULK-2", result.Variants[0].SKU)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, 0, result.Errors[0].Index)
	assert.Equal(t, "stocks", result.Errors[0].Field)
	assert.Equal(t, errs.DuplicatedInputItem, result.Errors[0].Code)
	assert.Equal(t, []string{env.warehouse1.ID}, result.Errors[0].Warehouses)
}

func TestBulkCreate_UnknownWarehouse(t *testing.T) {
	env := newTestEnv(t)
	unknown := "00000000-0000-0000-0000-000000000000"

	result, err := env.bulk.BulkCreate(env.product.ID, []BulkVariantInput{
		{
			SKU:        "BULK-1",
			Attributes: env.attrs("red", "small"),
			Stocks:     []StockInput{{WarehouseID: unknown, Quantity: 10}},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "stocks", result.Errors[0].Field)
	assert.Equal(t, errs.NotFound, result.Errors[0].Code)
	assert.Equal(t, []string{unknown}, result.Errors[0].Warehouses)
}

func TestBulkCreate_DuplicatedChannels(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.bulk.BulkCreate(env.product.ID, []BulkVariantInput{
		{
			SKU:        "BULK-1",
			Attributes: env.attrs("red", "small"),
			ChannelListings: []ChannelListingInput{
				{ChannelID: env.channelUSD.ID, Price: decimal.RequireFromString("10.00")},
				{ChannelID: env.channelUSD.ID, Price: decimal.RequireFromString("12.00")},
			},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "channelListings", result.Errors[0].Field)
	assert.Equal(t, errs.DuplicatedInputItem, result.Errors[0].Code)
	assert.Equal(t, []string{env.channelUSD.ID}, result.Errors[0].Channels)
}

func TestBulkCreate_ProductNotAssignedToChannel(t *testing.T) {
	env := newTestEnv(t)

	// the product is only assigned to the USD channel
	result, err := env.bulk.BulkCreate(env.product.ID, []BulkVariantInput{
		{
			SKU:        "BULK-1",
			Attributes: env.attrs("red", "small"),
			ChannelListings: []ChannelListingInput{
				{ChannelID: env.channelKRW.ID, Price: decimal.RequireFromString("10000")},
			},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "channelId", result.Errors[0].Field)
	assert.Equal(t, errs.ProductNotAssignedToChannel, result.Errors[0].Code)
	assert.Equal(t, []string{env.channelKRW.ID}, result.Errors[0].Channels)
}

func TestBulkCreate_PricePrecision(t *testing.T) {
	env := newTestEnv(t)
	env.assignToChannel(t, env.channelKRW.ID)

	result, err := env.bulk.BulkCreate(env.product.ID, []BulkVariantInput{
		{
			SKU:        "BULK-1",
			Attributes: env.attrs("red", "small"),
			ChannelListings: []ChannelListingInput{
				{ChannelID: env.channelUSD.ID, Price: decimal.RequireFromString("10.1234")},
				{ChannelID: env.channelKRW.ID, Price: decimal.RequireFromString("10000.5")},
			},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)

	// one error per violating channel
	require.Len(t, result.Errors, 2)
	channels := make([]string, 0, 2)
	for _, bulkErr := range result.Errors {
		assert.Equal(t, 0, bulkErr.Index)
		assert.Equal(t, "price", bulkErr.Field)
		assert.Equal(t, errs.Invalid, bulkErr.Code)
		require.Len(t, bulkErr.Channels, 1)
		channels = append(channels, bulkErr.Channels[0])
	}
	assert.ElementsMatch(t, []string{env.channelUSD.ID, env.channelKRW.ID}, channels)
}

func TestBulkCreate_NegativePrice(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.bulk.BulkCreate(env.product.ID, []BulkVariantInput{
		{
			SKU:        "BULK-1",
			Attributes: env.attrs("red", "small"),
			ChannelListings: []ChannelListingInput{
				{ChannelID: env.channelUSD.ID, Price: decimal.RequireFromString("-1")},
			},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "price", result.Errors[0].Field)
	assert.Equal(t, errs.Invalid, result.Errors[0].Code)
	assert.Equal(t, "Product price cannot be lower than 0.", result.Errors[0].Message)
}

func TestBulkCreate_PartialSuccessMixedBatch(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.bulk.BulkCreate(env.product.ID, []BulkVariantInput{
		{SKU: "OK-1", Attributes: env.attrs("red", "small")},
		{SKU: "", Attributes: env.attrs("blue", "small")},
		{SKU: "OK-2", Attributes: env.attrs("green", "small")},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Variants, 2)
	assert.Equal(t, "OK-1", result.Variants[0].SKU)
	assert.Equal(t, "OK-2", result.Variants[1].SKU)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].Index)
}

func TestBulkCreate_ProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.bulk.BulkCreate("00000000-0000-0000-0000-000000000000", []BulkVariantInput{
		{SKU: "BULK-1", Attributes: env.attrs("red", "small")},
	})

	assert.ErrorIs(t, err, ErrProductNotFound)
}
