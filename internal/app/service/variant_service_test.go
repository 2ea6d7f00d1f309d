package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yhkang/stylehub-backend/internal/app/model"
	errs "github.com/yhkang/stylehub-backend/internal/errors"
)

func TestCreateVariant_Success(t *testing.T) {
	env := newTestEnv(t)

	weight := 1.5
	variant, verrs, err := env.variants.CreateVariant(env.product.ID, CreateVariantInput{
		SKU:        "SHIRT-RED-S",
		Weight:     &weight,
		Attributes: env.attrs("red", "small"),
		Stocks: []StockInput{
			{WarehouseID: env.warehouse1.ID, Quantity: 20},
		},
	})

	require.NoError(t, err)
	require.Empty(t, verrs)
	require.NotNil(t, variant)

	assert.Equal(t, "SHIRT-RED-S", variant.SKU)
	assert.Equal(t, "red / small", variant.Name)
	assert.True(t, variant.TrackInventory)
	require.NotNil(t, variant.Weight)
	assert.Equal(t, 1.5, *variant.Weight)

	require.Len(t, variant.AttributeValues, 2)
	assert.Equal(t, "color", variant.AttributeValues[0].Attribute.Name)
	assert.Equal(t, "red", variant.AttributeValues[0].Value.Name)
	assert.Equal(t, "size", variant.AttributeValues[1].Attribute.Name)
	assert.Equal(t, "small", variant.AttributeValues[1].Value.Name)

	require.Len(t, variant.Stocks, 1)
	assert.Equal(t, env.warehouse1.ID, variant.Stocks[0].WarehouseID)
	assert.Equal(t, 20, variant.Stocks[0].Quantity)
	assert.Equal(t, 0, variant.Stocks[0].QuantityAllocated)
}

func TestCreateVariant_ProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.variants.CreateVariant("00000000-0000-0000-0000-000000000000", CreateVariantInput{
		SKU:        "SKU-1",
		Attributes: env.attrs("red", "small"),
	})

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateVariant_NegativeWeight(t *testing.T) {
	env := newTestEnv(t)

	weight := -1.0
	_, verrs, err := env.variants.CreateVariant(env.product.ID, CreateVariantInput{
		SKU:        "SKU-1",
		Weight:     &weight,
		Attributes: env.attrs("red", "small"),
	})

	require.NoError(t, err)
	require.Len(t, verrs, 1)
	assert.Equal(t, "weight", verrs[0].Field)
	assert.Equal(t, errs.Invalid, verrs[0].Code)
	assert.Equal(t, "Product variant can't have negative weight.", verrs[0].Message)
}

func TestCreateVariant_MissingAttribute(t *testing.T) {
	env := newTestEnv(t)

	_, verrs, err := env.variants.CreateVariant(env.product.ID, CreateVariantInput{
		SKU: "SKU-1",
		Attributes: []AttributeValueInput{
			{AttributeID: env.color.ID, Values: []string{"red"}},
		},
	})

	require.NoError(t, err)
	require.Len(t, verrs, 1)
	assert.Equal(t, errs.AttributesRequired, verrs[0].Code)
	assert.Contains(t, verrs[0].Message, "All attributes must take a value")
}

func TestCreateVariant_DuplicatedSKU(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateVariant(t, "SKU-1", "red", "small")

	_, verrs, err := env.variants.CreateVariant(env.product.ID, CreateVariantInput{
		SKU:        "SKU-1",
		Attributes: env.attrs("blue", "small"),
	})

	require.NoError(t, err)
	require.Len(t, verrs, 1)
	assert.Equal(t, "sku", verrs[0].Field)
	assert.Equal(t, errs.Unique, verrs[0].Code)
}

func TestCreateVariant_DuplicatedAttributeCombination(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateVariant(t, "SKU-1", "red", "small")

	_, verrs, err := env.variants.CreateVariant(env.product.ID, CreateVariantInput{
		SKU:        "SKU-2",
		Attributes: env.attrs("red", "small"),
	})

	require.NoError(t, err)
	require.Len(t, verrs, 1)
	assert.Equal(t, "attributes", verrs[0].Field)
	assert.Equal(t, errs.DuplicatedInputItem, verrs[0].Code)
}

func TestCreateVariant_SameValuesOtherProductAllowed(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateVariant(t, "SKU-1", "red", "small")

	other := model.Product{ProductTypeID: env.product.ProductTypeID, Name: "Linen Shirt", Slug: "linen-shirt"}
	require.NoError(t, env.productRepo.Create(&other))

	variant, verrs, err := env.variants.CreateVariant(other.ID, CreateVariantInput{
		SKU:        "SKU-2",
		Attributes: env.attrs("red", "small"),
	})

	require.NoError(t, err)
	require.Empty(t, verrs)
	assert.Equal(t, other.ID, variant.ProductID)
}

func TestUpdateVariant_ChangeValue(t *testing.T) {
	env := newTestEnv(t)
	variant := env.mustCreateVariant(t, "SKU-1", "red", "small")

	updated, verrs, err := env.variants.UpdateVariant(variant.ID, UpdateVariantInput{
		Attributes: env.attrs("red", "large"),
	})

	require.NoError(t, err)
	require.Empty(t, verrs)
	require.Len(t, updated.AttributeValues, 2)
	assert.Equal(t, "large", updated.AttributeValues[1].Value.Name)
	assert.Equal(t, "red / large", updated.Name)
}

func TestUpdateVariant_KeepOwnValuesPasses(t *testing.T) {
	env := newTestEnv(t)
	variant := env.mustCreateVariant(t, "SKU-1", "red", "small")

	// re-submitting the variant's own assignment is not a conflict
	updated, verrs, err := env.variants.UpdateVariant(variant.ID, UpdateVariantInput{
		Attributes: env.attrs("red", "small"),
	})

	require.NoError(t, err)
	require.Empty(t, verrs)
	assert.Equal(t, variant.ID, updated.ID)
}

func TestUpdateVariant_ConflictsWithSibling(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateVariant(t, "SKU-1", "red", "small")
	variant := env.mustCreateVariant(t, "SKU-2", "blue", "small")

	_, verrs, err := env.variants.UpdateVariant(variant.ID, UpdateVariantInput{
		Attributes: env.attrs("red", "small"),
	})

	require.NoError(t, err)
	require.Len(t, verrs, 1)
	assert.Equal(t, errs.DuplicatedInputItem, verrs[0].Code)
	assert.Equal(t, "attributes", verrs[0].Field)
}

func TestUpdateVariant_EmptyInputPasses(t *testing.T) {
	env := newTestEnv(t)
	variant := env.mustCreateVariant(t, "SKU-1", "red", "small")

	// an empty update body runs no attribute validation at all
	updated, verrs, err := env.variants.UpdateVariant(variant.ID, UpdateVariantInput{})

	require.NoError(t, err)
	require.Empty(t, verrs)
	assert.Equal(t, variant.SKU, updated.SKU)
	require.Len(t, updated.AttributeValues, 2)
}

func TestUpdateVariant_SKUTakenBySibling(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateVariant(t, "SKU-1", "red", "small")
	variant := env.mustCreateVariant(t, "SKU-2", "blue", "small")

	taken := "SKU-1"
	_, verrs, err := env.variants.UpdateVariant(variant.ID, UpdateVariantInput{SKU: &taken})

	require.NoError(t, err)
	require.Len(t, verrs, 1)
	assert.Equal(t, "sku", verrs[0].Field)
	assert.Equal(t, errs.Unique, verrs[0].Code)
}

func TestDeleteVariant_RemovesChildren(t *testing.T) {
	env := newTestEnv(t)

	variant, verrs, err := env.variants.CreateVariant(env.product.ID, CreateVariantInput{
		SKU:        "SKU-1",
		Attributes: env.attrs("red", "small"),
		Stocks:     []StockInput{{WarehouseID: env.warehouse1.ID, Quantity: 5}},
	})
	require.NoError(t, err)
	require.Empty(t, verrs)

	deleted, err := env.variants.DeleteVariant(variant.ID)
	require.NoError(t, err)
	assert.Equal(t, "SKU-1", deleted.SKU)

	_, err = env.variants.GetVariant(variant.ID)
	assert.ErrorIs(t, err, ErrVariantNotFound)

	var stockCount int64
	require.NoError(t, env.db.Model(&model.Stock{}).Where("variant_id = ?", variant.ID).Count(&stockCount).Error)
	assert.EqualValues(t, 0, stockCount)

	var assignmentCount int64
	require.NoError(t, env.db.Model(&model.VariantAttributeValue{}).Where("variant_id = ?", variant.ID).Count(&assignmentCount).Error)
	assert.EqualValues(t, 0, assignmentCount)
}

func TestDeleteVariant_DraftOrderLinesDeleted(t *testing.T) {
	env := newTestEnv(t)
	variant := env.mustCreateVariant(t, "SKU-1", "red", "small")
	order := env.seedOrder(t, "D-001", model.OrderStatusDraft, variant)

	_, err := env.variants.DeleteVariant(variant.ID)
	require.NoError(t, err)

	var lineCount int64
	require.NoError(t, env.db.Model(&model.OrderLine{}).Where("order_id = ?", order.ID).Count(&lineCount).Error)
	assert.EqualValues(t, 0, lineCount)

	// the order itself survives, only its lines go
	var orderCount int64
	require.NoError(t, env.db.Model(&model.Order{}).Where("id = ?", order.ID).Count(&orderCount).Error)
	assert.EqualValues(t, 1, orderCount)
}

func TestDeleteVariant_NonDraftLinesDetached(t *testing.T) {
	env := newTestEnv(t)
	variant := env.mustCreateVariant(t, "SKU-1", "red", "small")
	order := env.seedOrder(t, "O-001", model.OrderStatusUnfulfilled, variant)

	_, err := env.variants.DeleteVariant(variant.ID)
	require.NoError(t, err)

	var lines []model.OrderLine
	require.NoError(t, env.db.Where("order_id = ?", order.ID).Find(&lines).Error)
	require.Len(t, lines, 1)

	assert.Nil(t, lines[0].VariantID)
	assert.Equal(t, "SKU-1", lines[0].SKU)
	assert.Equal(t, "Oxford Shirt", lines[0].ProductName)
}

func TestDeleteVariant_MixedOrders(t *testing.T) {
	env := newTestEnv(t)
	variant := env.mustCreateVariant(t, "SKU-1", "red", "small")
	draft := env.seedOrder(t, "D-001", model.OrderStatusDraft, variant)
	placed := env.seedOrder(t, "O-001", model.OrderStatusFulfilled, variant)

	_, err := env.variants.DeleteVariant(variant.ID)
	require.NoError(t, err)

	var draftLines, placedLines int64
	require.NoError(t, env.db.Model(&model.OrderLine{}).Where("order_id = ?", draft.ID).Count(&draftLines).Error)
	require.NoError(t, env.db.Model(&model.OrderLine{}).Where("order_id = ?", placed.ID).Count(&placedLines).Error)
	assert.EqualValues(t, 0, draftLines)
	assert.EqualValues(t, 1, placedLines)
}
