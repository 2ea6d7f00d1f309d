package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/internal/app/repository"
	"github.com/yhkang/stylehub-backend/internal/db"
	"gorm.io/gorm"
)

// testEnv wires the services against an in-memory database seeded with a
// small catalog: a shirt product whose type selects by color and size, two
// channels (USD and KRW) and two warehouses. The product is assigned to the
// USD channel only.
type testEnv struct {
	db *gorm.DB

	attributeRepo repository.AttributeRepository
	productRepo   repository.ProductRepository
	variantRepo   repository.VariantRepository
	stockRepo     repository.StockRepository
	orderRepo     repository.OrderRepository

	variants VariantService
	bulk     VariantBulkService
	stocks   StockService
	listings ListingService
	products ProductService
	export   ExportService

	color model.Attribute
	size  model.Attribute

	product    model.Product
	channelUSD model.Channel
	channelKRW model.Channel
	warehouse1 model.Warehouse
	warehouse2 model.Warehouse
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gormDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(gormDB) })

	env := &testEnv{
		db:            gormDB,
		attributeRepo: repository.NewAttributeRepository(gormDB),
		productRepo:   repository.NewProductRepository(gormDB),
		variantRepo:   repository.NewVariantRepository(gormDB),
		stockRepo:     repository.NewStockRepository(gormDB),
		orderRepo:     repository.NewOrderRepository(gormDB),
	}
	warehouseRepo := repository.NewWarehouseRepository(gormDB)
	channelRepo := repository.NewChannelRepository(gormDB)
	listingRepo := repository.NewListingRepository(gormDB)
	notifier := NewNoopNotifier()

	env.variants = NewVariantService(gormDB, env.productRepo, env.variantRepo, env.attributeRepo, warehouseRepo, env.orderRepo, notifier)
	env.bulk = NewVariantBulkService(gormDB, env.productRepo, env.variantRepo, env.attributeRepo, warehouseRepo, channelRepo, notifier)
	env.stocks = NewStockService(env.variantRepo, env.stockRepo, warehouseRepo, notifier)
	env.listings = NewListingService(env.variantRepo, env.productRepo, channelRepo, listingRepo, notifier)
	env.products = NewProductService(env.productRepo, env.attributeRepo, channelRepo, warehouseRepo)
	env.export = NewExportService(env.variantRepo)

	env.color = model.Attribute{Name: "color", Slug: "color"}
	require.NoError(t, env.attributeRepo.Create(&env.color))
	env.size = model.Attribute{Name: "size", Slug: "size"}
	require.NoError(t, env.attributeRepo.Create(&env.size))

	productType := model.ProductType{Name: "Shirt", Slug: "shirt"}
	require.NoError(t, gormDB.Create(&productType).Error)
	require.NoError(t, gormDB.Create(&model.ProductTypeVariantAttribute{
		ProductTypeID: productType.ID, AttributeID: env.color.ID, SortOrder: 0,
	}).Error)
	require.NoError(t, gormDB.Create(&model.ProductTypeVariantAttribute{
		ProductTypeID: productType.ID, AttributeID: env.size.ID, SortOrder: 1,
	}).Error)

	env.product = model.Product{ProductTypeID: productType.ID, Name: "Oxford Shirt", Slug: "oxford-shirt"}
	require.NoError(t, env.productRepo.Create(&env.product))

	env.channelUSD = model.Channel{Name: "Webstore US", Slug: "webstore-us", CurrencyCode: "USD", IsActive: true}
	require.NoError(t, channelRepo.Create(&env.channelUSD))
	env.channelKRW = model.Channel{Name: "Webstore KR", Slug: "webstore-kr", CurrencyCode: "KRW", IsActive: true}
	require.NoError(t, channelRepo.Create(&env.channelKRW))
	require.NoError(t, env.productRepo.AddChannelListing(&model.ProductChannelListing{
		ProductID: env.product.ID, ChannelID: env.channelUSD.ID,
	}))

	env.warehouse1 = model.Warehouse{Name: "Seoul DC", Slug: "seoul-dc"}
	require.NoError(t, warehouseRepo.Create(&env.warehouse1))
	env.warehouse2 = model.Warehouse{Name: "Busan DC", Slug: "busan-dc"}
	require.NoError(t, warehouseRepo.Create(&env.warehouse2))

	return env
}

// selection returns the product type's variant-selection attributes in
// their configured order.
func (e *testEnv) selection() []model.Attribute {
	return []model.Attribute{e.color, e.size}
}

// attrs builds a complete color+size assignment input.
func (e *testEnv) attrs(color, size string) []AttributeValueInput {
	return []AttributeValueInput{
		{AttributeID: e.color.ID, Values: []string{color}},
		{AttributeID: e.size.ID, Values: []string{size}},
	}
}

// mustCreateVariant persists a variant through the service, failing the test
// on any validation or infrastructure error.
func (e *testEnv) mustCreateVariant(t *testing.T, sku, color, size string) *model.ProductVariant {
	t.Helper()
	variant, verrs, err := e.variants.CreateVariant(e.product.ID, CreateVariantInput{
		SKU:        sku,
		Attributes: e.attrs(color, size),
	})
	require.NoError(t, err)
	require.Empty(t, verrs)
	return variant
}

// assignToChannel assigns the test product to an extra channel.
func (e *testEnv) assignToChannel(t *testing.T, channelID string) {
	t.Helper()
	require.NoError(t, e.productRepo.AddChannelListing(&model.ProductChannelListing{
		ProductID: e.product.ID, ChannelID: channelID,
	}))
}

// seedOrder creates an order in the given status with one line referencing
// the variant.
func (e *testEnv) seedOrder(t *testing.T, number string, status model.OrderStatus, variant *model.ProductVariant) *model.Order {
	t.Helper()
	order := model.Order{Number: number, Status: status}
	require.NoError(t, e.orderRepo.Create(&order))
	require.NoError(t, e.orderRepo.CreateLine(&model.OrderLine{
		OrderID:     order.ID,
		VariantID:   &variant.ID,
		ProductName: "Oxford Shirt",
		VariantName: variant.Name,
		SKU:         variant.SKU,
		Quantity:    1,
		Currency:    "USD",
	}))
	return &order
}
