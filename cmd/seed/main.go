package main

import (
	"fmt"
	"log"
	"time"

	"github.com/yhkang/stylehub-backend/config"
	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/internal/app/repository"
	"github.com/yhkang/stylehub-backend/internal/db"
	"github.com/yhkang/stylehub-backend/internal/middleware"
	"github.com/yhkang/stylehub-backend/pkg/util"
)

// Seeds a minimal demo catalog and prints a staff token for exercising the
// variant endpoints by hand.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	gormDB := db.GetDB()
	attributeRepo := repository.NewAttributeRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	color := model.Attribute{Name: "color", Slug: "color"}
	if err := attributeRepo.Create(&color); err != nil {
		log.Fatal("Failed to create color attribute:", err)
	}
	size := model.Attribute{Name: "size", Slug: "size"}
	if err := attributeRepo.Create(&size); err != nil {
		log.Fatal("Failed to create size attribute:", err)
	}

	productType := model.ProductType{Name: "T-Shirt", Slug: "t-shirt"}
	if err := gormDB.Create(&productType).Error; err != nil {
		log.Fatal("Failed to create product type:", err)
	}
	for i, attributeID := range []string{color.ID, size.ID} {
		row := model.ProductTypeVariantAttribute{
			ProductTypeID: productType.ID,
			AttributeID:   attributeID,
			SortOrder:     i,
		}
		if err := gormDB.Create(&row).Error; err != nil {
			log.Fatal("Failed to bind variant attribute:", err)
		}
	}

	product := model.Product{
		ProductTypeID: productType.ID,
		Name:          "Classic Crewneck Tee",
		Slug:          "classic-crewneck-tee",
		Description:   "Heavyweight cotton tee in seasonal colors.",
	}
	if err := productRepo.Create(&product); err != nil {
		log.Fatal("Failed to create product:", err)
	}

	channels := []model.Channel{
		{Name: "Webstore US", Slug: "webstore-us", CurrencyCode: "USD", IsActive: true},
		{Name: "Webstore KR", Slug: "webstore-kr", CurrencyCode: "KRW", IsActive: true},
	}
	for i := range channels {
		if err := gormDB.Create(&channels[i]).Error; err != nil {
			log.Fatal("Failed to create channel:", err)
		}
		if err := productRepo.AddChannelListing(&model.ProductChannelListing{
			ProductID: product.ID,
			ChannelID: channels[i].ID,
		}); err != nil {
			log.Fatal("Failed to assign product to channel:", err)
		}
	}

	warehouses := []model.Warehouse{
		{Name: "Seoul DC", Slug: "seoul-dc"},
		{Name: "Busan DC", Slug: "busan-dc"},
	}
	for i := range warehouses {
		if err := gormDB.Create(&warehouses[i]).Error; err != nil {
			log.Fatal("Failed to create warehouse:", err)
		}
	}

	token, err := util.GenerateToken(
		"seed-admin@stylehub.io",
		[]string{middleware.PermissionManageProducts},
		cfg.JWT.Secret,
		24*time.Hour,
	)
	if err != nil {
		log.Fatal("Failed to generate staff token:", err)
	}

	fmt.Println("Seed complete.")
	fmt.Printf("  product:    %s (%s)\n", product.Name, product.ID)
	fmt.Printf("  attributes: color=%s size=%s\n", color.ID, size.ID)
	for _, ch := range channels {
		fmt.Printf("  channel:    %s (%s, %s)\n", ch.Slug, ch.ID, ch.CurrencyCode)
	}
	for _, w := range warehouses {
		fmt.Printf("  warehouse:  %s (%s)\n", w.Slug, w.ID)
	}
	fmt.Printf("  staff token (24h): %s\n", token)
}
