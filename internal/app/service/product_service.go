package service

import (
	"errors"

	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/internal/app/repository"
	"gorm.io/gorm"
)

type ProductService interface {
	GetProduct(id string) (*model.Product, error)
	ListProducts() ([]model.Product, error)
	ListAttributes() ([]model.Attribute, error)
	ListChannels() ([]model.Channel, error)
	ListWarehouses() ([]model.Warehouse, error)
}

type productService struct {
	productRepo   repository.ProductRepository
	attributeRepo repository.AttributeRepository
	channelRepo   repository.ChannelRepository
	warehouseRepo repository.WarehouseRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	attributeRepo repository.AttributeRepository,
	channelRepo repository.ChannelRepository,
	warehouseRepo repository.WarehouseRepository,
) ProductService {
	return &productService{
		productRepo:   productRepo,
		attributeRepo: attributeRepo,
		channelRepo:   channelRepo,
		warehouseRepo: warehouseRepo,
	}
}

func (s *productService) GetProduct(id string) (*model.Product, error) {
	product, err := s.productRepo.FindByIDWithVariants(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) ListAttributes() ([]model.Attribute, error) {
	return s.attributeRepo.FindAll()
}

func (s *productService) ListChannels() ([]model.Channel, error) {
	return s.channelRepo.FindAll()
}

func (s *productService) ListWarehouses() ([]model.Warehouse, error) {
	return s.warehouseRepo.FindAll()
}
