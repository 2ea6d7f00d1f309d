package repository

import (
	"github.com/yhkang/stylehub-backend/internal/app/model"
	"gorm.io/gorm"
)

type ChannelRepository interface {
	Create(channel *model.Channel) error
	FindByID(id string) (*model.Channel, error)
	FindByIDs(ids []string) ([]model.Channel, error)
	FindAll() ([]model.Channel, error)
}

type channelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db: db}
}

func (r *channelRepository) Create(channel *model.Channel) error {
	return r.db.Create(channel).Error
}

func (r *channelRepository) FindByID(id string) (*model.Channel, error) {
	var channel model.Channel
	if err := r.db.First(&channel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *channelRepository) FindByIDs(ids []string) ([]model.Channel, error) {
	var channels []model.Channel
	if len(ids) == 0 {
		return channels, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *channelRepository) FindAll() ([]model.Channel, error) {
	var channels []model.Channel
	if err := r.db.Order("name").Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}
