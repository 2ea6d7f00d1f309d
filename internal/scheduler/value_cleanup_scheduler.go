package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/yhkang/stylehub-backend/internal/app/repository"
	"github.com/yhkang/stylehub-backend/pkg/logger"
)

// ValueCleanupScheduler prunes attribute values that no variant references
// anymore. Values are created lazily during variant mutations, so rejected
// or re-assigned variants leave unused rows behind.
type ValueCleanupScheduler struct {
	cron          *cron.Cron
	attributeRepo repository.AttributeRepository
}

func NewValueCleanupScheduler(attributeRepo repository.AttributeRepository) *ValueCleanupScheduler {
	return &ValueCleanupScheduler{
		cron:          cron.New(),
		attributeRepo: attributeRepo,
	}
}

// Start schedules the nightly cleanup at 03:00.
func (s *ValueCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled attribute value cleanup", nil)

		deleted, err := s.attributeRepo.DeleteOrphanValues()
		if err != nil {
			logger.Error("Attribute value cleanup failed", err)
			return
		}

		logger.Info("Attribute value cleanup finished", map[string]interface{}{
			"deleted": deleted,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for attribute value cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Attribute value cleanup scheduler started (daily at 3:00 AM)", nil)
	return nil
}

func (s *ValueCleanupScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Attribute value cleanup scheduler stopped", nil)
}
