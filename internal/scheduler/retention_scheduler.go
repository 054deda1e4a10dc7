package scheduler

import (
	"time"

	"github.com/jshin/cookshare-backend/internal/app/model"
	"github.com/jshin/cookshare-backend/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// RetentionScheduler permanently purges recipes that have been soft-deleted
// for longer than the retention window.
type RetentionScheduler struct {
	cron      *cron.Cron
	db        *gorm.DB
	retention time.Duration
}

func NewRetentionScheduler(db *gorm.DB, retention time.Duration) *RetentionScheduler {
	return &RetentionScheduler{
		cron:      cron.New(),
		db:        db,
		retention: retention,
	}
}

// Start schedules the purge to run nightly at 03:00.
func (s *RetentionScheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		if _, err := s.PurgeDeletedRecipes(); err != nil {
			logger.Error("Scheduled recipe purge failed", err)
		}
	})
	if err != nil {
		logger.Error("Failed to add cron job for recipe purge", err)
		return err
	}

	s.cron.Start()
	logger.Info("Retention scheduler started (nightly at 3:00 AM)", map[string]interface{}{
		"retention": s.retention.String(),
	})

	return nil
}

// PurgeDeletedRecipes hard-deletes soft-deleted recipes past retention and
// returns how many rows went. Ingredient lines, tag links and marks are
// already gone by the time a recipe is soft-deleted, so only the recipe rows
// themselves remain to purge.
func (s *RetentionScheduler) PurgeDeletedRecipes() (int64, error) {
	cutoff := time.Now().Add(-s.retention)

	logger.Info("Starting recipe purge", map[string]interface{}{
		"cutoff": cutoff.Format(time.RFC3339),
	})

	result := s.db.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(&model.Recipe{})
	if result.Error != nil {
		return 0, result.Error
	}

	logger.Info("Recipe purge completed", map[string]interface{}{
		"purged": result.RowsAffected,
	})
	return result.RowsAffected, nil
}

func (s *RetentionScheduler) Stop() {
	logger.Info("Stopping retention scheduler...", nil)
	s.cron.Stop()
	logger.Info("Retention scheduler stopped", nil)
}
