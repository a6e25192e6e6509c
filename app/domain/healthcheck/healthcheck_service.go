package healthcheck

import (
	"context"
	"time"

	"github.com/mileusna/crontab"
	"gorm.io/gorm"

	"loopware.io/user-directory/app/infrastructure/cache"
	"loopware.io/user-directory/app/utils/logger"
	"loopware.io/user-directory/config/environment_variables"
)

// Service periodically verifies that both external collaborators, the
// record store and the cache store, are reachable.
type Service struct {
	db    *gorm.DB
	cache cache.CacheService
}

func NewService(db *gorm.DB, cacheService cache.CacheService) *Service {
	return &Service{
		db:    db,
		cache: cacheService,
	}
}

func (s *Service) Start(ctx context.Context, cron *crontab.Crontab) {
	schedule := environment_variables.EnvironmentVariables.HEALTHCHECK_CRON_MINUTE
	if schedule == "" {
		schedule = "* * * * *"
	}
	if err := cron.AddJob(schedule, func() {
		s.run(ctx)
	}); err != nil {
		logger.GetLogger().Errorf("healthcheck: failed to schedule job: %v", err)
	}
}

func (s *Service) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			logger.GetLogger().
				WithField("error_code", "3a7e74cb-9f6d-4f6a-9f60-2d6f6f1f4a11").
				Errorf("healthcheck: database unreachable: %v", err)
		}
	}

	if err := s.cache.HealthCheck(ctx); err != nil {
		logger.GetLogger().
			WithField("error_code", "fd27d70e-e761-49a5-9c17-55ad8bd09a6b").
			Errorf("healthcheck: cache unreachable: %v", err)
	}
}
