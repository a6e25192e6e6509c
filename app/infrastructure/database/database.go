package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"

	"loopware.io/user-directory/app/infrastructure/cache"
	"loopware.io/user-directory/app/utils/logger"
	"loopware.io/user-directory/config/environment_variables"
)

var SchemaRegistry []interface{}

func RegisterSchemaForAutoMigrate(models ...interface{}) {
	SchemaRegistry = append(SchemaRegistry, models...)
}

// NewDB opens the Postgres store, registers the optional read replica and
// runs auto-migration. Migration is guarded by a distributed mutex so
// concurrent instances do not race DDL; a nil mutex (in-process cache)
// means there is nothing to coordinate with.
func NewDB(cacheService cache.CacheService) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(environment_variables.EnvironmentVariables.DB_POSTGRESQL_DSN), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		logger.GetLogger().
			WithField("error_code", "1f1f8f0a-95cf-4f20-9df3-8a07c7d5af41").
			Errorf("unable to connect to database: %v", err)
		return nil, err
	}

	if readDSN := environment_variables.EnvironmentVariables.DB_POSTGRESQL_READ_DSN; readDSN != "" {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(readDSN)},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			logger.GetLogger().
				WithField("error_code", "c7b5f9be-4a86-4f43-9736-80fb62db3f4f").
				Errorf("unable to register read replica: %v", err)
			return nil, err
		}
	}

	if environment_variables.EnvironmentVariables.AUTO_MIGRATE {
		if err := autoMigrate(db, cacheService); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func autoMigrate(db *gorm.DB, cacheService cache.CacheService) error {
	mutex := cacheService.NewMutex("v1:migration:lock")
	if mutex != nil {
		if err := mutex.Lock(); err != nil {
			logger.GetLogger().
				WithField("error_code", "5b0b0f9e-40d4-4be6-9df0-6e1a9e2d9c55").
				Errorf("unable to acquire migration lock: %v", err)
			return err
		}
		defer func() {
			if _, err := mutex.Unlock(); err != nil {
				logger.GetLogger().Errorf("failed to release migration lock: %v", err)
			}
		}()
	}

	for _, model := range SchemaRegistry {
		if err := db.AutoMigrate(model); err != nil {
			logger.GetLogger().
				WithField("error_code", "9bb7ce0d-53d2-4b7c-8c3a-1f2e1a6aa0d2").
				Errorf("failed to auto migrate schema: %T, error: %v", model, err)
			return err
		}
	}
	return nil
}
