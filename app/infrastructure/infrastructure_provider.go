package infrastructure

import (
	"github.com/google/wire"

	"loopware.io/user-directory/app/infrastructure/cache"
	"loopware.io/user-directory/app/infrastructure/database"
)

var InfrastructureProvider = wire.NewSet(
	cache.NewCacheService,
	cache.NewInvalidator,
	database.NewDB,
)
