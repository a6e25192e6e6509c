package repository

import (
	"github.com/google/wire"

	"loopware.io/user-directory/app/domain/block"
	"loopware.io/user-directory/app/domain/user"
	"loopware.io/user-directory/app/infrastructure/database/repository/blockrepo"
	"loopware.io/user-directory/app/infrastructure/database/repository/userrepo"
)

var RepositoryProvider = wire.NewSet(
	userrepo.NewUserGormRepository,
	blockrepo.NewBlockGormRepository,
	wire.Bind(new(block.BlockRepository), new(*blockrepo.BlockGormRepository)),
	wire.Bind(new(user.BlockedIDsProvider), new(*blockrepo.BlockGormRepository)),
)
