package domain

import (
	"github.com/google/wire"

	"loopware.io/user-directory/app/domain/block"
	"loopware.io/user-directory/app/domain/healthcheck"
	"loopware.io/user-directory/app/domain/user"
)

var ServiceProvider = wire.NewSet(
	user.NewService,
	block.NewService,
	healthcheck.NewService,
)
