package routes

import (
	"github.com/google/wire"

	"loopware.io/user-directory/app/interfaces/http/routes/admin"
	v1 "loopware.io/user-directory/app/interfaces/http/routes/v1"
	"loopware.io/user-directory/app/interfaces/http/routes/v1/blocks"
	"loopware.io/user-directory/app/interfaces/http/routes/v1/users"
)

var RouteProvider = wire.NewSet(
	users.NewUserRoute,
	blocks.NewBlockRoute,
	v1.NewV1Route,
	admin.NewAdminRoute,
)
