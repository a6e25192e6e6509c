package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loopware.io/user-directory/app/interfaces/http/routes/v1/blocks"
	"loopware.io/user-directory/app/interfaces/http/routes/v1/users"
	"loopware.io/user-directory/config"
)

type V1Route struct {
	userRoute  *users.UserRoute
	blockRoute *blocks.BlockRoute
}

func NewV1Route(
	userRoute *users.UserRoute,
	blockRoute *blocks.BlockRoute,
) *V1Route {
	return &V1Route{
		userRoute,
		blockRoute,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Route.userRoute.RegisterRouter(v1Router)
	v1Route.blockRoute.RegisterRouter(v1Router)
}

// GetVersion godoc
// @Summary     Get API build version
// @Description Returns the current build version of the API server.
// @Tags        system
// @Produce     json
// @Success     200 {object} map[string]string "version info"
// @Router      /v1/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": config.Version,
	})
}
