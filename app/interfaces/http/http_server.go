package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"loopware.io/user-directory/app/interfaces/http/middleware"
	"loopware.io/user-directory/app/interfaces/http/routes/admin"
	v1 "loopware.io/user-directory/app/interfaces/http/routes/v1"
	"loopware.io/user-directory/app/utils/logger"
	"loopware.io/user-directory/config/environment_variables"
)

type HttpServer struct {
	engine     *gin.Engine
	v1Route    *v1.V1Route
	adminRoute *admin.AdminRoute
}

func NewHttpServer(v1Route *v1.V1Route, adminRoute *admin.AdminRoute) *HttpServer {
	gin.SetMode(gin.ReleaseMode)
	server := HttpServer{
		engine:     gin.New(),
		v1Route:    v1Route,
		adminRoute: adminRoute,
	}
	server.engine.Use(
		gin.Recovery(),
		middleware.LoggerMiddleware(logger.GetLogger()),
		middleware.CORS(),
	)
	server.engine.GET("/health-check", func(c *gin.Context) {
		c.JSON(200, "ok")
	})
	server.engine.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return &server
}

func (httpServer *HttpServer) Run() error {
	port := environment_variables.EnvironmentVariables.SERVER_PORT
	if port == 0 {
		port = 8080
	}
	httpServer.v1Route.RegisterRouter(httpServer.engine.Group("/"))
	httpServer.adminRoute.RegisterRouter(httpServer.engine.Group("/"))
	if err := httpServer.engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		return err
	}
	return nil
}
