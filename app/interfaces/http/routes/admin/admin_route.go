package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go/godeltaprof"

	"loopware.io/user-directory/app/infrastructure/cache"
	"loopware.io/user-directory/app/interfaces/http/middleware"
	"loopware.io/user-directory/app/interfaces/http/responses"
	"loopware.io/user-directory/app/utils/logger"
)

// AdminRoute exposes operator-only cache and profiling endpoints.
type AdminRoute struct {
	cacheService cache.CacheService
	heapProfiler *godeltaprof.HeapProfiler
}

func NewAdminRoute(cacheService cache.CacheService) *AdminRoute {
	return &AdminRoute{
		cacheService: cacheService,
		heapProfiler: godeltaprof.NewHeapProfiler(),
	}
}

func (route *AdminRoute) RegisterRouter(router gin.IRouter) {
	adminRouter := router.Group("/admin", middleware.AdminKeyMiddleware())
	adminRouter.POST("/cache/invalidate", route.InvalidateCache)
	adminRouter.GET("/cache/keys", route.ListCacheKeys)
	adminRouter.GET("/debug/delta_heap", route.DeltaHeapProfile)
}

// CacheInvalidateResponse represents the result of a cache invalidation request.
type CacheInvalidateResponse struct {
	Object  string `json:"object"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// InvalidateCache godoc
// @Summary     Flush the whole cache
// @Description Operator escape hatch. Normal writes invalidate only their own
// @Description key families and never need this.
// @Tags        admin
// @Produce     json
// @Success     200 {object} CacheInvalidateResponse
// @Router      /admin/cache/invalidate [post]
func (route *AdminRoute) InvalidateCache(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	if err := route.cacheService.FlushAll(ctx); err != nil {
		logger.GetLogger().Errorf("admin cache: failed to flush cache: %v", err)
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "b0c4f1c8-2a3b-4ad4-8b1d-7a2124d7c7b1",
			Error: "failed to invalidate cache",
		})
		return
	}

	reqCtx.JSON(http.StatusOK, CacheInvalidateResponse{
		Object:  "cache.invalidation",
		Status:  "ok",
		Message: "cache invalidated",
	})
}

// ListCacheKeys godoc
// @Summary     List cache keys by pattern
// @Tags        admin
// @Produce     json
// @Param       pattern query string false "glob pattern, defaults to *"
// @Success     200 {object} responses.GeneralResponse[[]string]
// @Router      /admin/cache/keys [get]
func (route *AdminRoute) ListCacheKeys(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	pattern := reqCtx.DefaultQuery("pattern", "*")
	keys, err := route.cacheService.Keys(ctx, pattern)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "4e6a8c0b-1d3f-45a7-b9c1-d2e4f6a8b0c3",
			Error: err.Error(),
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[[]string]{
		Status: responses.ResponseStatusOk,
		Result: keys,
	})
}

// DeltaHeapProfile streams a delta heap profile in pprof format.
func (route *AdminRoute) DeltaHeapProfile(reqCtx *gin.Context) {
	reqCtx.Header("Content-Type", "application/octet-stream")
	if err := route.heapProfiler.Profile(reqCtx.Writer); err != nil {
		logger.GetLogger().Errorf("admin debug: failed to write heap profile: %v", err)
		reqCtx.AbortWithStatus(http.StatusInternalServerError)
	}
}
