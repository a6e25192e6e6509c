package blocks

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"loopware.io/user-directory/app/domain/auth"
	"loopware.io/user-directory/app/domain/block"
	"loopware.io/user-directory/app/interfaces/http/middleware"
	"loopware.io/user-directory/app/interfaces/http/responses"
)

// BlockRoute exposes the block relation. The blocker is always the
// authenticated requester; it is never taken from the URL.
type BlockRoute struct {
	blockService *block.BlockService
}

func NewBlockRoute(blockService *block.BlockService) *BlockRoute {
	return &BlockRoute{
		blockService,
	}
}

func (route *BlockRoute) RegisterRouter(router gin.IRouter) {
	blocksRouter := router.Group("/blocks", middleware.AuthMiddleware())
	blocksRouter.GET("", route.List)
	blocksRouter.POST("/:blockedId", route.Block)
	blocksRouter.DELETE("/:blockedId", route.Unblock)
}

// List godoc
// @Summary     List the requester's blocks
// @Tags        blocks
// @Produce     json
// @Success     200 {object} responses.GeneralResponse[[]block.Block]
// @Security    BearerAuth
// @Router      /v1/blocks [get]
func (route *BlockRoute) List(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	requesterID, ok := requireRequester(reqCtx)
	if !ok {
		return
	}

	blocks, err := route.blockService.ListBlocked(ctx, requesterID)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "0c1de2f3-a4b5-4c6d-8e7f-9a0b1c2d3e4f",
			Error: err.Error(),
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[[]*block.Block]{
		Status: responses.ResponseStatusOk,
		Result: blocks,
	})
}

// Block godoc
// @Summary     Block a user
// @Description Hides the blocked user from the requester's search results.
// @Tags        blocks
// @Produce     json
// @Param       blockedId path int true "id of the user to block"
// @Success     200 {object} responses.GeneralResponse[block.Block]
// @Failure     400 {object} responses.ErrorResponse
// @Security    BearerAuth
// @Router      /v1/blocks/{blockedId} [post]
func (route *BlockRoute) Block(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	requesterID, ok := requireRequester(reqCtx)
	if !ok {
		return
	}
	blockedID, ok := parseBlockedID(reqCtx)
	if !ok {
		return
	}

	created, err := route.blockService.BlockUser(ctx, requesterID, blockedID)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "e5d4c3b2-a190-4f8e-b7d6-c5a4b3e2d1f0",
			Error: err.Error(),
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[*block.Block]{
		Status: responses.ResponseStatusOk,
		Result: created,
	})
}

// Unblock godoc
// @Summary     Unblock a user
// @Description Removes every block row for the pair; unblocking a user who
// @Description was never blocked succeeds.
// @Tags        blocks
// @Produce     json
// @Param       blockedId path int true "id of the user to unblock"
// @Success     200 {object} responses.GeneralResponse[string]
// @Security    BearerAuth
// @Router      /v1/blocks/{blockedId} [delete]
func (route *BlockRoute) Unblock(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	requesterID, ok := requireRequester(reqCtx)
	if !ok {
		return
	}
	blockedID, ok := parseBlockedID(reqCtx)
	if !ok {
		return
	}

	if err := route.blockService.UnblockUser(ctx, requesterID, blockedID); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "f0e1d2c3-b4a5-4968-8776-655443322110",
			Error: err.Error(),
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[string]{
		Status: responses.ResponseStatusOk,
		Result: "unblocked",
	})
}

func requireRequester(reqCtx *gin.Context) (uint, bool) {
	requesterID, ok := auth.GetRequesterIDFromContext(reqCtx)
	if !ok {
		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code: "9a8b7c6d-5e4f-4321-a0b9-c8d7e6f5a4b3",
		})
		return 0, false
	}
	return requesterID, true
}

func parseBlockedID(reqCtx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(reqCtx.Param("blockedId"), 10, 64)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "1b2c3d4e-5f60-4718-8293-a4b5c6d7e8f9",
			Error: "invalid blocked user id",
		})
		return 0, false
	}
	return uint(id), true
}
