package users

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"loopware.io/user-directory/app/domain/auth"
	"loopware.io/user-directory/app/domain/user"
	"loopware.io/user-directory/app/interfaces/http/middleware"
	"loopware.io/user-directory/app/interfaces/http/responses"
)

type UserRoute struct {
	userService *user.UserService
}

func NewUserRoute(userService *user.UserService) *UserRoute {
	return &UserRoute{
		userService,
	}
}

func (route *UserRoute) RegisterRouter(router gin.IRouter) {
	usersRouter := router.Group("/users")
	usersRouter.POST("", route.Create)
	usersRouter.GET("", route.FindAll)
	usersRouter.GET("/search", middleware.OptionalAuthMiddleware(), route.Search)
	usersRouter.GET("/:id", route.FindOne)
	usersRouter.PUT("/:id", route.Update)
	usersRouter.DELETE("/:id", route.Delete)
}

type CreateUserRequest struct {
	Name      string    `json:"name" binding:"required"`
	Surname   string    `json:"surname" binding:"required"`
	Username  string    `json:"username" binding:"required"`
	Birthdate time.Time `json:"birthdate" binding:"required"`
}

type UpdateUserRequest struct {
	Name      *string    `json:"name"`
	Surname   *string    `json:"surname"`
	Username  *string    `json:"username"`
	Birthdate *time.Time `json:"birthdate"`
}

type UpdateUserResponse struct {
	Affected int64 `json:"affected"`
}

type SearchUserRequest struct {
	Username *string `form:"username"`
	MinAge   *int    `form:"minAge" binding:"omitempty,min=0"`
	MaxAge   *int    `form:"maxAge" binding:"omitempty,max=120"`
}

// Create godoc
// @Summary     Create a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body CreateUserRequest true "user fields"
// @Success     200 {object} responses.GeneralResponse[user.User]
// @Failure     400 {object} responses.ErrorResponse
// @Router      /v1/users [post]
func (route *UserRoute) Create(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var request CreateUserRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "a87e1a0c-9d3a-4f2b-bf51-30c1f5ad2d9e",
			Error: err.Error(),
		})
		return
	}

	created, err := route.userService.Create(ctx, &user.User{
		Name:      request.Name,
		Surname:   request.Surname,
		Username:  request.Username,
		Birthdate: request.Birthdate,
	})
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "47e1c9b4-59fb-4a3e-bbfb-1de1f2a07a43",
			Error: err.Error(),
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[*user.User]{
		Status: responses.ResponseStatusOk,
		Result: created,
	})
}

// FindAll godoc
// @Summary     List all users
// @Tags        users
// @Produce     json
// @Success     200 {object} responses.GeneralResponse[[]user.User]
// @Router      /v1/users [get]
func (route *UserRoute) FindAll(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	users, err := route.userService.FindAll(ctx)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "0f6be0c2-1a7e-4f25-b9a1-6f4f8c3db2d7",
			Error: err.Error(),
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[[]*user.User]{
		Status: responses.ResponseStatusOk,
		Result: users,
	})
}

// Search godoc
// @Summary     Search users
// @Description Filters users by username substring and inclusive age range.
// @Description Users blocked by the authenticated requester are excluded.
// @Tags        users
// @Produce     json
// @Param       username query string false "username substring"
// @Param       minAge   query int    false "minimum age"
// @Param       maxAge   query int    false "maximum age"
// @Success     200 {object} responses.GeneralResponse[[]user.User]
// @Failure     400 {object} responses.ErrorResponse
// @Security    BearerAuth
// @Router      /v1/users/search [get]
func (route *UserRoute) Search(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var request SearchUserRequest
	if err := reqCtx.ShouldBindQuery(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "7bb0f2a9-8c53-4a0e-b6b0-f34d4a1be9c1",
			Error: err.Error(),
		})
		return
	}

	var requesterID *uint
	if id, ok := auth.GetRequesterIDFromContext(reqCtx); ok {
		requesterID = &id
	}

	users, err := route.userService.Search(ctx, user.SearchParams{
		Username: request.Username,
		MinAge:   request.MinAge,
		MaxAge:   request.MaxAge,
	}, requesterID)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "93c3ad26-cb1a-47dd-9b40-2c17f73cbf0a",
			Error: err.Error(),
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[[]*user.User]{
		Status: responses.ResponseStatusOk,
		Result: users,
	})
}

// FindOne godoc
// @Summary     Get a user by id
// @Tags        users
// @Produce     json
// @Param       id path int true "user id"
// @Success     200 {object} responses.GeneralResponse[user.User]
// @Failure     404 {object} responses.ErrorResponse
// @Router      /v1/users/{id} [get]
func (route *UserRoute) FindOne(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	id, ok := parseID(reqCtx)
	if !ok {
		return
	}

	found, err := route.userService.FindByID(ctx, id)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "b3c5f2ce-50e7-4aa6-9cf3-d013e3f09d5c",
			Error: err.Error(),
		})
		return
	}
	if found == nil {
		reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
			Code: "e98f4b02-7b2f-4a19-bd7c-9f3cfb3b51d0",
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[*user.User]{
		Status: responses.ResponseStatusOk,
		Result: found,
	})
}

// Update godoc
// @Summary     Update a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id      path int               true  "user id"
// @Param       request body UpdateUserRequest true "fields to change"
// @Success     200 {object} responses.GeneralResponse[UpdateUserResponse]
// @Failure     400 {object} responses.ErrorResponse
// @Router      /v1/users/{id} [put]
func (route *UserRoute) Update(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	id, ok := parseID(reqCtx)
	if !ok {
		return
	}

	var request UpdateUserRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "6f2a8d14-3c0b-4b6e-85f3-ef1a21b97c58",
			Error: err.Error(),
		})
		return
	}

	affected, err := route.userService.Update(ctx, id, user.UserUpdate{
		Name:      request.Name,
		Surname:   request.Surname,
		Username:  request.Username,
		Birthdate: request.Birthdate,
	})
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "d4f0a8cc-6de0-4d4e-9f0a-3b60be2e4f0d",
			Error: err.Error(),
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[UpdateUserResponse]{
		Status: responses.ResponseStatusOk,
		Result: UpdateUserResponse{Affected: affected},
	})
}

// Delete godoc
// @Summary     Delete a user
// @Tags        users
// @Produce     json
// @Param       id path int true "user id"
// @Success     200 {object} responses.GeneralResponse[string]
// @Router      /v1/users/{id} [delete]
func (route *UserRoute) Delete(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	id, ok := parseID(reqCtx)
	if !ok {
		return
	}

	if err := route.userService.Delete(ctx, id); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "5a1f2e9b-84a0-4f4d-b6ea-8d9f2b3c4e60",
			Error: err.Error(),
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[string]{
		Status: responses.ResponseStatusOk,
		Result: "deleted",
	})
}

func parseID(reqCtx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(reqCtx.Param("id"), 10, 64)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "11a9c0de-2e38-45f1-9f2c-b0a1f0c6d7e8",
			Error: "invalid id",
		})
		return 0, false
	}
	return uint(id), true
}
