package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/oguzk/interntrack/internal/app/models/dto"
	"github.com/oguzk/interntrack/internal/app/services"
	"github.com/oguzk/interntrack/internal/middleware"
	"github.com/oguzk/interntrack/internal/pkg/helpers"
)

// UserController handles user management operations
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// CreateUser creates a user account
// @Summary Create a user
// @Description Creates a user account with the given role. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User information"
// @Success 201 {object} dto.APIResponse{data=models.User}
// @Failure 400 {object} dto.ErrorResponse "Invalid request or role"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Security BearerAuth
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.userService.CreateUser(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User created")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: user, Timestamp: time.Now()})
}

// GetUser retrieves a user by id
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	principal, _ := middleware.GetPrincipal(ctx)
	user, err := c.userService.GetUser(ctx.Request.Context(), principal, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user, Timestamp: time.Now()})
}

// ListUsers lists users with optional filters
// @Summary List users
// @Description Lists users with optional role and group filters. Admin only.
// @Tags users
// @Produce json
// @Param role query string false "Filter by role" Enums(super_admin, teacher, student)
// @Param groupId query int false "Filter by group"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Security BearerAuth
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	filter := dto.UserFilter{Role: ctx.Query("role")}
	if raw := ctx.Query("groupId"); raw != "" {
		groupID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid group id").WithField("groupId")))
			return
		}
		filter.GroupID = &groupID
	}

	page, size := helpers.ParsePaginationParams(ctx)
	users, pagination, err := c.userService.ListUsers(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: users, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// UpdateUser applies a partial update to a user
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.userService.UpdateUser(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user, Timestamp: time.Now()})
}

// DeleteUser removes a user account
// @Summary Delete a user
// @Description Deletes a user account. Super admin accounts cannot be deleted.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Super admin accounts cannot be deleted"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.userService.DeleteUser(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Msg("User deleted")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "User deleted"}, Timestamp: time.Now()})
}

// SetUserActive enables or disables a user account
// @Summary Enable or disable a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.SetActiveRequest true "Desired state"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{id}/active [put]
func (c *UserController) SetUserActive(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	var req dto.SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.userService.SetUserActive(ctx.Request.Context(), userID, *req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Bool("isActive", *req.IsActive).Msg("User active state changed")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "User updated"}, Timestamp: time.Now()})
}

// parseIDParam reads a positive integer path parameter, writing the error
// response itself on failure
func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter").WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		if err == nil {
			err = strconv.ErrRange
		}
		return 0, err
	}
	return id, nil
}
