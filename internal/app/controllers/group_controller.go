package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/oguzk/interntrack/internal/app/models/dto"
	"github.com/oguzk/interntrack/internal/app/services"
	"github.com/oguzk/interntrack/internal/middleware"
)

// GroupController handles group management operations
type GroupController struct {
	groupService *services.GroupService
	userService  *services.UserService
	logger       zerolog.Logger
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService *services.GroupService, userService *services.UserService, logger zerolog.Logger) *GroupController {
	return &GroupController{
		groupService: groupService,
		userService:  userService,
		logger:       logger,
	}
}

// CreateGroup creates a group
// @Summary Create a group
// @Tags groups
// @Accept json
// @Produce json
// @Param request body dto.CreateGroupRequest true "Group information"
// @Success 201 {object} dto.APIResponse{data=models.Group}
// @Failure 409 {object} dto.ErrorResponse "Group name already exists"
// @Security BearerAuth
// @Router /groups [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	var req dto.CreateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	group, err := c.groupService.CreateGroup(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("groupID", group.ID).Str("name", group.Name).Msg("Group created")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: group, Timestamp: time.Now()})
}

// GetGroup retrieves a group by id
// @Summary Get a group
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} dto.APIResponse{data=models.Group}
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Security BearerAuth
// @Router /groups/{id} [get]
func (c *GroupController) GetGroup(ctx *gin.Context) {
	groupID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	principal, _ := middleware.GetPrincipal(ctx)
	group, err := c.groupService.GetGroup(ctx.Request.Context(), principal, groupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: group, Timestamp: time.Now()})
}

// ListGroups lists all groups
// @Summary List groups
// @Tags groups
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Group}
// @Security BearerAuth
// @Router /groups [get]
func (c *GroupController) ListGroups(ctx *gin.Context) {
	groups, err := c.groupService.ListGroups(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: groups, Timestamp: time.Now()})
}

// GetMyGroups lists the groups assigned to the calling teacher
// @Summary List own assigned groups
// @Tags groups
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Group}
// @Security BearerAuth
// @Router /groups/my [get]
func (c *GroupController) GetMyGroups(ctx *gin.Context) {
	principal, _ := middleware.GetPrincipal(ctx)
	groups, err := c.groupService.GetMyGroups(ctx.Request.Context(), principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: groups, Timestamp: time.Now()})
}

// GetGroupStudents lists the students of a group
// @Summary List students of a group
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} dto.APIResponse{data=[]models.User}
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Security BearerAuth
// @Router /groups/{id}/students [get]
func (c *GroupController) GetGroupStudents(ctx *gin.Context) {
	groupID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	principal, _ := middleware.GetPrincipal(ctx)
	students, err := c.userService.GetGroupStudents(ctx.Request.Context(), principal, groupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: students, Timestamp: time.Now()})
}

// UpdateGroup applies a partial update to a group
// @Summary Update a group
// @Tags groups
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param request body dto.UpdateGroupRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Group}
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Security BearerAuth
// @Router /groups/{id} [put]
func (c *GroupController) UpdateGroup(ctx *gin.Context) {
	groupID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	var req dto.UpdateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	group, err := c.groupService.UpdateGroup(ctx.Request.Context(), groupID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: group, Timestamp: time.Now()})
}

// DeleteGroup removes a group
// @Summary Delete a group
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Security BearerAuth
// @Router /groups/{id} [delete]
func (c *GroupController) DeleteGroup(ctx *gin.Context) {
	groupID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.groupService.DeleteGroup(ctx.Request.Context(), groupID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("groupID", groupID).Msg("Group deleted")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Group deleted"}, Timestamp: time.Now()})
}

// AssignTeacher links a teacher to a group
// @Summary Assign a teacher to a group
// @Tags groups
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param request body dto.AssignTeacherRequest true "Teacher to assign"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "User is not a teacher"
// @Security BearerAuth
// @Router /groups/{id}/teachers [post]
func (c *GroupController) AssignTeacher(ctx *gin.Context) {
	groupID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	var req dto.AssignTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.groupService.AssignTeacher(ctx.Request.Context(), groupID, req.TeacherID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("groupID", groupID).Int64("teacherID", req.TeacherID).Msg("Teacher assigned to group")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Teacher assigned"}, Timestamp: time.Now()})
}

// RemoveTeacher unlinks a teacher from a group
// @Summary Remove a teacher from a group
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Param teacherId path int true "Teacher ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Security BearerAuth
// @Router /groups/{id}/teachers/{teacherId} [delete]
func (c *GroupController) RemoveTeacher(ctx *gin.Context) {
	groupID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}
	teacherID, err := parseIDParam(ctx, "teacherId")
	if err != nil {
		return
	}

	if err := c.groupService.RemoveTeacher(ctx.Request.Context(), groupID, teacherID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Teacher removed"}, Timestamp: time.Now()})
}
