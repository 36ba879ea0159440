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

// ProgramController handles internship program operations
type ProgramController struct {
	programService *services.ProgramService
	logger         zerolog.Logger
}

// NewProgramController creates a new ProgramController
func NewProgramController(programService *services.ProgramService, logger zerolog.Logger) *ProgramController {
	return &ProgramController{
		programService: programService,
		logger:         logger,
	}
}

// CreateProgram creates an internship program
// @Summary Create a program
// @Description Creates an internship program with optional group assignments. Admin only.
// @Tags programs
// @Accept json
// @Produce json
// @Param request body dto.CreateProgramRequest true "Program information"
// @Success 201 {object} dto.APIResponse{data=models.InternshipProgram}
// @Failure 400 {object} dto.ErrorResponse "Invalid dates or disabled days"
// @Security BearerAuth
// @Router /programs [post]
func (c *ProgramController) CreateProgram(ctx *gin.Context) {
	var req dto.CreateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	program, err := c.programService.CreateProgram(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("programID", program.ID).Str("name", program.Name).Msg("Program created")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: program, Timestamp: time.Now()})
}

// GetProgram retrieves a program by id
// @Summary Get a program
// @Tags programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=models.InternshipProgram}
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Security BearerAuth
// @Router /programs/{id} [get]
func (c *ProgramController) GetProgram(ctx *gin.Context) {
	programID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	principal, _ := middleware.GetPrincipal(ctx)
	program, err := c.programService.GetProgram(ctx.Request.Context(), principal, programID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: program, Timestamp: time.Now()})
}

// ListPrograms lists all programs
// @Summary List programs
// @Tags programs
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.InternshipProgram}
// @Security BearerAuth
// @Router /programs [get]
func (c *ProgramController) ListPrograms(ctx *gin.Context) {
	programs, err := c.programService.ListPrograms(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: programs, Timestamp: time.Now()})
}

// UpdateProgram applies a partial update to a program
// @Summary Update a program
// @Tags programs
// @Accept json
// @Produce json
// @Param id path int true "Program ID"
// @Param request body dto.UpdateProgramRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.InternshipProgram}
// @Failure 400 {object} dto.ErrorResponse "Invalid date range"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Security BearerAuth
// @Router /programs/{id} [put]
func (c *ProgramController) UpdateProgram(ctx *gin.Context) {
	programID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	var req dto.UpdateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	program, err := c.programService.UpdateProgram(ctx.Request.Context(), programID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: program, Timestamp: time.Now()})
}

// DeleteProgram removes a program
// @Summary Delete a program
// @Tags programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Security BearerAuth
// @Router /programs/{id} [delete]
func (c *ProgramController) DeleteProgram(ctx *gin.Context) {
	programID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.programService.DeleteProgram(ctx.Request.Context(), programID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("programID", programID).Msg("Program deleted")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Program deleted"}, Timestamp: time.Now()})
}

// AssignGroup links a group to a program
// @Summary Assign a group to a program
// @Tags programs
// @Accept json
// @Produce json
// @Param id path int true "Program ID"
// @Param request body dto.AssignGroupRequest true "Group to assign"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Program or group not found"
// @Security BearerAuth
// @Router /programs/{id}/groups [post]
func (c *ProgramController) AssignGroup(ctx *gin.Context) {
	programID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	var req dto.AssignGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.programService.AssignGroup(ctx.Request.Context(), programID, req.GroupID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("programID", programID).Int64("groupID", req.GroupID).Msg("Group assigned to program")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Group assigned"}, Timestamp: time.Now()})
}

// RemoveGroup unlinks a group from a program
// @Summary Remove a group from a program
// @Tags programs
// @Produce json
// @Param id path int true "Program ID"
// @Param groupId path int true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Security BearerAuth
// @Router /programs/{id}/groups/{groupId} [delete]
func (c *ProgramController) RemoveGroup(ctx *gin.Context) {
	programID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}
	groupID, err := parseIDParam(ctx, "groupId")
	if err != nil {
		return
	}

	if err := c.programService.RemoveGroup(ctx.Request.Context(), programID, groupID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Group removed"}, Timestamp: time.Now()})
}

// GetProgramCalendar returns the day-by-day calendar of a program
// @Summary Get a program's calendar
// @Description Lists every calendar day of the program with its weekend and disabled flags
// @Tags programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=[]calendar.ProgramDate}
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Security BearerAuth
// @Router /programs/{id}/calendar [get]
func (c *ProgramController) GetProgramCalendar(ctx *gin.Context) {
	programID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	principal, _ := middleware.GetPrincipal(ctx)
	dates, err := c.programService.GetProgramCalendar(ctx.Request.Context(), principal, programID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dates, Timestamp: time.Now()})
}

// GetMyCalendar returns the calendar of the calling student's program
// @Summary Get own program calendar
// @Tags programs
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]calendar.ProgramDate}
// @Failure 400 {object} dto.ErrorResponse "No active program for the student's group"
// @Security BearerAuth
// @Router /programs/my/calendar [get]
func (c *ProgramController) GetMyCalendar(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	dates, err := c.programService.GetMyCalendar(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dates, Timestamp: time.Now()})
}
