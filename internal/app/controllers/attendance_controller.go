package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/oguzk/interntrack/internal/app/models/dto"
	"github.com/oguzk/interntrack/internal/app/services"
	"github.com/oguzk/interntrack/internal/middleware"
	"github.com/oguzk/interntrack/internal/pkg/helpers"
)

// AttendanceController handles attendance operations
type AttendanceController struct {
	attendanceService *services.AttendanceService
	logger            zerolog.Logger
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService, logger zerolog.Logger) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

// RecordAttendance records or replaces a student's attendance for a date
// @Summary Record attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Param request body dto.RecordAttendanceRequest true "Attendance record"
// @Success 200 {object} dto.APIResponse{data=models.Attendance}
// @Failure 400 {object} dto.ErrorResponse "Invalid status or date"
// @Failure 403 {object} dto.ErrorResponse "Student not in an assigned group"
// @Security BearerAuth
// @Router /attendance [post]
func (c *AttendanceController) RecordAttendance(ctx *gin.Context) {
	var req dto.RecordAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	principal, _ := middleware.GetPrincipal(ctx)
	record, err := c.attendanceService.RecordAttendance(ctx.Request.Context(), principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("studentID", req.StudentID).Str("date", req.Date).Str("status", req.Status).Msg("Attendance recorded")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: record, Timestamp: time.Now()})
}

// GetStudentAttendance lists a student's attendance within a date range
// @Summary List a student's attendance
// @Tags attendance
// @Produce json
// @Param studentId path int true "Student ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance}
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Security BearerAuth
// @Router /attendance/students/{studentId} [get]
func (c *AttendanceController) GetStudentAttendance(ctx *gin.Context) {
	studentID, err := parseIDParam(ctx, "studentId")
	if err != nil {
		return
	}

	from, err := helpers.ParseDate(ctx.Query("from"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid from date").WithField("from")))
		return
	}
	to, err := helpers.ParseDate(ctx.Query("to"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid to date").WithField("to")))
		return
	}

	principal, _ := middleware.GetPrincipal(ctx)
	records, err := c.attendanceService.GetStudentAttendance(ctx.Request.Context(), principal, studentID, from, to)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: records, Timestamp: time.Now()})
}

// GetGroupAttendance lists a group's attendance on one date
// @Summary List a group's attendance for a date
// @Tags attendance
// @Produce json
// @Param groupId path int true "Group ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance}
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Security BearerAuth
// @Router /attendance/groups/{groupId} [get]
func (c *AttendanceController) GetGroupAttendance(ctx *gin.Context) {
	groupID, err := parseIDParam(ctx, "groupId")
	if err != nil {
		return
	}

	date, err := helpers.ParseDate(ctx.Query("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid date").WithField("date")))
		return
	}

	principal, _ := middleware.GetPrincipal(ctx)
	records, err := c.attendanceService.GetGroupAttendance(ctx.Request.Context(), principal, groupID, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: records, Timestamp: time.Now()})
}
