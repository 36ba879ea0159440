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

// DiaryController handles diary entry operations
type DiaryController struct {
	diaryService *services.DiaryService
	logger       zerolog.Logger
}

// NewDiaryController creates a new DiaryController
func NewDiaryController(diaryService *services.DiaryService, logger zerolog.Logger) *DiaryController {
	return &DiaryController{
		diaryService: diaryService,
		logger:       logger,
	}
}

// SubmitEntry submits the calling student's diary entry for a date
// @Summary Submit a diary entry
// @Description Creates or replaces the entry for the given date. The date must be a working day of the student's active program. Resubmission never clears an existing mark.
// @Tags diary
// @Accept json
// @Produce json
// @Param request body dto.SubmitEntryRequest true "Entry content"
// @Success 201 {object} dto.APIResponse{data=models.DiaryEntry}
// @Failure 400 {object} dto.ErrorResponse "Date outside program period or disabled day"
// @Security BearerAuth
// @Router /diary/entries [post]
func (c *DiaryController) SubmitEntry(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.SubmitEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	entry, err := c.diaryService.SubmitEntry(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("studentID", userID).Str("entryDate", req.EntryDate).Msg("Diary entry submitted")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: entry, Timestamp: time.Now()})
}

// GetMyEntryByDate retrieves the calling student's entry for a date
// @Summary Get own diary entry by date
// @Tags diary
// @Produce json
// @Param date path string true "Entry date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=models.DiaryEntry}
// @Failure 404 {object} dto.ErrorResponse "No entry for the date"
// @Security BearerAuth
// @Router /diary/entries/my/{date} [get]
func (c *DiaryController) GetMyEntryByDate(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	entry, err := c.diaryService.GetEntryByDate(ctx.Request.Context(), userID, ctx.Param("date"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: entry, Timestamp: time.Now()})
}

// UploadAttachment attaches a report file to the calling student's entry
// @Summary Upload a diary report file
// @Description Stores the uploaded file on the entry. A previously attached file is replaced.
// @Tags diary
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Entry ID"
// @Param file formData file true "Report file"
// @Success 200 {object} dto.APIResponse{data=models.DiaryEntry}
// @Failure 403 {object} dto.ErrorResponse "Not the entry owner"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /diary/entries/{id}/attachment [post]
func (c *DiaryController) UploadAttachment(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	entryID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A file upload is required")))
		return
	}

	entry, err := c.diaryService.AttachReport(ctx.Request.Context(), userID, entryID, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("entryID", entryID).Str("fileName", fileHeader.Filename).Msg("Diary report file attached")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: entry, Timestamp: time.Now()})
}

// GetEntry retrieves one diary entry
// @Summary Get a diary entry
// @Tags diary
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} dto.APIResponse{data=models.DiaryEntry}
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /diary/entries/{id} [get]
func (c *DiaryController) GetEntry(ctx *gin.Context) {
	entryID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	principal, _ := middleware.GetPrincipal(ctx)
	entry, err := c.diaryService.GetEntry(ctx.Request.Context(), principal, entryID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: entry, Timestamp: time.Now()})
}

// ListMyEntries lists the calling student's own entries
// @Summary List own diary entries
// @Tags diary
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Security BearerAuth
// @Router /diary/entries/my [get]
func (c *DiaryController) ListMyEntries(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	entries, pagination, err := c.diaryService.ListMyEntries(ctx.Request.Context(), userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: entries, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// ListStudentEntries lists one student's entries for a teacher or admin
// @Summary List a student's diary entries
// @Tags diary
// @Produce json
// @Param studentId path int true "Student ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Security BearerAuth
// @Router /diary/students/{studentId}/entries [get]
func (c *DiaryController) ListStudentEntries(ctx *gin.Context) {
	studentID, err := parseIDParam(ctx, "studentId")
	if err != nil {
		return
	}

	principal, _ := middleware.GetPrincipal(ctx)
	page, size := helpers.ParsePaginationParams(ctx)
	entries, pagination, err := c.diaryService.ListStudentEntries(ctx.Request.Context(), principal, studentID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: entries, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// ListGroupEntries lists the entries of one group
// @Summary List a group's diary entries
// @Tags diary
// @Produce json
// @Param groupId path int true "Group ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Security BearerAuth
// @Router /diary/groups/{groupId}/entries [get]
func (c *DiaryController) ListGroupEntries(ctx *gin.Context) {
	groupID, err := parseIDParam(ctx, "groupId")
	if err != nil {
		return
	}

	principal, _ := middleware.GetPrincipal(ctx)
	page, size := helpers.ParsePaginationParams(ctx)
	entries, pagination, err := c.diaryService.ListGroupEntries(ctx.Request.Context(), principal, groupID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: entries, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// ListAssignedEntries lists the entries across the calling teacher's groups
// @Summary List entries of all assigned groups
// @Description Lists diary entries from every group assigned to the calling teacher. Fails when the teacher has no group assignments.
// @Tags diary
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Failure 400 {object} dto.ErrorResponse "Teacher has no assigned groups"
// @Security BearerAuth
// @Router /diary/entries [get]
func (c *DiaryController) ListAssignedEntries(ctx *gin.Context) {
	principal, _ := middleware.GetPrincipal(ctx)
	page, size := helpers.ParsePaginationParams(ctx)
	entries, pagination, err := c.diaryService.ListAssignedEntries(ctx.Request.Context(), principal, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: entries, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// MarkEntry records a mark on a diary entry
// @Summary Mark a diary entry
// @Description Records a mark between 0 and 100 with an optional comment. Remarking overwrites the previous mark and notifies the student.
// @Tags diary
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param request body dto.MarkEntryRequest true "Mark and comment"
// @Success 200 {object} dto.APIResponse{data=models.DiaryEntry}
// @Failure 400 {object} dto.ErrorResponse "Mark out of range"
// @Failure 403 {object} dto.ErrorResponse "Student not in an assigned group"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /diary/entries/{id}/mark [put]
func (c *DiaryController) MarkEntry(ctx *gin.Context) {
	entryID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	var req dto.MarkEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	principal, _ := middleware.GetPrincipal(ctx)
	entry, err := c.diaryService.MarkEntry(ctx.Request.Context(), principal, entryID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("entryID", entryID).Int("mark", req.Mark).Msg("Diary entry marked")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: entry, Timestamp: time.Now()})
}
