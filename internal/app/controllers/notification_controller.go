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

// NotificationController handles notification operations
type NotificationController struct {
	notificationService *services.NotificationService
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService, logger zerolog.Logger) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		logger:              logger,
	}
}

// ListNotifications lists the caller's notifications
// @Summary List own notifications
// @Description Lists the caller's notifications, newest first. Expired notifications are excluded.
// @Tags notifications
// @Produce json
// @Param unreadOnly query bool false "Only unread notifications"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.NotificationList}
// @Security BearerAuth
// @Router /notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	opts := dto.NotificationListOptions{
		Page:       page,
		Limit:      size,
		UnreadOnly: ctx.Query("unreadOnly") == "true",
	}

	list, err := c.notificationService.GetUserNotifications(ctx.Request.Context(), userID, opts)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: list, Timestamp: time.Now()})
}

// GetStats returns the caller's notification counters
// @Summary Get own notification stats
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.NotificationStats}
// @Security BearerAuth
// @Router /notifications/stats [get]
func (c *NotificationController) GetStats(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	stats, err := c.notificationService.GetNotificationStats(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: stats, Timestamp: time.Now()})
}

// MarkAsRead marks one notification as read
// @Summary Mark a notification as read
// @Description Marks the notification as read. Marking an already-read notification succeeds without effect.
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Security BearerAuth
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkAsRead(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	notificationID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.notificationService.MarkAsRead(ctx.Request.Context(), notificationID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Notification marked as read"}, Timestamp: time.Now()})
}

// MarkAllAsRead marks all of the caller's notifications as read
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Security BearerAuth
// @Router /notifications/read-all [put]
func (c *NotificationController) MarkAllAsRead(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	count, err := c.notificationService.MarkAllAsRead(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Debug().Int64("userID", userID).Int64("count", count).Msg("Notifications marked as read")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "All notifications marked as read"}, Timestamp: time.Now()})
}

// SendAnnouncement fans a system announcement out to active users
// @Summary Send a system announcement
// @Description Creates a notification for every active user of the requested roles. Admin only.
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body dto.AnnouncementRequest true "Announcement content"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid priority or role"
// @Security BearerAuth
// @Router /notifications/announcements [post]
func (c *NotificationController) SendAnnouncement(ctx *gin.Context) {
	var req dto.AnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	created, err := c.notificationService.SendSystemAnnouncement(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("count", created).Str("title", req.Title).Msg("Announcement sent")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Announcement sent"}, Timestamp: time.Now()})
}
