package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/oguzk/interntrack/internal/app/controllers"
	"github.com/oguzk/interntrack/internal/app/models"
	"github.com/oguzk/interntrack/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	groupController *controllers.GroupController,
	programController *controllers.ProgramController,
	diaryController *controllers.DiaryController,
	notificationController *controllers.NotificationController,
	attendanceController *controllers.AttendanceController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.GetProfile)
		authenticated.PUT("/auth/password", authController.ChangePassword)

		// User management (admin only, except reads covered by access rules)
		users := authenticated.Group("/users")
		{
			users.GET("/:id", userController.GetUser)

			usersAdmin := users.Group("")
			usersAdmin.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
			{
				usersAdmin.POST("", userController.CreateUser)
				usersAdmin.GET("", userController.ListUsers)
				usersAdmin.PUT("/:id", userController.UpdateUser)
				usersAdmin.PUT("/:id/active", userController.SetUserActive)
				usersAdmin.DELETE("/:id", userController.DeleteUser)
			}
		}

		// Groups
		groups := authenticated.Group("/groups")
		{
			groups.GET("/:id", groupController.GetGroup)
			groups.GET("/:id/students", groupController.GetGroupStudents)

			groupsTeacher := groups.Group("")
			groupsTeacher.Use(authMiddleware.RoleRequired(models.RoleTeacher))
			{
				groupsTeacher.GET("/my", groupController.GetMyGroups)
			}

			groupsAdmin := groups.Group("")
			groupsAdmin.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
			{
				groupsAdmin.POST("", groupController.CreateGroup)
				groupsAdmin.GET("", groupController.ListGroups)
				groupsAdmin.PUT("/:id", groupController.UpdateGroup)
				groupsAdmin.DELETE("/:id", groupController.DeleteGroup)
				groupsAdmin.POST("/:id/teachers", groupController.AssignTeacher)
				groupsAdmin.DELETE("/:id/teachers/:teacherId", groupController.RemoveTeacher)
			}
		}

		// Programs and calendars
		programs := authenticated.Group("/programs")
		{
			programs.GET("/:id", programController.GetProgram)
			programs.GET("/:id/calendar", programController.GetProgramCalendar)

			programsStudent := programs.Group("")
			programsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				programsStudent.GET("/my/calendar", programController.GetMyCalendar)
			}

			programsAdmin := programs.Group("")
			programsAdmin.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
			{
				programsAdmin.POST("", programController.CreateProgram)
				programsAdmin.GET("", programController.ListPrograms)
				programsAdmin.PUT("/:id", programController.UpdateProgram)
				programsAdmin.DELETE("/:id", programController.DeleteProgram)
				programsAdmin.POST("/:id/groups", programController.AssignGroup)
				programsAdmin.DELETE("/:id/groups/:groupId", programController.RemoveGroup)
			}
		}

		// Diary
		diary := authenticated.Group("/diary")
		{
			diary.GET("/entries/:id", diaryController.GetEntry)

			diaryStudent := diary.Group("")
			diaryStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				diaryStudent.POST("/entries", diaryController.SubmitEntry)
				diaryStudent.POST("/entries/:id/attachment", diaryController.UploadAttachment)
				diaryStudent.GET("/entries/my", diaryController.ListMyEntries)
				diaryStudent.GET("/entries/my/:date", diaryController.GetMyEntryByDate)
			}

			diaryTeacher := diary.Group("")
			diaryTeacher.Use(authMiddleware.RoleRequired(models.RoleTeacher, models.RoleSuperAdmin))
			{
				diaryTeacher.GET("/entries", diaryController.ListAssignedEntries)
				diaryTeacher.PUT("/entries/:id/mark", diaryController.MarkEntry)
				diaryTeacher.GET("/students/:studentId/entries", diaryController.ListStudentEntries)
				diaryTeacher.GET("/groups/:groupId/entries", diaryController.ListGroupEntries)
			}
		}

		// Notifications
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.ListNotifications)
			notifications.GET("/stats", notificationController.GetStats)
			notifications.PUT("/:id/read", notificationController.MarkAsRead)
			notifications.PUT("/read-all", notificationController.MarkAllAsRead)

			notificationsAdmin := notifications.Group("")
			notificationsAdmin.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
			{
				notificationsAdmin.POST("/announcements", notificationController.SendAnnouncement)
			}
		}

		// Attendance
		attendance := authenticated.Group("/attendance")
		{
			attendance.GET("/students/:studentId", attendanceController.GetStudentAttendance)

			attendanceTeacher := attendance.Group("")
			attendanceTeacher.Use(authMiddleware.RoleRequired(models.RoleTeacher, models.RoleSuperAdmin))
			{
				attendanceTeacher.POST("", attendanceController.RecordAttendance)
				attendanceTeacher.GET("/groups/:groupId", attendanceController.GetGroupAttendance)
			}
		}
	}
}
