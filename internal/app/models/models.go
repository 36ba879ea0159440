package models

// Role defines the user role type
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleTeacher    Role = "teacher"
	RoleStudent    Role = "student"
)

// ValidRole reports whether the role is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleSuperAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// NotificationType defines the notification type enum
type NotificationType string

const (
	NotificationDiaryReminder      NotificationType = "diary_reminder"
	NotificationDeadlineWarning    NotificationType = "deadline_warning"
	NotificationEntryMarked        NotificationType = "entry_marked"
	NotificationSystemAnnouncement NotificationType = "system_announcement"
)

// NotificationPriority defines the notification priority enum
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

// AttendanceStatus defines the attendance status enum
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceExcused AttendanceStatus = "excused"
)

// ValidAttendanceStatus reports whether the status is one of the known statuses.
func ValidAttendanceStatus(s AttendanceStatus) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceExcused:
		return true
	}
	return false
}
