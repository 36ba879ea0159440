package models

import (
	"time"
)

// DiaryEntry defines the diary entry model based on the 'diary_entries' table.
// Rows are unique per (student_id, entry_date); submission is an
// upsert-by-date, marking overwrites any previous mark.
type DiaryEntry struct {
	ID             int64      `json:"id" db:"id"`
	StudentID      int64      `json:"studentId" db:"student_id"`
	EntryDate      time.Time  `json:"entryDate" db:"entry_date"`
	TextReport     string     `json:"textReport" db:"text_report"`
	FileURL        *string    `json:"fileUrl,omitempty" db:"file_url"`
	FileName       *string    `json:"fileName,omitempty" db:"file_name"`
	FileSize       *int64     `json:"fileSize,omitempty" db:"file_size"`
	IsSubmitted    bool       `json:"isSubmitted" db:"is_submitted"`
	SubmittedAt    *time.Time `json:"submittedAt,omitempty" db:"submitted_at"`
	Mark           *int       `json:"mark,omitempty" db:"mark"` // 0-100, nil until marked
	TeacherComment *string    `json:"teacherComment,omitempty" db:"teacher_comment"`
	MarkedAt       *time.Time `json:"markedAt,omitempty" db:"marked_at"`
	TeacherID      *int64     `json:"teacherId,omitempty" db:"teacher_id"` // Marking teacher
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`

	Student *User `json:"student,omitempty"` // Relation, no db tag
}

// Attendance defines the attendance model based on the 'attendance' table.
// Rows are unique per (student_id, date).
type Attendance struct {
	ID        int64            `json:"id" db:"id"`
	StudentID int64            `json:"studentId" db:"student_id"`
	Date      time.Time        `json:"date" db:"date"`
	Status    AttendanceStatus `json:"status" db:"status"`
	TeacherID int64            `json:"teacherId" db:"teacher_id"` // Recording teacher
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at"`
}
