package dto

// SubmitEntryRequest represents a diary submission payload.
// EntryDate is an ISO calendar date; file metadata is filled by the upload
// handling before the service is called.
type SubmitEntryRequest struct {
	EntryDate  string  `json:"entryDate" binding:"required" example:"2025-06-02"`
	TextReport string  `json:"textReport"`
	FileURL    *string `json:"fileUrl,omitempty"`
	FileName   *string `json:"fileName,omitempty"`
	FileSize   *int64  `json:"fileSize,omitempty"`
}

// MarkEntryRequest represents a teacher marking payload
type MarkEntryRequest struct {
	Mark    int     `json:"mark" binding:"min=0,max=100" example:"85"`
	Comment *string `json:"comment,omitempty"`
}

// RecordAttendanceRequest represents an attendance record payload
type RecordAttendanceRequest struct {
	StudentID int64  `json:"studentId" binding:"required"`
	Date      string `json:"date" binding:"required" example:"2025-06-02"`
	Status    string `json:"status" binding:"required" enums:"present,absent,excused"`
}
