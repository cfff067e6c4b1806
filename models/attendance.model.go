package models

import (
	"time"

	"gorm.io/gorm"
)

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceOnLeave AttendanceStatus = "on_leave"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceOnLeave:
		return true
	default:
		return false
	}
}

// Attendance is one student's presence for one subject, date and period.
// At most one row may exist per (student, subject, date, period); re-marking
// the same slot overwrites status/remarks instead of duplicating.
type Attendance struct {
	gorm.Model
	StudentID    uint             `gorm:"not null;uniqueIndex:idx_attendance_slot" json:"student_id"`
	SubjectID    uint             `gorm:"not null;uniqueIndex:idx_attendance_slot" json:"subject_id"`
	FacultyID    uint             `gorm:"not null;index" json:"faculty_id"` // who marked it
	Date         time.Time        `gorm:"type:date;not null;uniqueIndex:idx_attendance_slot" json:"date"`
	Period       int              `gorm:"not null;uniqueIndex:idx_attendance_slot" json:"period"`
	Status       AttendanceStatus `gorm:"size:10;not null" json:"status"`
	AcademicYear string           `gorm:"size:10;index" json:"academic_year"`
	Semester     int              `json:"semester"`
	Remarks      string           `gorm:"size:255;default:''" json:"remarks,omitempty"`
	IsDeleted    bool             `gorm:"default:false" json:"-"`
}

// AttendanceRecordInput is one student's entry in a bulk marking request.
type AttendanceRecordInput struct {
	StudentID uint             `json:"student_id"`
	Status    AttendanceStatus `json:"status"`
	Remarks   string           `json:"remarks,omitempty"`
}

// BulkAttendanceRequest carries a whole class period's marking in one call.
// The context fields are shared by every record in the batch.
type BulkAttendanceRequest struct {
	SubjectID    uint                    `json:"subject_id"`
	Date         string                  `json:"date"` // YYYY-MM-DD
	Period       int                     `json:"period"`
	AcademicYear string                  `json:"academic_year"`
	Semester     int                     `json:"semester"`
	Records      []AttendanceRecordInput `json:"attendance_records"`
}
