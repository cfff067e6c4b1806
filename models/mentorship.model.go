package models

import "gorm.io/gorm"

// Mentorship assigns a faculty mentor to a student for one academic year.
// Reassigning a student within the same year overwrites the mentor.
type Mentorship struct {
	gorm.Model
	FacultyID    uint   `gorm:"not null;index" json:"faculty_id"`
	StudentID    uint   `gorm:"not null;uniqueIndex:idx_mentee_year" json:"student_id"`
	AcademicYear string `gorm:"size:10;not null;uniqueIndex:idx_mentee_year" json:"academic_year"`
	AssignedBy   uint   `json:"assigned_by"` // admin id
	Notes        string `gorm:"size:255;default:''" json:"notes,omitempty"`
	IsDeleted    bool   `gorm:"default:false" json:"-"`
}
