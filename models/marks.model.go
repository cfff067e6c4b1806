package models

import (
	"time"

	"gorm.io/gorm"
)

// ExamType enumerates the assessments a marks row can belong to.
type ExamType string

const (
	ExamInternal1  ExamType = "internal_1"
	ExamInternal2  ExamType = "internal_2"
	ExamInternal3  ExamType = "internal_3"
	ExamAssignment ExamType = "assignment"
	ExamQuiz       ExamType = "quiz"
	ExamPractical  ExamType = "practical"
	ExamSeminar    ExamType = "seminar"
	ExamUniversity ExamType = "university"
)

// Valid returns true when the exam type is a supported value.
func (e ExamType) Valid() bool {
	switch e {
	case ExamInternal1, ExamInternal2, ExamInternal3, ExamAssignment,
		ExamQuiz, ExamPractical, ExamSeminar, ExamUniversity:
		return true
	default:
		return false
	}
}

// Marks is one student's score for one subject, exam type and academic
// year/semester. At most one row may exist per (student, subject, exam_type,
// academic_year, semester); resubmission overwrites.
type Marks struct {
	gorm.Model
	StudentID     uint       `gorm:"not null;uniqueIndex:idx_marks_entry" json:"student_id"`
	SubjectID     uint       `gorm:"not null;uniqueIndex:idx_marks_entry" json:"subject_id"`
	ExamType      ExamType   `gorm:"size:20;not null;uniqueIndex:idx_marks_entry" json:"exam_type"`
	AcademicYear  string     `gorm:"size:10;not null;uniqueIndex:idx_marks_entry" json:"academic_year"`
	Semester      int        `gorm:"not null;uniqueIndex:idx_marks_entry" json:"semester"`
	MarksObtained float64    `gorm:"not null" json:"marks_obtained"`
	MaxMarks      float64    `gorm:"not null" json:"max_marks"`
	FacultyID     uint       `gorm:"not null;index" json:"faculty_id"` // who entered it
	ExamDate      *time.Time `json:"exam_date,omitempty"`
	Remarks       string     `gorm:"size:255;default:''" json:"remarks,omitempty"`
	IsDeleted     bool       `gorm:"default:false" json:"-"`
}

// Percentage returns the derived score percentage. Zero max marks yields 0.
func (m Marks) Percentage() float64 {
	if m.MaxMarks <= 0 {
		return 0
	}
	return m.MarksObtained / m.MaxMarks * 100
}

// LetterGrade maps a percentage onto the fixed grade bands.
func LetterGrade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B+"
	case percentage >= 60:
		return "B"
	case percentage >= 50:
		return "C"
	case percentage >= 40:
		return "D"
	default:
		return "F"
	}
}

// Grade returns the letter grade for this row's percentage.
func (m Marks) Grade() string {
	return LetterGrade(m.Percentage())
}

// MarksRecordInput is one student's entry in a bulk marks request.
type MarksRecordInput struct {
	StudentID     uint    `json:"student_id"`
	MarksObtained float64 `json:"marks_obtained"`
	Remarks       string  `json:"remarks,omitempty"`
}

// BulkMarksRequest carries a whole exam's entries in one call. The context
// fields, including max marks, are shared by every record in the batch.
type BulkMarksRequest struct {
	SubjectID    uint               `json:"subject_id"`
	ExamType     ExamType           `json:"exam_type"`
	MaxMarks     float64            `json:"max_marks"`
	AcademicYear string             `json:"academic_year"`
	Semester     int                `json:"semester"`
	ExamDate     string             `json:"exam_date,omitempty"` // YYYY-MM-DD
	Records      []MarksRecordInput `json:"marks_records"`
}

// Offenders returns the records that violate the marks bounds. A non-empty
// result rejects the whole batch before anything is written.
func (r BulkMarksRequest) Offenders() []MarksRecordInput {
	var bad []MarksRecordInput
	for _, rec := range r.Records {
		if rec.MarksObtained < 0 || rec.MarksObtained > r.MaxMarks {
			bad = append(bad, rec)
		}
	}
	return bad
}
