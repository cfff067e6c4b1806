package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetterGradeBands(t *testing.T) {
	cases := []struct {
		percent float64
		grade   string
	}{
		{100, "A+"},
		{90, "A+"},
		{89.9, "A"},
		{80, "A"},
		{79.9, "B+"},
		{70, "B+"},
		{69.9, "B"},
		{60, "B"},
		{59.9, "C"},
		{50, "C"},
		{49.9, "D"},
		{40, "D"},
		{39.9, "F"},
		{0, "F"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.grade, LetterGrade(tc.percent), "percent %.1f", tc.percent)
	}
}

func TestMarksDerivedFields(t *testing.T) {
	m := Marks{MarksObtained: 45, MaxMarks: 50}
	assert.InDelta(t, 90.0, m.Percentage(), 0.001)
	assert.Equal(t, "A+", m.Grade())

	// Zero max marks must not divide by zero.
	zero := Marks{MarksObtained: 10, MaxMarks: 0}
	assert.Equal(t, 0.0, zero.Percentage())
	assert.Equal(t, "F", zero.Grade())
}

func TestBulkMarksOffenders(t *testing.T) {
	req := BulkMarksRequest{
		MaxMarks: 50,
		Records: []MarksRecordInput{
			{StudentID: 1, MarksObtained: 50},
			{StudentID: 2, MarksObtained: 51},
			{StudentID: 3, MarksObtained: -1},
			{StudentID: 4, MarksObtained: 0},
		},
	}

	offenders := req.Offenders()
	assert.Len(t, offenders, 2)
	assert.Equal(t, uint(2), offenders[0].StudentID)
	assert.Equal(t, uint(3), offenders[1].StudentID)
}

func TestBulkMarksOffendersEmptyBatch(t *testing.T) {
	req := BulkMarksRequest{MaxMarks: 100}
	assert.Empty(t, req.Offenders())
}

func TestExamTypeValid(t *testing.T) {
	assert.True(t, ExamInternal1.Valid())
	assert.True(t, ExamUniversity.Valid())
	assert.False(t, ExamType("midterm").Valid())
	assert.False(t, ExamType("").Valid())
}

func TestAttendanceStatusValid(t *testing.T) {
	assert.True(t, AttendancePresent.Valid())
	assert.True(t, AttendanceOnLeave.Valid())
	assert.False(t, AttendanceStatus("excused").Valid())
	assert.False(t, AttendanceStatus("").Valid())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleFaculty.Valid())
	assert.True(t, RoleStudent.Valid())
	assert.False(t, Role("superadmin").Valid())
}
