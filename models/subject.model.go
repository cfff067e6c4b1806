package models

import "gorm.io/gorm"

type Subject struct {
	gorm.Model
	Code         string `gorm:"unique;not null;size:20"` // e.g. "CS501"
	Name         string `gorm:"not null"`
	Department   string `gorm:"default:''"`
	Semester     int    `gorm:"default:1"`
	Credits      int    `gorm:"default:3"`
	AcademicYear string `gorm:"size:10;default:''"`
	FacultyID    uint   `gorm:"index"` // subject in-charge
	IsDeleted    bool   `gorm:"default:false"`
}
