package models

import (
	"time"

	"gorm.io/gorm"
)

type Student struct {
	gorm.Model
	Name                string    `gorm:"not null"`
	Email               string    `gorm:"unique;not null"`
	Mobile              string    `gorm:"default:''"`
	Password            string    `gorm:"not null" json:"-"`
	RollNumber          string    `gorm:"unique;not null"`
	Department          string    `gorm:"default:''"`
	Semester            int       `gorm:"default:1"`
	Section             string    `gorm:"default:'A'"`
	AcademicYear        string    `gorm:"size:10;default:''"` // e.g. "2025-26"
	GuardianName        string    `gorm:"default:''"`
	GuardianMobile      string    `gorm:"default:''"`
	ProfileImage        string    `gorm:"default:''"`
	LastLogin           time.Time `gorm:"default:NULL"`
	FailedLoginAttempts int       `gorm:"default:0"`
	LastFailedLogin     *time.Time
	IsBlocked           bool `gorm:"default:false"`
	BlockedUntil        *time.Time
	IsDeleted           bool `gorm:"default:false"`
}
