package models

import (
	"time"

	"gorm.io/gorm"
)

type Faculty struct {
	gorm.Model
	Name                string    `gorm:"not null"`
	Email               string    `gorm:"unique;not null"`
	Mobile              string    `gorm:"default:''"`
	Password            string    `gorm:"not null" json:"-"`
	Designation         string    `gorm:"default:'Assistant Professor'"`
	Department          string    `gorm:"default:''"`
	Qualification       string    `gorm:"default:''"`
	JoiningDate         time.Time `gorm:"default:NULL"`
	ProfileImage        string    `gorm:"default:''"`
	LastLogin           time.Time `gorm:"default:NULL"`
	FailedLoginAttempts int       `gorm:"default:0"`
	LastFailedLogin     *time.Time
	IsBlocked           bool `gorm:"default:false"`
	BlockedUntil        *time.Time
	IsDeleted           bool `gorm:"default:false"`
}
