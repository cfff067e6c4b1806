package models

import (
	"time"

	"gorm.io/gorm"
)

type LoginTracking struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Role      Role      `gorm:"size:10;not null;index" json:"role"`
	IPAddress string    `json:"ip_address"`
	Device    string    `json:"device"`
	Timestamp time.Time `json:"timestamp"`
	IsDeleted bool      `gorm:"default:false" json:"-"`
}
