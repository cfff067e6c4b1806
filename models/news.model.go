package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type News struct {
	gorm.Model
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	PublishedAt time.Time `gorm:"index" json:"published_at"`
	PostedBy    uint      `json:"posted_by"` // admin id
	IsPublished bool      `gorm:"default:true" json:"is_published"`
	IsDeleted   bool      `gorm:"default:false" json:"-"`
}

type Event struct {
	gorm.Model
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Venue       string         `gorm:"default:''" json:"venue"`
	EventDate   time.Time      `gorm:"index;not null" json:"event_date"`
	Gallery     datatypes.JSON `json:"gallery,omitempty"` // image URLs
	PostedBy    uint           `json:"posted_by"`
	IsDeleted   bool           `gorm:"default:false" json:"-"`
}

type Achievement struct {
	gorm.Model
	Title             string `gorm:"not null" json:"title"`
	Description       string `gorm:"type:text" json:"description"`
	StudentID         *uint  `gorm:"index" json:"student_id,omitempty"` // nil for department-level
	CertificateNumber string `gorm:"unique;size:64" json:"certificate_number"`
	PostedBy          uint   `json:"posted_by"`
	IsDeleted         bool   `gorm:"default:false" json:"-"`
}
