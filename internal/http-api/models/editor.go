package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Editor struct {
	ID        string     `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string     `gorm:"uniqueIndex;not null" json:"name"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"column:password_hash;not null" json:"-"` // Not shown in JSON
	Role      string     `gorm:"default:'editor';not null" json:"role"`  // "editor" or "auto-editor"
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate hook to set UUID before creating an Editor
func (e *Editor) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return
}

func (Editor) TableName() string {
	return "editor"
}
