package models

import "time"

type Notification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EditorID  string    `gorm:"type:uuid;not null;index" json:"editor_id"`
	Type      string    `gorm:"not null" json:"type"` // UPCOMING_RELEASE, NEW_RELEASE
	ReleaseID int64     `json:"release_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Associations
	Editor  *Editor  `gorm:"foreignKey:EditorID" json:"editor,omitempty"`
	Release *Release `gorm:"foreignKey:ReleaseID" json:"release,omitempty"`
}

func (Notification) TableName() string {
	return "notification"
}
