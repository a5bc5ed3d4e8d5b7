package models

import "time"

type Label struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	GID       string    `json:"gid" gorm:"type:uuid;uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null;index"`
	SortName  string    `json:"sort_name" gorm:"not null"`
	Country   *string   `json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Label) TableName() string {
	return "label"
}
