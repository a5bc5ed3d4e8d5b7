package models

import "time"

type Artist struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	GID       string    `json:"gid" gorm:"type:uuid;uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null;index"`
	SortName  string    `json:"sort_name" gorm:"not null"`
	BeginDate *string   `json:"begin_date,omitempty"`
	EndDate   *string   `json:"end_date,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Artist) TableName() string {
	return "artist"
}
