package models

type Track struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	GID       string `json:"gid" gorm:"type:uuid;uniqueIndex;not null"`
	ReleaseID int64  `json:"release_id" gorm:"not null;index"`
	ArtistID  int64  `json:"artist_id" gorm:"not null;index"`
	Name      string `json:"name" gorm:"not null"`
	Position  int    `json:"position" gorm:"not null"`
	LengthMS  *int   `json:"length_ms,omitempty"`

	// Associations
	Release *Release `json:"release,omitempty" gorm:"foreignKey:ReleaseID;constraint:OnDelete:CASCADE;"`
}

func (Track) TableName() string {
	return "track"
}
