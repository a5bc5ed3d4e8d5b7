package models

import "time"

// Release attribute codes. 1-99 are release types, 100+ are statuses.
// The enumeration is closed: collections may only ignore codes listed here.
const (
	AttrAlbum         = 1
	AttrSingle        = 2
	AttrEP            = 3
	AttrCompilation   = 4
	AttrSoundtrack    = 5
	AttrSpokenword    = 6
	AttrInterview     = 7
	AttrAudiobook     = 8
	AttrLive          = 9
	AttrRemix         = 10
	AttrOther         = 11
	AttrOfficial      = 100
	AttrPromotion     = 101
	AttrBootleg       = 102
	AttrPseudoRelease = 103
)

var attributeNames = map[int]string{
	AttrAlbum:         "Album",
	AttrSingle:        "Single",
	AttrEP:            "EP",
	AttrCompilation:   "Compilation",
	AttrSoundtrack:    "Soundtrack",
	AttrSpokenword:    "Spokenword",
	AttrInterview:     "Interview",
	AttrAudiobook:     "Audiobook",
	AttrLive:          "Live",
	AttrRemix:         "Remix",
	AttrOther:         "Other",
	AttrOfficial:      "Official",
	AttrPromotion:     "Promotion",
	AttrBootleg:       "Bootleg",
	AttrPseudoRelease: "PseudoRelease",
}

// ValidAttribute reports whether code belongs to the closed enumeration.
func ValidAttribute(code int) bool {
	_, ok := attributeNames[code]
	return ok
}

// AttributeName returns the display name for a known code, "" otherwise.
func AttributeName(code int) string {
	return attributeNames[code]
}

// DefaultIgnoredAttributes is the ignore set a new collection starts with:
// secondary release types and non-official statuses that most subscribers
// do not want release warnings for.
func DefaultIgnoredAttributes() AttributeSet {
	return AttributeSet{
		AttrCompilation,
		AttrSoundtrack,
		AttrSpokenword,
		AttrInterview,
		AttrAudiobook,
		AttrRemix,
		AttrOther,
		AttrPromotion,
		AttrBootleg,
		AttrPseudoRelease,
	}
}

type Release struct {
	ID          int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	GID         string       `json:"gid" gorm:"type:uuid;uniqueIndex;not null"`
	ArtistID    int64        `json:"artist_id" gorm:"not null;index"`
	Title       string       `json:"title" gorm:"not null"`
	ReleaseDate *time.Time   `json:"release_date,omitempty"`
	Attributes  AttributeSet `json:"attributes"`
	Barcode     *string      `json:"barcode,omitempty"`
	CreatedAt   time.Time    `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Artist *Artist `json:"artist,omitempty" gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE;"`
	Tracks []Track `json:"tracks,omitempty" gorm:"foreignKey:ReleaseID"`
}

func (Release) TableName() string {
	return "release"
}

// HasAttribute reports whether the release carries the given attribute code.
func (r *Release) HasAttribute(code int) bool {
	return r.Attributes.Contains(code)
}
