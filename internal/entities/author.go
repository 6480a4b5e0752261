package entities

import "encoding/json"

// Author is the enrichment record for a name that appears on books.
// Names are unique ignoring case.
// Listing queries also produce unsaved authors (empty ID) carrying
// only a name and a BookCount.
type Author struct {
	ID                string  `gorm:"primaryKey;size:36" json:"id"`
	Name              string  `gorm:"type:text COLLATE NOCASE;uniqueIndex;not null" json:"name"`
	Biography         *string `gorm:"type:text" json:"biography"`
	ProfilePictureURL *string `gorm:"size:2048" json:"profilePictureUrl"`
	BookCount         *int64  `gorm:"-" json:"bookCount,omitempty"`
}

func (Author) TableName() string {
	return "authors"
}

// NewAuthor creates an author. Name must be non-empty.
func NewAuthor(id, name string, biography, profilePictureURL *string) *Author {
	if name == "" {
		panic("Name is required to create an author.")
	}
	return &Author{
		ID:                id,
		Name:              name,
		Biography:         biography,
		ProfilePictureURL: profilePictureURL,
	}
}

// IsEnriched reports whether a biography or a photo has been stored.
func (a *Author) IsEnriched() bool {
	return a.Biography != nil || a.ProfilePictureURL != nil
}

// MarshalJSON renders an empty ID as null.
func (a Author) MarshalJSON() ([]byte, error) {
	type plain Author
	var id *string
	if a.ID != "" {
		id = &a.ID
	}
	return json.Marshal(struct {
		ID *string `json:"id"`
		plain
	}{ID: id, plain: plain(a)})
}
