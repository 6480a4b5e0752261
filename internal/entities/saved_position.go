package entities

import "time"

// SavedPosition is a user's reading position in a book. There is at most
// one per (book, user) pair.
type SavedPosition struct {
	BookID     string    `gorm:"primaryKey;size:36" json:"bookId"`
	UserID     string    `gorm:"primaryKey;size:36" json:"userId"`
	Position   string    `gorm:"not null" json:"position"`
	DeviceName string    `gorm:"size:255;not null" json:"deviceName"`
	Percentage *float64  `json:"percentage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (SavedPosition) TableName() string {
	return "saved_positions"
}

// NewSavedPosition creates a saved position. Zero timestamps default to now.
func NewSavedPosition(bookID, userID, position, deviceName string, percentage *float64, createdAt, updatedAt time.Time) *SavedPosition {
	if bookID == "" || userID == "" {
		panic("Book ID and User ID are required to create a saved position.")
	}
	now := time.Now()
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = now
	}
	return &SavedPosition{
		BookID:     bookID,
		UserID:     userID,
		Position:   position,
		DeviceName: deviceName,
		Percentage: percentage,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}
