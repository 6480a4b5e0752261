package entities

import "time"

// Book is an uploaded e-book. Author is free text; author records are
// matched to books by case-insensitive name.
type Book struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	Title              string    `gorm:"index;size:512;not null" json:"title"`
	Author             string    `gorm:"index;size:256;not null" json:"author"`
	FileName           string    `gorm:"size:255;not null" json:"fileName"`
	IsFavorite         bool      `gorm:"not null;default:false" json:"isFavorite"`
	PublishedYear      *int      `json:"publishedYear,omitempty"`
	CoverImageFileName *string   `gorm:"size:255" json:"coverImageFileName,omitempty"`
	Summary            *string   `gorm:"type:text" json:"summary,omitempty"`
	UploadedByUserID   *string   `gorm:"index;size:36" json:"uploadedByUserId,omitempty"`
	CreatedAt          time.Time `json:"-"`
	UpdatedAt          time.Time `json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// NewBook creates a book. Title and author must be non-empty.
func NewBook(id, title, author, fileName string, isFavorite bool) *Book {
	if title == "" || author == "" {
		panic("Title and author are required to create a book.")
	}
	return &Book{
		ID:         id,
		Title:      title,
		Author:     author,
		FileName:   fileName,
		IsFavorite: isFavorite,
	}
}

// IsOwnedBy reports whether userID is the recorded uploader.
// Books without a recorded uploader are owned by nobody.
func (b *Book) IsOwnedBy(userID string) bool {
	return b.UploadedByUserID != nil && *b.UploadedByUserID == userID
}

// HasUploader reports whether an uploader was recorded at creation.
func (b *Book) HasUploader() bool {
	return b.UploadedByUserID != nil && *b.UploadedByUserID != ""
}
