package entities

import "time"

// BookShelf groups books. Membership carries no metadata of its own.
type BookShelf struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Books           []Book    `gorm:"many2many:book_shelf_books;constraint:OnDelete:CASCADE" json:"books"`
	CreatedByUserID *string   `gorm:"index;size:36" json:"createdByUserId,omitempty"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

func (BookShelf) TableName() string {
	return "book_shelves"
}

// NewBookShelf creates a bookshelf. Title must be non-empty.
func NewBookShelf(id, title string, books []Book, createdByUserID *string) *BookShelf {
	if title == "" {
		panic("Title is required to create a bookshelf.")
	}
	if books == nil {
		books = []Book{}
	}
	return &BookShelf{
		ID:              id,
		Title:           title,
		Books:           books,
		CreatedByUserID: createdByUserID,
	}
}

// Contains reports whether the shelf already holds bookID.
func (s *BookShelf) Contains(bookID string) bool {
	for _, b := range s.Books {
		if b.ID == bookID {
			return true
		}
	}
	return false
}
