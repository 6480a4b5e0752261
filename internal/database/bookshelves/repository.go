// Package bookshelves provides database operations for shelves and their
// book membership. Membership lives in the book_shelf_books join table.
package bookshelves

import (
	"context"

	"gorm.io/gorm"

	"github.com/homebranch/server/internal/database"
	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
)

const joinTable = "book_shelf_books"

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByID(ctx context.Context, id string) result.Result[*entities.BookShelf] {
	var shelf entities.BookShelf
	err := r.withBooks(ctx).Where("id = ?", id).First(&shelf).Error
	if err != nil {
		return result.Fail[*entities.BookShelf](database.Failure(err, entities.ErrBookShelfNotFound))
	}
	return result.Success(&shelf)
}

func (r *Repository) FindByTitle(ctx context.Context, title string) result.Result[*entities.BookShelf] {
	var shelf entities.BookShelf
	err := r.withBooks(ctx).Where("title = ?", title).First(&shelf).Error
	if err != nil {
		return result.Fail[*entities.BookShelf](database.Failure(err, entities.ErrBookShelfNotFound))
	}
	return result.Success(&shelf)
}

// FindAll lists shelves created by userID or by nobody. An empty userID
// lists every shelf.
func (r *Repository) FindAll(ctx context.Context, p result.Pagination, userID string) result.Result[result.Page[entities.BookShelf]] {
	q := r.db.WithContext(ctx).Model(&entities.BookShelf{})
	if userID != "" {
		q = q.Where("created_by_user_id = ? OR created_by_user_id IS NULL", userID)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return result.Fail[result.Page[entities.BookShelf]](result.Unexpected(err))
	}

	var shelves []entities.BookShelf
	err := database.Paginate(q.Preload("Books").Order("LOWER(title) ASC, id ASC"), p).Find(&shelves).Error
	if err != nil {
		return result.Fail[result.Page[entities.BookShelf]](result.Unexpected(err))
	}
	return result.Success(result.NewPage(shelves, p, total))
}

// FindByBookID lists the shelves holding bookID.
func (r *Repository) FindByBookID(ctx context.Context, bookID string) result.Result[[]entities.BookShelf] {
	var shelves []entities.BookShelf
	err := r.withBooks(ctx).
		Where("id IN (?)", r.db.Table(joinTable).Select("book_shelf_id").Where("book_id = ?", bookID)).
		Order("LOWER(title) ASC").
		Find(&shelves).Error
	if err != nil {
		return result.Fail[[]entities.BookShelf](result.Unexpected(err))
	}
	return result.Success(shelves)
}

func (r *Repository) Create(ctx context.Context, shelf *entities.BookShelf) result.Result[*entities.BookShelf] {
	if err := r.db.WithContext(ctx).Create(shelf).Error; err != nil {
		return result.Fail[*entities.BookShelf](result.Unexpected(err))
	}
	return result.Success(shelf)
}

// Update writes the shelf's own columns. Membership is changed through
// AddBook and RemoveBook only.
func (r *Repository) Update(ctx context.Context, id string, shelf *entities.BookShelf) result.Result[*entities.BookShelf] {
	res := r.db.WithContext(ctx).Model(&entities.BookShelf{}).Where("id = ?", id).
		Updates(map[string]any{
			"title":              shelf.Title,
			"created_by_user_id": shelf.CreatedByUserID,
		})
	if res.Error != nil {
		return result.Fail[*entities.BookShelf](result.Unexpected(res.Error))
	}
	if res.RowsAffected == 0 {
		return result.Fail[*entities.BookShelf](entities.ErrBookShelfNotFound)
	}
	return r.FindByID(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id string) result.Result[*entities.BookShelf] {
	found := r.FindByID(ctx, id)
	if found.IsFailure() {
		return found
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM "+joinTable+" WHERE book_shelf_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.BookShelf{}).Error
	})
	if err != nil {
		return result.Fail[*entities.BookShelf](result.Unexpected(err))
	}
	return found
}

// AddBook links bookID to the shelf and returns the reloaded shelf.
// Linking an already linked book is a no-op.
func (r *Repository) AddBook(ctx context.Context, shelfID, bookID string) result.Result[*entities.BookShelf] {
	err := r.db.WithContext(ctx).
		Exec("INSERT OR IGNORE INTO "+joinTable+" (book_shelf_id, book_id) VALUES (?, ?)", shelfID, bookID).Error
	if err != nil {
		return result.Fail[*entities.BookShelf](result.Unexpected(err))
	}
	return r.FindByID(ctx, shelfID)
}

func (r *Repository) RemoveBook(ctx context.Context, shelfID, bookID string) result.Result[*entities.BookShelf] {
	err := r.db.WithContext(ctx).
		Exec("DELETE FROM "+joinTable+" WHERE book_shelf_id = ? AND book_id = ?", shelfID, bookID).Error
	if err != nil {
		return result.Fail[*entities.BookShelf](result.Unexpected(err))
	}
	return r.FindByID(ctx, shelfID)
}

func (r *Repository) withBooks(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Books", func(db *gorm.DB) *gorm.DB {
		return db.Order("LOWER(books.title) ASC")
	})
}
