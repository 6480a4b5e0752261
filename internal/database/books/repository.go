// Package books provides database operations for books.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	res := repo.FindByID(ctx, id)
//
// Listing queries take an optional uploader filter: an empty userID lists
// every book.
package books

import (
	"context"

	"gorm.io/gorm"

	"github.com/homebranch/server/internal/database"
	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
)

const defaultOrder = "LOWER(title) ASC, id ASC"

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByID(ctx context.Context, id string) result.Result[*entities.Book] {
	var book entities.Book
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error; err != nil {
		return result.Fail[*entities.Book](database.Failure(err, entities.ErrBookNotFound))
	}
	return result.Success(&book)
}

// FindByTitle returns the first book with exactly this title.
func (r *Repository) FindByTitle(ctx context.Context, title string) result.Result[*entities.Book] {
	var book entities.Book
	if err := r.db.WithContext(ctx).Where("title = ?", title).Order("created_at ASC").First(&book).Error; err != nil {
		return result.Fail[*entities.Book](database.Failure(err, entities.ErrBookNotFound))
	}
	return result.Success(&book)
}

func (r *Repository) Create(ctx context.Context, book *entities.Book) result.Result[*entities.Book] {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return result.Fail[*entities.Book](result.Unexpected(err))
	}
	return result.Success(book)
}

// Update overwrites every column of the book with the given id.
func (r *Repository) Update(ctx context.Context, id string, book *entities.Book) result.Result[*entities.Book] {
	var existing entities.Book
	if err := r.db.WithContext(ctx).Select("id", "created_at").Where("id = ?", id).First(&existing).Error; err != nil {
		return result.Fail[*entities.Book](database.Failure(err, entities.ErrBookNotFound))
	}

	book.ID = id
	book.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(book).Error; err != nil {
		return result.Fail[*entities.Book](result.Unexpected(err))
	}
	return result.Success(book)
}

// Delete removes the book and its shelf memberships and returns what was
// removed.
func (r *Repository) Delete(ctx context.Context, id string) result.Result[*entities.Book] {
	found := r.FindByID(ctx, id)
	if found.IsFailure() {
		return found
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM book_shelf_books WHERE book_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Book{}).Error
	})
	if err != nil {
		return result.Fail[*entities.Book](result.Unexpected(err))
	}
	return found
}

func (r *Repository) FindAll(ctx context.Context, p result.Pagination, userID string) result.Result[result.Page[entities.Book]] {
	return r.page(r.scope(ctx, userID), p)
}

// FindByAuthor matches the author name case-insensitively.
func (r *Repository) FindByAuthor(ctx context.Context, author string, p result.Pagination, userID string) result.Result[result.Page[entities.Book]] {
	q := r.scope(ctx, userID).Where("LOWER(author) = LOWER(?)", author)
	return r.page(q, p)
}

func (r *Repository) FindFavorites(ctx context.Context, p result.Pagination, userID string) result.Result[result.Page[entities.Book]] {
	q := r.scope(ctx, userID).Where("is_favorite = ?", true)
	return r.page(q, p)
}

func (r *Repository) FindByBookShelfID(ctx context.Context, shelfID string, p result.Pagination) result.Result[result.Page[entities.Book]] {
	q := r.scope(ctx, "").
		Where("id IN (?)", r.db.Table("book_shelf_books").Select("book_id").Where("book_shelf_id = ?", shelfID))
	return r.page(q, p)
}

// FindWithoutSummary returns up to limit books that have no summary yet,
// oldest first.
func (r *Repository) FindWithoutSummary(ctx context.Context, limit int) result.Result[[]entities.Book] {
	var books []entities.Book
	q := r.db.WithContext(ctx).Where("summary IS NULL OR summary = ''").Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&books).Error; err != nil {
		return result.Fail[[]entities.Book](result.Unexpected(err))
	}
	return result.Success(books)
}

func (r *Repository) SearchByTitle(ctx context.Context, query string, p result.Pagination, userID string) result.Result[result.Page[entities.Book]] {
	return r.page(r.titleLike(r.scope(ctx, userID), query), p)
}

func (r *Repository) SearchFavoritesByTitle(ctx context.Context, query string, p result.Pagination, userID string) result.Result[result.Page[entities.Book]] {
	q := r.titleLike(r.scope(ctx, userID).Where("is_favorite = ?", true), query)
	return r.page(q, p)
}

func (r *Repository) SearchByAuthorAndTitle(ctx context.Context, author, query string, p result.Pagination, userID string) result.Result[result.Page[entities.Book]] {
	q := r.titleLike(r.scope(ctx, userID).Where("LOWER(author) = LOWER(?)", author), query)
	return r.page(q, p)
}

func (r *Repository) scope(ctx context.Context, userID string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entities.Book{})
	if userID != "" {
		q = q.Where("uploaded_by_user_id = ?", userID)
	}
	return q
}

func (r *Repository) titleLike(q *gorm.DB, query string) *gorm.DB {
	return q.Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`, "%"+database.EscapeLike(query)+"%")
}

func (r *Repository) page(q *gorm.DB, p result.Pagination) result.Result[result.Page[entities.Book]] {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return result.Fail[result.Page[entities.Book]](result.Unexpected(err))
	}

	var books []entities.Book
	if err := database.Paginate(q.Order(defaultOrder), p).Find(&books).Error; err != nil {
		return result.Fail[result.Page[entities.Book]](result.Unexpected(err))
	}
	return result.Success(result.NewPage(books, p, total))
}
