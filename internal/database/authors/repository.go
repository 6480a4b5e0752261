// Package authors provides database operations for author records and the
// author listing.
//
// The authors table only caches enrichment. Which authors exist is decided
// by the distinct author names on books, so FindAll aggregates over books
// and left joins the cached records by case-insensitive name.
package authors

import (
	"context"

	"gorm.io/gorm"

	"github.com/homebranch/server/internal/database"
	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type authorRow struct {
	ID                *string
	Name              string
	Biography         *string
	ProfilePictureURL *string
	BookCount         int64
}

func (r *Repository) FindAll(ctx context.Context, query string, p result.Pagination, userID string) result.Result[result.Page[entities.Author]] {
	filter := func(q *gorm.DB) *gorm.DB {
		if query != "" {
			q = q.Where(`LOWER(books.author) LIKE LOWER(?) ESCAPE '\'`, "%"+database.EscapeLike(query)+"%")
		}
		if userID != "" {
			q = q.Where("books.uploaded_by_user_id = ?", userID)
		}
		return q
	}

	names := filter(r.db.Table("books")).Select("LOWER(books.author)").Group("LOWER(books.author)")

	var total int64
	err := r.db.WithContext(ctx).Table("(?) AS names", names).Count(&total).Error
	if err != nil {
		return result.Fail[result.Page[entities.Author]](result.Unexpected(err))
	}

	var rows []authorRow
	q := filter(r.db.WithContext(ctx).Table("books")).
		Select(`MIN(books.author) AS name,
			COUNT(DISTINCT books.id) AS book_count,
			authors.id AS id,
			authors.biography AS biography,
			authors.profile_picture_url AS profile_picture_url`).
		Joins("LEFT JOIN authors ON LOWER(authors.name) = LOWER(books.author)").
		Group("LOWER(books.author)").
		Order("LOWER(books.author) ASC")
	if err := database.Paginate(q, p).Scan(&rows).Error; err != nil {
		return result.Fail[result.Page[entities.Author]](result.Unexpected(err))
	}

	authors := make([]entities.Author, 0, len(rows))
	for _, row := range rows {
		count := row.BookCount
		author := entities.Author{
			Name:              row.Name,
			Biography:         row.Biography,
			ProfilePictureURL: row.ProfilePictureURL,
			BookCount:         &count,
		}
		if row.ID != nil {
			author.ID = *row.ID
		}
		authors = append(authors, author)
	}
	return result.Success(result.NewPage(authors, p, total))
}

func (r *Repository) FindByName(ctx context.Context, name string) result.Result[*entities.Author] {
	var author entities.Author
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&author).Error
	if err != nil {
		return result.Fail[*entities.Author](database.Failure(err, entities.ErrAuthorNotFound))
	}
	return result.Success(&author)
}

func (r *Repository) Create(ctx context.Context, author *entities.Author) result.Result[*entities.Author] {
	if err := r.db.WithContext(ctx).Create(author).Error; err != nil {
		return result.Fail[*entities.Author](result.Unexpected(err))
	}
	return result.Success(author)
}

// UpdateByName replaces the record stored under name, matched
// case-insensitively. The stored identity is kept.
func (r *Repository) UpdateByName(ctx context.Context, name string, author *entities.Author) result.Result[*entities.Author] {
	existing := r.FindByName(ctx, name)
	if existing.IsFailure() {
		return existing
	}

	author.ID = existing.Value().ID
	err := r.db.WithContext(ctx).Model(&entities.Author{}).Where("id = ?", author.ID).
		Updates(map[string]any{
			"name":                author.Name,
			"biography":           author.Biography,
			"profile_picture_url": author.ProfilePictureURL,
		}).Error
	if err != nil {
		return result.Fail[*entities.Author](result.Unexpected(err))
	}
	return result.Success(author)
}
