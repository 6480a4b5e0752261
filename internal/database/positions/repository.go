// Package positions stores per-user reading positions.
package positions

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

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

func (r *Repository) FindByBookAndUser(ctx context.Context, bookID, userID string) result.Result[*entities.SavedPosition] {
	var pos entities.SavedPosition
	err := r.db.WithContext(ctx).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		First(&pos).Error
	if err != nil {
		return result.Fail[*entities.SavedPosition](database.Failure(err, entities.ErrSavedPositionNotFound))
	}
	return result.Success(&pos)
}

// FindAllByUser returns the user's positions, most recently updated first.
func (r *Repository) FindAllByUser(ctx context.Context, userID string) result.Result[[]entities.SavedPosition] {
	positions := []entities.SavedPosition{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&positions).Error
	if err != nil {
		return result.Fail[[]entities.SavedPosition](result.Unexpected(err))
	}
	return result.Success(positions)
}

// Upsert inserts the position or overwrites the existing one for the same
// (book, user) pair. The original creation time is kept.
func (r *Repository) Upsert(ctx context.Context, position *entities.SavedPosition) result.Result[*entities.SavedPosition] {
	if position.UpdatedAt.IsZero() {
		position.UpdatedAt = time.Now()
	}
	if position.CreatedAt.IsZero() {
		position.CreatedAt = position.UpdatedAt
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "book_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"position", "device_name", "percentage", "updated_at"}),
	}).Create(position).Error
	if err != nil {
		return result.Fail[*entities.SavedPosition](result.Unexpected(err))
	}
	return r.FindByBookAndUser(ctx, position.BookID, position.UserID)
}

func (r *Repository) Delete(ctx context.Context, bookID, userID string) result.Result[*entities.SavedPosition] {
	found := r.FindByBookAndUser(ctx, bookID, userID)
	if found.IsFailure() {
		return found
	}

	err := r.db.WithContext(ctx).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		Delete(&entities.SavedPosition{}).Error
	if err != nil {
		return result.Fail[*entities.SavedPosition](result.Unexpected(err))
	}
	return found
}
