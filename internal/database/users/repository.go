// Package users provides database operations for user management.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	res := repo.FindByID(ctx, subject)
//
// Users are always loaded with their role.
package users

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/homebranch/server/internal/database"
	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindAll lists users ordered by username.
func (r *Repository) FindAll(ctx context.Context, p result.Pagination) result.Result[result.Page[entities.User]] {
	q := r.db.WithContext(ctx).Model(&entities.User{})

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return result.Fail[result.Page[entities.User]](result.Unexpected(err))
	}

	var users []entities.User
	if err := database.Paginate(q.Preload("Role").Order("username ASC"), p).Find(&users).Error; err != nil {
		return result.Fail[result.Page[entities.User]](result.Unexpected(err))
	}
	return result.Success(result.NewPage(users, p, total))
}

// FindByID retrieves a user by ID.
func (r *Repository) FindByID(ctx context.Context, id string) result.Result[*entities.User] {
	var user entities.User
	err := r.db.WithContext(ctx).Preload("Role").Where("id = ?", id).First(&user).Error
	if err != nil {
		return result.Fail[*entities.User](database.Failure(err, entities.ErrUserNotFound))
	}
	return result.Success(&user)
}

// Create stores a user. The role, if any, must already exist.
func (r *Repository) Create(ctx context.Context, user *entities.User) result.Result[*entities.User] {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return result.Fail[*entities.User](result.Unexpected(err))
	}
	return r.FindByID(ctx, user.ID)
}

// Update overwrites the user's columns including the role reference.
func (r *Repository) Update(ctx context.Context, id string, user *entities.User) result.Result[*entities.User] {
	res := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).
		Updates(map[string]any{
			"username":      user.Username,
			"email":         user.Email,
			"is_restricted": user.IsRestricted,
			"role_id":       user.RoleID,
		})
	if res.Error != nil {
		return result.Fail[*entities.User](result.Unexpected(res.Error))
	}
	if res.RowsAffected == 0 {
		return result.Fail[*entities.User](entities.ErrUserNotFound)
	}
	return r.FindByID(ctx, id)
}

// Count returns the number of users.
func (r *Repository) Count(ctx context.Context) result.Result[int64] {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.User{}).Count(&count).Error; err != nil {
		return result.Fail[int64](result.Unexpected(err))
	}
	return result.Success(count)
}

// CountByRoleID returns the number of users assigned to roleID.
func (r *Repository) CountByRoleID(ctx context.Context, roleID string) result.Result[int64] {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.User{}).Where("role_id = ?", roleID).Count(&count).Error
	if err != nil {
		return result.Fail[int64](result.Unexpected(err))
	}
	return result.Success(count)
}
