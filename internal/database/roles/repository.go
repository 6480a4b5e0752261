// Package roles provides database operations for roles.
package roles

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

func (r *Repository) FindAll(ctx context.Context, p result.Pagination) result.Result[result.Page[entities.Role]] {
	q := r.db.WithContext(ctx).Model(&entities.Role{})

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return result.Fail[result.Page[entities.Role]](result.Unexpected(err))
	}

	var roles []entities.Role
	if err := database.Paginate(q.Order("name ASC"), p).Find(&roles).Error; err != nil {
		return result.Fail[result.Page[entities.Role]](result.Unexpected(err))
	}
	return result.Success(result.NewPage(roles, p, total))
}

func (r *Repository) FindByID(ctx context.Context, id string) result.Result[*entities.Role] {
	var role entities.Role
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&role).Error; err != nil {
		return result.Fail[*entities.Role](database.Failure(err, entities.ErrRoleNotFound))
	}
	return result.Success(&role)
}

func (r *Repository) FindByName(ctx context.Context, name string) result.Result[*entities.Role] {
	var role entities.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return result.Fail[*entities.Role](database.Failure(err, entities.ErrRoleNotFound))
	}
	return result.Success(&role)
}

func (r *Repository) Create(ctx context.Context, role *entities.Role) result.Result[*entities.Role] {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return result.Fail[*entities.Role](result.Unexpected(err))
	}
	return result.Success(role)
}

func (r *Repository) Update(ctx context.Context, id string, role *entities.Role) result.Result[*entities.Role] {
	found := r.FindByID(ctx, id)
	if found.IsFailure() {
		return found
	}

	role.ID = id
	if err := r.db.WithContext(ctx).Save(role).Error; err != nil {
		return result.Fail[*entities.Role](result.Unexpected(err))
	}
	return result.Success(role)
}

func (r *Repository) Delete(ctx context.Context, id string) result.Result[*entities.Role] {
	found := r.FindByID(ctx, id)
	if found.IsFailure() {
		return found
	}

	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Role{}).Error; err != nil {
		return result.Fail[*entities.Role](result.Unexpected(err))
	}
	return found
}
