package users

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := "./test_users_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Role{}, &entities.User{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func TestRepository_Create(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	admin := entities.NewRole("r1", entities.AdminRoleName, entities.AllPermissions)
	require.NoError(t, db.Create(admin).Error)

	created := repo.Create(ctx, entities.NewUser("sub-1", "alice@example.com", "alice@example.com", false, admin))

	require.True(t, created.IsSuccess())
	user := created.Value()
	assert.Equal(t, "sub-1", user.ID)
	require.NotNil(t, user.Role)
	assert.True(t, user.Role.IsAdmin())

	var roles int64
	require.NoError(t, db.Model(&entities.Role{}).Count(&roles).Error)
	assert.Equal(t, int64(1), roles)
}

func TestRepository_FindByID(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.True(t, repo.Create(ctx, entities.NewUser("u1", "bob", "bob@example.com", false, nil)).IsSuccess())

	found := repo.FindByID(ctx, "u1")
	require.True(t, found.IsSuccess())
	assert.Equal(t, "bob", found.Value().Username)
	assert.Nil(t, found.Value().Role)

	missing := repo.FindByID(ctx, "ghost")
	require.True(t, missing.IsFailure())
	assert.Same(t, entities.ErrUserNotFound, missing.Failure())
}

func TestRepository_Update(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	role := entities.NewRole("r1", "reader", nil)
	require.NoError(t, db.Create(role).Error)
	require.True(t, repo.Create(ctx, entities.NewUser("u1", "bob", "bob@example.com", false, nil)).IsSuccess())

	user := repo.FindByID(ctx, "u1").Value()
	user.IsRestricted = true
	user.SetRole(role)

	updated := repo.Update(ctx, "u1", user)
	require.True(t, updated.IsSuccess())
	assert.True(t, updated.Value().IsRestricted)
	require.NotNil(t, updated.Value().Role)
	assert.Equal(t, "reader", updated.Value().Role.Name)

	ghost := repo.Update(ctx, "ghost", entities.NewUser("ghost", "g", "g@example.com", false, nil))
	require.True(t, ghost.IsFailure())
	assert.Equal(t, result.CodeNotFound, ghost.Failure().Code())
	assert.True(t, repo.FindByID(ctx, "ghost").IsFailure())
}

func TestRepository_Counts(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	role := entities.NewRole("r1", "reader", nil)
	require.NoError(t, db.Create(role).Error)

	assert.Equal(t, int64(0), repo.Count(ctx).Value())

	require.True(t, repo.Create(ctx, entities.NewUser("u1", "a", "a@example.com", false, role)).IsSuccess())
	require.True(t, repo.Create(ctx, entities.NewUser("u2", "b", "b@example.com", false, nil)).IsSuccess())

	assert.Equal(t, int64(2), repo.Count(ctx).Value())
	assert.Equal(t, int64(1), repo.CountByRoleID(ctx, "r1").Value())
	assert.Equal(t, int64(0), repo.CountByRoleID(ctx, "r2").Value())
}

func TestRepository_FindAll(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	for _, name := range []string{"carol", "alice", "bob"} {
		require.True(t, repo.Create(ctx, entities.NewUser(name, name, name+"@example.com", false, nil)).IsSuccess())
	}

	res := repo.FindAll(ctx, result.Pagination{Limit: 2, Offset: 1})
	require.True(t, res.IsSuccess())
	assert.Equal(t, int64(3), res.Value().Total)
	require.Len(t, res.Value().Data, 2)
	assert.Equal(t, "bob", res.Value().Data[0].Username)
	assert.Nil(t, res.Value().NextCursor)
}
