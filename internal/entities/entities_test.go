package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook(t *testing.T) {
	t.Run("stores required fields unchanged", func(t *testing.T) {
		b := NewBook("id-1", "Dune", "Frank Herbert", "dune.epub", false)
		assert.Equal(t, "id-1", b.ID)
		assert.Equal(t, "Dune", b.Title)
		assert.Equal(t, "Frank Herbert", b.Author)
		assert.Equal(t, "dune.epub", b.FileName)
		assert.False(t, b.IsFavorite)
		assert.Nil(t, b.PublishedYear)
	})

	t.Run("panics without title", func(t *testing.T) {
		assert.PanicsWithValue(t, "Title and author are required to create a book.", func() {
			NewBook("id", "", "Frank Herbert", "f.epub", false)
		})
	})

	t.Run("panics without author", func(t *testing.T) {
		assert.Panics(t, func() { NewBook("id", "Dune", "", "f.epub", false) })
	})
}

func TestBook_Ownership(t *testing.T) {
	b := NewBook("id", "Dune", "Frank Herbert", "f.epub", false)
	assert.False(t, b.HasUploader())
	assert.False(t, b.IsOwnedBy("u1"))

	uploader := "u1"
	b.UploadedByUserID = &uploader
	assert.True(t, b.HasUploader())
	assert.True(t, b.IsOwnedBy("u1"))
	assert.False(t, b.IsOwnedBy("u2"))
}

func TestNewAuthor(t *testing.T) {
	bio := "Wrote Dune."
	a := NewAuthor("a1", "Frank Herbert", &bio, nil)
	assert.Equal(t, "Frank Herbert", a.Name)
	assert.True(t, a.IsEnriched())

	plain := NewAuthor("a2", "Nobody", nil, nil)
	assert.False(t, plain.IsEnriched())

	assert.PanicsWithValue(t, "Name is required to create an author.", func() {
		NewAuthor("a3", "", nil, nil)
	})
}

func TestAuthor_MarshalJSON(t *testing.T) {
	count := int64(3)
	unsaved := Author{Name: "Frank Herbert", BookCount: &count}

	data, err := json.Marshal(unsaved)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded["id"])
	assert.Equal(t, "Frank Herbert", decoded["name"])
	assert.Equal(t, float64(3), decoded["bookCount"])

	saved := Author{ID: "a1", Name: "Frank Herbert"}
	data, err = json.Marshal(saved)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "a1", decoded["id"])
}

func TestNewBookShelf(t *testing.T) {
	s := NewBookShelf("s1", "Sci-Fi", nil, nil)
	assert.Equal(t, "Sci-Fi", s.Title)
	assert.NotNil(t, s.Books)
	assert.False(t, s.Contains("b1"))

	s.Books = append(s.Books, Book{ID: "b1"})
	assert.True(t, s.Contains("b1"))

	assert.PanicsWithValue(t, "Title is required to create a bookshelf.", func() {
		NewBookShelf("s2", "", nil, nil)
	})
}

func TestNewRole(t *testing.T) {
	r := NewRole("r1", "admin", []Permission{PermissionManageUsers})
	assert.True(t, r.HasPermission(PermissionManageUsers))
	assert.False(t, r.HasPermission(PermissionManageRoles))
	assert.True(t, r.IsAdmin())
	assert.False(t, NewRole("r2", "reader", nil).IsAdmin())

	assert.PanicsWithValue(t, "Name is required to create a role.", func() {
		NewRole("r3", "", nil)
	})
}

func TestPermission_IsValid(t *testing.T) {
	for _, p := range AllPermissions {
		assert.True(t, p.IsValid(), string(p))
	}
	assert.False(t, Permission("launch_rockets").IsValid())
}

func TestNewUser(t *testing.T) {
	role := NewRole("r1", "admin", []Permission{PermissionManageRoles})
	u := NewUser("u1", "alice", "alice@example.com", false, role)

	require.NotNil(t, u.RoleID)
	assert.Equal(t, "r1", *u.RoleID)
	assert.True(t, u.HasPermission(PermissionManageRoles))
	assert.False(t, u.HasPermission(PermissionManageUsers))

	u.SetRole(nil)
	assert.Nil(t, u.RoleID)
	assert.False(t, u.HasPermission(PermissionManageRoles))

	assert.PanicsWithValue(t, "Username and email are required to create a user.", func() {
		NewUser("u2", "", "x@example.com", false, nil)
	})
	assert.Panics(t, func() { NewUser("u3", "bob", "", false, nil) })
}

func TestNewSavedPosition(t *testing.T) {
	t.Run("defaults timestamps to now", func(t *testing.T) {
		before := time.Now()
		p := NewSavedPosition("b1", "u1", "epubcfi(/6/4)", "Kobo", nil, time.Time{}, time.Time{})
		assert.False(t, p.CreatedAt.Before(before))
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)
		assert.Nil(t, p.Percentage)
	})

	t.Run("keeps explicit timestamps", func(t *testing.T) {
		created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		updated := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		pct := 0.42
		p := NewSavedPosition("b1", "u1", "pos", "Phone", &pct, created, updated)
		assert.Equal(t, created, p.CreatedAt)
		assert.Equal(t, updated, p.UpdatedAt)
		assert.Equal(t, 0.42, *p.Percentage)
	})

	t.Run("panics without identity", func(t *testing.T) {
		assert.PanicsWithValue(t, "Book ID and User ID are required to create a saved position.", func() {
			NewSavedPosition("", "u1", "pos", "Phone", nil, time.Time{}, time.Time{})
		})
		assert.Panics(t, func() {
			NewSavedPosition("b1", "", "pos", "Phone", nil, time.Time{}, time.Time{})
		})
	})
}
