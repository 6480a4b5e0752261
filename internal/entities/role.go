package entities

import "strings"

// Permission is a capability granted by a role.
type Permission string

const (
	PermissionManageUsers       Permission = "manage_users"
	PermissionManageRoles       Permission = "manage_roles"
	PermissionManageBooks       Permission = "manage_books"
	PermissionManageBookshelves Permission = "manage_bookshelves"
)

// AllPermissions lists every known permission.
var AllPermissions = []Permission{
	PermissionManageUsers,
	PermissionManageRoles,
	PermissionManageBooks,
	PermissionManageBookshelves,
}

// AdminRoleName is the role seeded on first start and assigned to the first user.
const AdminRoleName = "admin"

// IsValid reports whether p is one of the known permissions.
func (p Permission) IsValid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

type Role struct {
	ID          string       `gorm:"primaryKey;size:36" json:"id"`
	Name        string       `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Permissions []Permission `gorm:"serializer:json;type:text" json:"permissions"`
}

func (Role) TableName() string {
	return "roles"
}

// NewRole creates a role. Name must be non-empty.
func NewRole(id, name string, permissions []Permission) *Role {
	if name == "" {
		panic("Name is required to create a role.")
	}
	if permissions == nil {
		permissions = []Permission{}
	}
	return &Role{ID: id, Name: name, Permissions: permissions}
}

// HasPermission reports whether the role grants p.
func (r *Role) HasPermission(p Permission) bool {
	for _, granted := range r.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role is the administrator role.
func (r *Role) IsAdmin() bool {
	return strings.EqualFold(r.Name, AdminRoleName)
}
