package entities

// User is a local account mirroring an identity from the access token.
// The ID is the token subject.
type User struct {
	ID           string  `gorm:"primaryKey;size:36" json:"id"`
	Username     string  `gorm:"size:255;not null" json:"username"`
	Email        string  `gorm:"index;size:255;not null" json:"email"`
	IsRestricted bool    `gorm:"not null;default:false" json:"isRestricted"`
	RoleID       *string `gorm:"index;size:36" json:"-"`
	Role         *Role   `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// NewUser creates a user. Username and email must be non-empty.
func NewUser(id, username, email string, isRestricted bool, role *Role) *User {
	if username == "" || email == "" {
		panic("Username and email are required to create a user.")
	}
	u := &User{
		ID:           id,
		Username:     username,
		Email:        email,
		IsRestricted: isRestricted,
	}
	u.SetRole(role)
	return u
}

// SetRole replaces the user's role reference.
func (u *User) SetRole(role *Role) {
	u.Role = role
	if role == nil {
		u.RoleID = nil
		return
	}
	id := role.ID
	u.RoleID = &id
}

// HasPermission reports whether the user's role grants p.
func (u *User) HasPermission(p Permission) bool {
	return u.Role != nil && u.Role.HasPermission(p)
}
