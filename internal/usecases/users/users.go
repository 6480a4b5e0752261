// Package users covers user administration: listing, role assignment and
// account restriction.
package users

import (
	"context"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/usecases"
)

type Actor struct {
	UserID    string
	IPAddress string
}

type GetUsersRequest struct {
	Pagination result.Pagination
}

type GetUsers struct {
	users usecases.UserRepository
}

func NewGetUsers(users usecases.UserRepository) *GetUsers {
	return &GetUsers{users: users}
}

func (uc *GetUsers) Execute(ctx context.Context, req GetUsersRequest) result.Result[result.Page[entities.User]] {
	return uc.users.FindAll(ctx, req.Pagination)
}

type UserIDRequest struct {
	ID    string
	Actor Actor
}

type GetUserByID struct {
	users usecases.UserRepository
}

func NewGetUserByID(users usecases.UserRepository) *GetUserByID {
	return &GetUserByID{users: users}
}

func (uc *GetUserByID) Execute(ctx context.Context, req UserIDRequest) result.Result[*entities.User] {
	return uc.users.FindByID(ctx, req.ID)
}

type AssignRoleRequest struct {
	UserID string
	RoleID string
	Actor  Actor
}

// AssignRole points a user at a role. Either lookup failing is returned
// as is; the user is only written when both exist.
type AssignRole struct {
	users usecases.UserRepository
	roles usecases.RoleRepository
	audit usecases.AuditLogger
}

func NewAssignRole(users usecases.UserRepository, roles usecases.RoleRepository, audit usecases.AuditLogger) *AssignRole {
	return &AssignRole{users: users, roles: roles, audit: audit}
}

func (uc *AssignRole) Execute(ctx context.Context, req AssignRoleRequest) result.Result[*entities.User] {
	user := uc.users.FindByID(ctx, req.UserID)
	if user.IsFailure() {
		return user
	}

	role := uc.roles.FindByID(ctx, req.RoleID)
	if role.IsFailure() {
		return result.Forward[*entities.User](role)
	}

	u := user.Value()
	u.SetRole(role.Value())

	updated := uc.users.Update(ctx, req.UserID, u)
	if updated.IsSuccess() {
		record(uc.audit, req.Actor, "role_assign", "Assign role "+role.Value().Name, req.UserID)
	}
	return updated
}

// RestrictUser blocks a user from the API.
type RestrictUser struct {
	users usecases.UserRepository
	audit usecases.AuditLogger
}

func NewRestrictUser(users usecases.UserRepository, audit usecases.AuditLogger) *RestrictUser {
	return &RestrictUser{users: users, audit: audit}
}

func (uc *RestrictUser) Execute(ctx context.Context, req UserIDRequest) result.Result[*entities.User] {
	return setRestricted(ctx, uc.users, uc.audit, req, true)
}

type UnrestrictUser struct {
	users usecases.UserRepository
	audit usecases.AuditLogger
}

func NewUnrestrictUser(users usecases.UserRepository, audit usecases.AuditLogger) *UnrestrictUser {
	return &UnrestrictUser{users: users, audit: audit}
}

func (uc *UnrestrictUser) Execute(ctx context.Context, req UserIDRequest) result.Result[*entities.User] {
	return setRestricted(ctx, uc.users, uc.audit, req, false)
}

func setRestricted(ctx context.Context, users usecases.UserRepository, audit usecases.AuditLogger, req UserIDRequest, restricted bool) result.Result[*entities.User] {
	found := users.FindByID(ctx, req.ID)
	if found.IsFailure() {
		return found
	}

	user := found.Value()
	user.IsRestricted = restricted

	updated := users.Update(ctx, req.ID, user)
	if updated.IsSuccess() {
		action := "user_unrestrict"
		if restricted {
			action = "user_restrict"
		}
		record(audit, req.Actor, action, action+" "+user.Username, req.ID)
	}
	return updated
}

func record(logger usecases.AuditLogger, actor Actor, action, description, userID string) {
	usecases.Audit(logger, &entities.AuditEvent{
		UserID:      actor.UserID,
		EventType:   entities.AuditEventUser,
		Action:      action,
		Description: description,
		EntityType:  "user",
		EntityID:    &userID,
		IPAddress:   actor.IPAddress,
		Status:      entities.AuditStatusSuccess,
	})
}
