// Package roles manages roles and their permission sets. Role names are
// unique; a role still assigned to users cannot be deleted.
package roles

import (
	"context"

	"github.com/google/uuid"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/usecases"
)

// Actor identifies who performs a role change, for the audit trail.
type Actor struct {
	UserID    string
	IPAddress string
}

type CreateRoleRequest struct {
	Name        string
	Permissions []string
	Actor       Actor
}

type CreateRole struct {
	roles usecases.RoleRepository
	audit usecases.AuditLogger
}

func NewCreateRole(roles usecases.RoleRepository, audit usecases.AuditLogger) *CreateRole {
	return &CreateRole{roles: roles, audit: audit}
}

func (uc *CreateRole) Execute(ctx context.Context, req CreateRoleRequest) result.Result[*entities.Role] {
	permissions, ok := parsePermissions(req.Permissions)
	if !ok {
		return result.Fail[*entities.Role](entities.ErrInvalidRole)
	}

	if uc.roles.FindByName(ctx, req.Name).IsSuccess() {
		return result.Fail[*entities.Role](entities.ErrDuplicateRoleName)
	}

	created := uc.roles.Create(ctx, entities.NewRole(uuid.NewString(), req.Name, permissions))
	if created.IsSuccess() {
		record(uc.audit, req.Actor, "role_create", "Create role "+req.Name, created.Value().ID)
	}
	return created
}

type UpdateRoleRequest struct {
	ID          string
	Name        *string
	Permissions []string
	Actor       Actor
}

// UpdateRole renames a role or replaces its permission set. A nil
// Permissions slice keeps the current set; an empty one clears it.
type UpdateRole struct {
	roles usecases.RoleRepository
	audit usecases.AuditLogger
}

func NewUpdateRole(roles usecases.RoleRepository, audit usecases.AuditLogger) *UpdateRole {
	return &UpdateRole{roles: roles, audit: audit}
}

func (uc *UpdateRole) Execute(ctx context.Context, req UpdateRoleRequest) result.Result[*entities.Role] {
	found := uc.roles.FindByID(ctx, req.ID)
	if found.IsFailure() {
		return found
	}
	role := found.Value()

	if req.Permissions != nil {
		permissions, ok := parsePermissions(req.Permissions)
		if !ok {
			return result.Fail[*entities.Role](entities.ErrInvalidRole)
		}
		role.Permissions = permissions
	}

	if req.Name != nil && *req.Name != role.Name {
		if *req.Name == "" {
			return result.Fail[*entities.Role](entities.ErrInvalidRole)
		}
		clash := uc.roles.FindByName(ctx, *req.Name)
		if clash.IsSuccess() && clash.Value().ID != role.ID {
			return result.Fail[*entities.Role](entities.ErrDuplicateRoleName)
		}
		role.Name = *req.Name
	}

	updated := uc.roles.Update(ctx, req.ID, role)
	if updated.IsSuccess() {
		record(uc.audit, req.Actor, "role_update", "Update role "+role.Name, req.ID)
	}
	return updated
}

type DeleteRoleRequest struct {
	ID    string
	Actor Actor
}

// DeleteRole checks existence, then assigned users, then deletes.
type DeleteRole struct {
	roles usecases.RoleRepository
	users usecases.UserRepository
	audit usecases.AuditLogger
}

func NewDeleteRole(roles usecases.RoleRepository, users usecases.UserRepository, audit usecases.AuditLogger) *DeleteRole {
	return &DeleteRole{roles: roles, users: users, audit: audit}
}

func (uc *DeleteRole) Execute(ctx context.Context, req DeleteRoleRequest) result.Result[*entities.Role] {
	found := uc.roles.FindByID(ctx, req.ID)
	if found.IsFailure() {
		return found
	}

	count := uc.users.CountByRoleID(ctx, req.ID)
	if count.IsFailure() {
		return result.Forward[*entities.Role](count)
	}
	if count.Value() > 0 {
		return result.Fail[*entities.Role](entities.ErrRoleHasAssignedUsers)
	}

	deleted := uc.roles.Delete(ctx, req.ID)
	if deleted.IsSuccess() {
		record(uc.audit, req.Actor, "role_delete", "Delete role "+found.Value().Name, req.ID)
	}
	return deleted
}

type GetRolesRequest struct {
	Pagination result.Pagination
}

type GetRoles struct {
	roles usecases.RoleRepository
}

func NewGetRoles(roles usecases.RoleRepository) *GetRoles {
	return &GetRoles{roles: roles}
}

func (uc *GetRoles) Execute(ctx context.Context, req GetRolesRequest) result.Result[result.Page[entities.Role]] {
	return uc.roles.FindAll(ctx, req.Pagination)
}

func parsePermissions(raw []string) ([]entities.Permission, bool) {
	permissions := make([]entities.Permission, 0, len(raw))
	seen := make(map[entities.Permission]bool, len(raw))
	for _, s := range raw {
		p := entities.Permission(s)
		if !p.IsValid() {
			return nil, false
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		permissions = append(permissions, p)
	}
	return permissions, true
}

func record(logger usecases.AuditLogger, actor Actor, action, description, roleID string) {
	usecases.Audit(logger, &entities.AuditEvent{
		UserID:      actor.UserID,
		EventType:   entities.AuditEventRole,
		Action:      action,
		Description: description,
		EntityType:  "role",
		EntityID:    &roleID,
		IPAddress:   actor.IPAddress,
		Status:      entities.AuditStatusSuccess,
	})
}
