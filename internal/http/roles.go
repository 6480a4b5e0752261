package http

import (
	"github.com/gin-gonic/gin"

	"github.com/homebranch/server/internal/auth"
	"github.com/homebranch/server/internal/http/respond"
	"github.com/homebranch/server/internal/usecases"
	"github.com/homebranch/server/internal/usecases/roles"
)

// RolesController manages roles. Every route requires manage_roles.
type RolesController struct {
	list   *roles.GetRoles
	create *roles.CreateRole
	update *roles.UpdateRole
	delete *roles.DeleteRole
}

func NewRolesController(repo usecases.RoleRepository, users usecases.UserRepository, auditor usecases.AuditLogger) *RolesController {
	return &RolesController{
		list:   roles.NewGetRoles(repo),
		create: roles.NewCreateRole(repo, auditor),
		update: roles.NewUpdateRole(repo, auditor),
		delete: roles.NewDeleteRole(repo, users, auditor),
	}
}

func roleActor(c *gin.Context) roles.Actor {
	return roles.Actor{UserID: auth.GetUserID(c), IPAddress: c.ClientIP()}
}

// List handles GET /roles
func (rc *RolesController) List(c *gin.Context) {
	p, ok := parsePagination(c)
	if !ok {
		return
	}
	respond.Result(c, rc.list.Execute(c.Request.Context(), roles.GetRolesRequest{Pagination: p}))
}

type createRoleBody struct {
	Name        string   `json:"name" binding:"required"`
	Permissions []string `json:"permissions" binding:"required"`
}

// Create handles POST /roles
func (rc *RolesController) Create(c *gin.Context) {
	var body createRoleBody
	if !bindJSON(c, &body) {
		return
	}
	respond.Result(c, rc.create.Execute(c.Request.Context(), roles.CreateRoleRequest{
		Name:        body.Name,
		Permissions: body.Permissions,
		Actor:       roleActor(c),
	}))
}

// updateRoleBody leaves the name unchanged when absent. A null or absent
// permissions list also leaves the permissions unchanged.
type updateRoleBody struct {
	Name        *string  `json:"name"`
	Permissions []string `json:"permissions"`
}

// Update handles PUT /roles/:id
func (rc *RolesController) Update(c *gin.Context) {
	var body updateRoleBody
	if !bindJSON(c, &body) {
		return
	}
	respond.Result(c, rc.update.Execute(c.Request.Context(), roles.UpdateRoleRequest{
		ID:          c.Param("id"),
		Name:        body.Name,
		Permissions: body.Permissions,
		Actor:       roleActor(c),
	}))
}

// Delete handles DELETE /roles/:id
func (rc *RolesController) Delete(c *gin.Context) {
	respond.Result(c, rc.delete.Execute(c.Request.Context(), roles.DeleteRoleRequest{
		ID:    c.Param("id"),
		Actor: roleActor(c),
	}))
}
