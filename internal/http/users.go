package http

import (
	"github.com/gin-gonic/gin"

	"github.com/homebranch/server/internal/auth"
	"github.com/homebranch/server/internal/http/respond"
	"github.com/homebranch/server/internal/usecases"
	"github.com/homebranch/server/internal/usecases/users"
)

// UsersController manages users. Every route requires manage_users.
type UsersController struct {
	list       *users.GetUsers
	get        *users.GetUserByID
	restrict   *users.RestrictUser
	unrestrict *users.UnrestrictUser
	assignRole *users.AssignRole
}

func NewUsersController(repo usecases.UserRepository, roles usecases.RoleRepository, auditor usecases.AuditLogger) *UsersController {
	return &UsersController{
		list:       users.NewGetUsers(repo),
		get:        users.NewGetUserByID(repo),
		restrict:   users.NewRestrictUser(repo, auditor),
		unrestrict: users.NewUnrestrictUser(repo, auditor),
		assignRole: users.NewAssignRole(repo, roles, auditor),
	}
}

func userActor(c *gin.Context) users.Actor {
	return users.Actor{UserID: auth.GetUserID(c), IPAddress: c.ClientIP()}
}

func userIDRequest(c *gin.Context) users.UserIDRequest {
	return users.UserIDRequest{ID: c.Param("id"), Actor: userActor(c)}
}

// List handles GET /users
func (uc *UsersController) List(c *gin.Context) {
	p, ok := parsePagination(c)
	if !ok {
		return
	}
	respond.Result(c, uc.list.Execute(c.Request.Context(), users.GetUsersRequest{Pagination: p}))
}

// Get handles GET /users/:id
func (uc *UsersController) Get(c *gin.Context) {
	respond.Result(c, uc.get.Execute(c.Request.Context(), userIDRequest(c)))
}

// Restrict handles PATCH /users/:id/restrict
func (uc *UsersController) Restrict(c *gin.Context) {
	respond.Result(c, uc.restrict.Execute(c.Request.Context(), userIDRequest(c)))
}

// Unrestrict handles PATCH /users/:id/unrestrict
func (uc *UsersController) Unrestrict(c *gin.Context) {
	respond.Result(c, uc.unrestrict.Execute(c.Request.Context(), userIDRequest(c)))
}

type assignRoleBody struct {
	RoleID string `json:"roleId" binding:"required"`
}

// AssignRole handles PATCH /users/:id/role
func (uc *UsersController) AssignRole(c *gin.Context) {
	var body assignRoleBody
	if !bindJSON(c, &body) {
		return
	}
	respond.Result(c, uc.assignRole.Execute(c.Request.Context(), users.AssignRoleRequest{
		UserID: c.Param("id"),
		RoleID: body.RoleID,
		Actor:  userActor(c),
	}))
}
