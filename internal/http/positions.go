package http

import (
	"github.com/gin-gonic/gin"

	"github.com/homebranch/server/internal/auth"
	"github.com/homebranch/server/internal/http/respond"
	"github.com/homebranch/server/internal/usecases"
	"github.com/homebranch/server/internal/usecases/positions"
)

// PositionsController syncs reading positions. The user ID path segment
// is ignored; positions always belong to the caller.
type PositionsController struct {
	list   *positions.GetSavedPositions
	get    *positions.GetSavedPosition
	save   *positions.SavePosition
	delete *positions.DeleteSavedPosition
}

func NewPositionsController(repo usecases.SavedPositionRepository) *PositionsController {
	return &PositionsController{
		list:   positions.NewGetSavedPositions(repo),
		get:    positions.NewGetSavedPosition(repo),
		save:   positions.NewSavePosition(repo),
		delete: positions.NewDeleteSavedPosition(repo),
	}
}

func positionKey(c *gin.Context) positions.PositionKey {
	return positions.PositionKey{BookID: c.Param("bookId"), UserID: auth.GetUserID(c)}
}

// List handles GET /users/:id/saved-positions
func (pc *PositionsController) List(c *gin.Context) {
	respond.Result(c, pc.list.Execute(c.Request.Context(), positions.GetSavedPositionsRequest{UserID: auth.GetUserID(c)}))
}

// Get handles GET /users/:id/saved-positions/:bookId
func (pc *PositionsController) Get(c *gin.Context) {
	respond.Result(c, pc.get.Execute(c.Request.Context(), positionKey(c)))
}

type savePositionBody struct {
	Position   string   `json:"position" binding:"required"`
	DeviceName string   `json:"deviceName" binding:"required"`
	Percentage *float64 `json:"percentage"`
}

// Save handles PUT /users/:id/saved-positions/:bookId
func (pc *PositionsController) Save(c *gin.Context) {
	var body savePositionBody
	if !bindJSON(c, &body) {
		return
	}
	key := positionKey(c)
	respond.NoContent(c, pc.save.Execute(c.Request.Context(), positions.SavePositionRequest{
		BookID:     key.BookID,
		UserID:     key.UserID,
		Position:   body.Position,
		DeviceName: body.DeviceName,
		Percentage: body.Percentage,
	}))
}

// Delete handles DELETE /users/:id/saved-positions/:bookId
func (pc *PositionsController) Delete(c *gin.Context) {
	respond.NoContent(c, pc.delete.Execute(c.Request.Context(), positionKey(c)))
}
