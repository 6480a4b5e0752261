// Package positions stores per-user reading positions, one per book.
package positions

import (
	"context"
	"time"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/usecases"
)

type SavePositionRequest struct {
	BookID     string
	UserID     string
	Position   string
	DeviceName string
	Percentage *float64
}

// SavePosition creates or replaces the position for (BookID, UserID).
type SavePosition struct {
	positions usecases.SavedPositionRepository
}

func NewSavePosition(positions usecases.SavedPositionRepository) *SavePosition {
	return &SavePosition{positions: positions}
}

func (uc *SavePosition) Execute(ctx context.Context, req SavePositionRequest) result.Result[*entities.SavedPosition] {
	position := entities.NewSavedPosition(req.BookID, req.UserID, req.Position, req.DeviceName, req.Percentage, time.Time{}, time.Time{})
	return uc.positions.Upsert(ctx, position)
}

type PositionKey struct {
	BookID string
	UserID string
}

type GetSavedPosition struct {
	positions usecases.SavedPositionRepository
}

func NewGetSavedPosition(positions usecases.SavedPositionRepository) *GetSavedPosition {
	return &GetSavedPosition{positions: positions}
}

func (uc *GetSavedPosition) Execute(ctx context.Context, req PositionKey) result.Result[*entities.SavedPosition] {
	return uc.positions.FindByBookAndUser(ctx, req.BookID, req.UserID)
}

type DeleteSavedPosition struct {
	positions usecases.SavedPositionRepository
}

func NewDeleteSavedPosition(positions usecases.SavedPositionRepository) *DeleteSavedPosition {
	return &DeleteSavedPosition{positions: positions}
}

func (uc *DeleteSavedPosition) Execute(ctx context.Context, req PositionKey) result.Result[*entities.SavedPosition] {
	return uc.positions.Delete(ctx, req.BookID, req.UserID)
}

type GetSavedPositionsRequest struct {
	UserID string
}

// GetSavedPositions lists a user's positions, most recently updated first.
type GetSavedPositions struct {
	positions usecases.SavedPositionRepository
}

func NewGetSavedPositions(positions usecases.SavedPositionRepository) *GetSavedPositions {
	return &GetSavedPositions{positions: positions}
}

func (uc *GetSavedPositions) Execute(ctx context.Context, req GetSavedPositionsRequest) result.Result[[]entities.SavedPosition] {
	return uc.positions.FindAllByUser(ctx, req.UserID)
}
