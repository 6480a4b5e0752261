package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/usecases/mocks"
)

func TestPositionsController_Save(t *testing.T) {
	t.Run("stores the caller's position and ignores the path user", func(t *testing.T) {
		f := setupAPI(t, readerUser())
		var saved *entities.SavedPosition
		f.positions.On("Upsert", mock.Anything, mock.AnythingOfType("*entities.SavedPosition")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*entities.SavedPosition) }).
			Return(mocks.Echo[*entities.SavedPosition])

		rr := f.sendJSON(http.MethodPut, "/users/someone-else/saved-positions/b1",
			`{"position":"epubcfi(/6/4!/4/2)","deviceName":"Kobo","percentage":0.42}`)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
		require.NotNil(t, saved)
		assert.Equal(t, "b1", saved.BookID)
		assert.Equal(t, "u1", saved.UserID)
		assert.Equal(t, "Kobo", saved.DeviceName)
		require.NotNil(t, saved.Percentage)
		assert.InDelta(t, 0.42, *saved.Percentage, 1e-9)
	})

	t.Run("position and device name are required", func(t *testing.T) {
		f := setupAPI(t, readerUser())

		for _, body := range []string{`{"deviceName":"Kobo"}`, `{"position":"p"}`, `not json`} {
			rr := f.sendJSON(http.MethodPut, "/users/u1/saved-positions/b1", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		}
		f.positions.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}

func TestPositionsController_Queries(t *testing.T) {
	f := setupAPI(t, readerUser())
	position := entities.NewSavedPosition("b1", "u1", "cfi", "Kobo", nil, time.Now(), time.Now())
	f.positions.On("FindAllByUser", mock.Anything, "u1").Return(result.Success([]entities.SavedPosition{*position}))
	f.positions.On("FindByBookAndUser", mock.Anything, "b1", "u1").Return(result.Success(position))
	f.positions.On("FindByBookAndUser", mock.Anything, "b2", "u1").Return(result.Fail[*entities.SavedPosition](entities.ErrSavedPositionNotFound))

	rr := f.get("/users/u1/saved-positions")
	require.Equal(t, http.StatusOK, rr.Code)
	var all []entities.SavedPosition
	decodeValue(t, rr, &all)
	assert.Len(t, all, 1)

	rr = f.get("/users/other/saved-positions/b1")
	require.Equal(t, http.StatusOK, rr.Code)
	var one entities.SavedPosition
	decodeValue(t, rr, &one)
	assert.Equal(t, "cfi", one.Position)

	rr = f.get("/users/u1/saved-positions/b2")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPositionsController_Delete(t *testing.T) {
	f := setupAPI(t, readerUser())
	f.positions.On("Delete", mock.Anything, "b1", "u1").
		Return(result.Success(entities.NewSavedPosition("b1", "u1", "cfi", "Kobo", nil, time.Time{}, time.Time{})))
	f.positions.On("Delete", mock.Anything, "b2", "u1").Return(result.Fail[*entities.SavedPosition](entities.ErrSavedPositionNotFound))

	rr := f.do(httptestRequest(http.MethodDelete, "/users/anyone/saved-positions/b1"))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = f.do(httptestRequest(http.MethodDelete, "/users/u1/saved-positions/b2"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	f.positions.AssertExpectations(t)
}
