package handler_test

import (
	"net/http"
	"testing"

	"go-wine-tasting/internal/handler"
	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/service/mocks"
	apperrors "go-wine-tasting/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateWine(t *testing.T) {
	user := testUser()

	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewWineServiceMock()
		router := setupTestRouter(user, handler.NewWineHandler(svc))
		svc.On("Create", mock.Anything, mock.MatchedBy(func(w *model.Wine) bool {
			return w.OwnerID == user.ID && w.Name == "Malbec" && *w.Harvest == 2020
		})).Return(&model.Wine{ID: 1, WineID: uuid.New(), Name: "Malbec"}, nil).Once()

		w := serve(router, createJSONHTTPRequest("POST", "/api/v1/wines", map[string]interface{}{
			"name":    "Malbec",
			"country": "Argentina",
			"harvest": 2020,
		}))

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Failed - InvalidHarvest", func(t *testing.T) {
		svc := mocks.NewWineServiceMock()
		router := setupTestRouter(user, handler.NewWineHandler(svc))
		verr := apperrors.NewValidationError()
		verr.Add("harvest", "is not a valid year")
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, verr).Once()

		w := serve(router, createJSONHTTPRequest("POST", "/api/v1/wines", map[string]interface{}{
			"name":    "Malbec",
			"harvest": 1200,
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, map[string]string{"harvest": "is not a valid year"}, decodeError(t, w).Fields)
	})
}

func TestGetWine(t *testing.T) {
	user := testUser()

	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewWineServiceMock()
		router := setupTestRouter(user, handler.NewWineHandler(svc))
		id := uuid.New()
		svc.On("GetByWineID", mock.Anything, id).Return(&model.Wine{WineID: id, Name: "Syrah"}, nil).Once()

		w := serve(router, createJSONHTTPRequest("GET", "/api/v1/wines/"+id.String(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - NotFound", func(t *testing.T) {
		svc := mocks.NewWineServiceMock()
		router := setupTestRouter(user, handler.NewWineHandler(svc))
		id := uuid.New()
		svc.On("GetByWineID", mock.Anything, id).Return(nil, apperrors.ErrWineNotFound).Once()

		w := serve(router, createJSONHTTPRequest("GET", "/api/v1/wines/"+id.String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "wine_not_found", decodeError(t, w).Code)
	})
}

func TestListWines(t *testing.T) {
	user := testUser()
	svc := mocks.NewWineServiceMock()
	router := setupTestRouter(user, handler.NewWineHandler(svc))
	svc.On("ListByOwner", mock.Anything, user.ID).Return([]*model.Wine{}, nil).Once()

	w := serve(router, createJSONHTTPRequest("GET", "/api/v1/wines", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
