package service_test

import (
	"context"
	"testing"

	"go-wine-tasting/internal/model"
	repoMocks "go-wine-tasting/internal/repository/mocks"
	"go-wine-tasting/internal/service"
	apperrors "go-wine-tasting/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_EnsureUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - DefaultName", func(t *testing.T) {
		repo := repoMocks.NewUserRepositoryMock()
		svc := service.NewUserService(repo)
		id := uuid.New()

		repo.On("Upsert", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.ID == id && u.Name == "Taster" && !u.IsGuest
		})).Return(&model.User{ID: id, Name: "Taster"}, nil).Once()

		got, err := svc.EnsureUser(ctx, service.Identity{UserID: id, Name: "  "})

		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Failed - MissingSubject", func(t *testing.T) {
		repo := repoMocks.NewUserRepositoryMock()
		svc := service.NewUserService(repo)

		_, err := svc.EnsureUser(ctx, service.Identity{Name: "Ann"})

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}

func TestUserService_CreateGuest(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := repoMocks.NewUserRepositoryMock()
		svc := service.NewUserService(repo)

		repo.On("Upsert", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.ID != uuid.Nil && u.Name == "Mia" && u.IsGuest
		})).Return(&model.User{ID: uuid.New(), Name: "Mia", IsGuest: true}, nil).Once()

		got, err := svc.CreateGuest(ctx, " Mia ")

		require.NoError(t, err)
		assert.True(t, got.IsGuest)
	})

	t.Run("Failed - EmptyName", func(t *testing.T) {
		repo := repoMocks.NewUserRepositoryMock()
		svc := service.NewUserService(repo)

		_, err := svc.CreateGuest(ctx, "")

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}
