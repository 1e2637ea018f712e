package repository_test

import (
	"context"
	"testing"

	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/repository"
	apperrors "go-wine-tasting/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := repository.NewEventRepository(getTestDB(t))
		organizer := createTestUser(t, "Ana")
		w1 := createTestWine(t, organizer, "Chianti")
		w2 := createTestWine(t, organizer, "Barolo")

		created, err := repo.Create(ctx, eventParams(organizer, "ABC234", w2, w1))

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, model.EventStatusOpen, created.Status)
		require.Len(t, created.Wines, 2)
		assert.Equal(t, "Barolo", created.Wines[0].Name)
		assert.Equal(t, "Chianti", created.Wines[1].Name)
		require.Len(t, created.Participants, 1)
		assert.Equal(t, organizer, created.Participants[0].ID)
	})

	t.Run("Failed - InviteCodeConflict", func(t *testing.T) {
		repo := repository.NewEventRepository(getTestDB(t))
		organizer := createTestUser(t, "Ana")
		_, err := repo.Create(ctx, eventParams(organizer, "ABC234"))
		require.NoError(t, err)

		_, err = repo.Create(ctx, eventParams(organizer, "ABC234"))

		assert.ErrorIs(t, err, apperrors.ErrInviteCodeConflict)
	})

	t.Run("Failed - UnknownWine", func(t *testing.T) {
		repo := repository.NewEventRepository(getTestDB(t))
		organizer := createTestUser(t, "Ana")
		params := eventParams(organizer, "ABC234")
		params.WineIDs = []uuid.UUID{uuid.New()}

		_, err := repo.Create(ctx, params)

		assert.ErrorIs(t, err, apperrors.ErrWineNotFound)
		// transaction 已回滾
		_, err = repo.FindByInviteCode(ctx, "ABC234")
		assert.ErrorIs(t, err, apperrors.ErrInviteCodeNotFound)
	})
}

func TestEventRepository_Participants(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEventRepository(getTestDB(t))
	evaluations := repository.NewEvaluationRepository(testDB)
	organizer := createTestUser(t, "Ana")
	guest := createTestUser(t, "Ben")
	wine := createTestWine(t, organizer, "Rioja")
	event, err := repo.Create(ctx, eventParams(organizer, "JOIN22", wine))
	require.NoError(t, err)

	added, err := repo.AddParticipant(ctx, event.ID, guest)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddParticipant(ctx, event.ID, guest)
	require.NoError(t, err)
	assert.False(t, added)

	_, err = evaluations.Create(ctx, event.ID, wine.ID, &model.Evaluation{UserID: guest, Aroma: 4, Color: 4, Flavor: 4.5})
	require.NoError(t, err)

	found, err := repo.FindByEventID(ctx, event.EventID)
	require.NoError(t, err)
	require.Len(t, found.Participants, 2)
	p := found.Participant(guest)
	require.NotNil(t, p)
	assert.True(t, p.HasEvaluated(wine.WineID))
	assert.False(t, found.Participant(organizer).HasEvaluated(wine.WineID))

	listed, err := repo.ListByParticipant(ctx, guest)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, event.EventID, listed[0].EventID)
}

func TestEventRepository_Updates(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEventRepository(getTestDB(t))
	organizer := createTestUser(t, "Ana")
	w1 := createTestWine(t, organizer, "Cava")
	w2 := createTestWine(t, organizer, "Priorat")
	event, err := repo.Create(ctx, eventParams(organizer, "UPD333", w1))
	require.NoError(t, err)
	other, err := repo.Create(ctx, eventParams(organizer, "UPD444"))
	require.NoError(t, err)

	t.Run("AppendWine", func(t *testing.T) {
		require.NoError(t, repo.AppendWine(ctx, event.ID, w2.ID))
		assert.ErrorIs(t, repo.AppendWine(ctx, event.ID, w1.ID), apperrors.ErrWineAlreadyInEvent)

		found, err := repo.FindByEventID(ctx, event.EventID)
		require.NoError(t, err)
		require.Len(t, found.Wines, 2)
		assert.Equal(t, w2.WineID, found.Wines[1].WineID)
	})

	t.Run("UpdateInviteCode", func(t *testing.T) {
		assert.ErrorIs(t, repo.UpdateInviteCode(ctx, event.ID, other.InviteCode), apperrors.ErrInviteCodeConflict)
		require.NoError(t, repo.UpdateInviteCode(ctx, event.ID, "NEW555"))

		found, err := repo.FindByInviteCode(ctx, "NEW555")
		require.NoError(t, err)
		assert.Equal(t, event.EventID, found.EventID)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, event.ID, model.EventStatusClosed))
		assert.ErrorIs(t, repo.UpdateStatus(ctx, 99999, model.EventStatusClosed), apperrors.ErrEventNotFound)
		assert.ErrorIs(t, repo.UpdateStatus(ctx, event.ID, "ARCHIVED"), apperrors.ErrInvalidInput)

		found, err := repo.FindByEventID(ctx, event.EventID)
		require.NoError(t, err)
		assert.True(t, found.IsClosed())
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := repo.FindByEventID(ctx, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})
}
