package repository_test

import (
	"context"
	"testing"

	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/repository"
	apperrors "go-wine-tasting/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluationRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	events := repository.NewEventRepository(getTestDB(t))
	repo := repository.NewEvaluationRepository(testDB)
	organizer := createTestUser(t, "Ana")
	wine := createTestWine(t, organizer, "Merlot")
	event, err := events.Create(ctx, eventParams(organizer, "EVA234", wine))
	require.NoError(t, err)

	created, err := repo.Create(ctx, event.ID, wine.ID, &model.Evaluation{UserID: organizer, Aroma: 3.5, Color: 4, Flavor: 5, Notes: "plum"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = repo.Create(ctx, event.ID, wine.ID, &model.Evaluation{UserID: organizer, Aroma: 1, Color: 1, Flavor: 1})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRated)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, found.EventID)
	assert.Equal(t, wine.WineID, found.WineID)
	assert.Equal(t, 3.5, found.Aroma)
	assert.Equal(t, "plum", found.Notes)

	_, err = repo.FindByID(ctx, 99999)
	assert.ErrorIs(t, err, apperrors.ErrEvaluationNotFound)
}

func TestEvaluationRepository_RankingByEvent(t *testing.T) {
	ctx := context.Background()
	events := repository.NewEventRepository(getTestDB(t))
	repo := repository.NewEvaluationRepository(testDB)
	ana := createTestUser(t, "Ana")
	ben := createTestUser(t, "Ben")
	low := createTestWine(t, ana, "Low")
	high := createTestWine(t, ana, "High")
	unrated := createTestWine(t, ana, "Unrated")
	event, err := events.Create(ctx, eventParams(ana, "RNK234", unrated, low, high))
	require.NoError(t, err)
	_, err = events.AddParticipant(ctx, event.ID, ben)
	require.NoError(t, err)

	_, err = repo.Create(ctx, event.ID, low.ID, &model.Evaluation{UserID: ana, Aroma: 2, Color: 2, Flavor: 2})
	require.NoError(t, err)
	_, err = repo.Create(ctx, event.ID, high.ID, &model.Evaluation{UserID: ana, Aroma: 5, Color: 4, Flavor: 4.5})
	require.NoError(t, err)
	_, err = repo.Create(ctx, event.ID, high.ID, &model.Evaluation{UserID: ben, Aroma: 4, Color: 4, Flavor: 4})
	require.NoError(t, err)

	entries, err := repo.RankingByEvent(ctx, event.ID)

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "High", entries[0].Wine.Name)
	assert.Equal(t, 2, entries[0].EvaluationCount)
	assert.InDelta(t, 4.25, entries[0].AverageRating, 1e-9)
	assert.Equal(t, "Low", entries[1].Wine.Name)
	assert.InDelta(t, 2.0, entries[1].AverageRating, 1e-9)
	assert.Equal(t, "Unrated", entries[2].Wine.Name)
	assert.Equal(t, 0, entries[2].EvaluationCount)
}
