package mocks

import (
	"context"

	"go-wine-tasting/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type RankingCacheMock struct {
	mock.Mock
}

func NewRankingCacheMock() *RankingCacheMock {
	return &RankingCacheMock{}
}

func (m *RankingCacheMock) Get(ctx context.Context, eventID uuid.UUID) (*model.Ranking, int64, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).(*model.Ranking), args.Get(1).(int64), args.Error(2)
}

func (m *RankingCacheMock) Set(ctx context.Context, ranking *model.Ranking, generation int64) (bool, error) {
	args := m.Called(ctx, ranking, generation)
	return args.Bool(0), args.Error(1)
}

func (m *RankingCacheMock) Invalidate(ctx context.Context, eventID uuid.UUID) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}
