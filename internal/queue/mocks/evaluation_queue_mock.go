package mocks

import (
	"context"

	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/queue"

	"github.com/stretchr/testify/mock"
)

type EvaluationQueueMock struct {
	mock.Mock
}

func NewEvaluationQueueMock() *EvaluationQueueMock {
	return &EvaluationQueueMock{}
}

func (m *EvaluationQueueMock) PublishEvaluation(ctx context.Context, msg *model.EvaluationSubmitted) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *EvaluationQueueMock) SubscribeEvaluations(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}
