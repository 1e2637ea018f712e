package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/queue"
	queueMocks "go-wine-tasting/internal/queue/mocks"
	"go-wine-tasting/internal/service/mocks"
	"go-wine-tasting/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEvaluationWorker_ProcessesMessages(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewEvaluationQueue(10)
	svc := mocks.NewEvaluationServiceMock()
	msg := &model.EvaluationSubmitted{EvaluationID: 1, EventID: uuid.New(), RequestID: "req-1"}

	called := make(chan struct{}, 1)
	svc.On("ProcessSubmitted", mock.Anything, msg).Return(nil).Once().Run(func(mock.Arguments) {
		called <- struct{}{}
	})

	w := worker.NewEvaluationWorker(svc, q)
	require.NoError(t, w.Start(ctx))
	require.NoError(t, q.PublishEvaluation(ctx, msg))

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("worker did not process the evaluation in time")
	}

	cancel()
	w.Wait()
	svc.AssertExpectations(t)
}

func TestEvaluationWorker_NackOnError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deliveries := make(chan queue.Delivery, 1)
	q := queueMocks.NewEvaluationQueueMock()
	q.On("SubscribeEvaluations", ctx).Return((<-chan queue.Delivery)(deliveries), nil).Once()

	svc := mocks.NewEvaluationServiceMock()
	svc.On("ProcessSubmitted", ctx, mock.Anything).Return(errors.New("db down")).Once()

	acked := make(chan bool, 1)
	deliveries <- queue.Delivery{
		Data: &model.EvaluationSubmitted{EvaluationID: 2},
		Ack:  func() { acked <- false },
		Nack: func(requeue bool) { acked <- requeue },
	}
	close(deliveries)

	w := worker.NewEvaluationWorker(svc, q)
	require.NoError(t, w.Start(ctx))
	w.Wait()

	select {
	case requeue := <-acked:
		assert.True(t, requeue)
	default:
		t.Fatal("delivery was neither acked nor nacked")
	}
	svc.AssertExpectations(t)
}

func TestEvaluationWorker_SubscribeError(t *testing.T) {
	ctx := context.Background()
	q := queueMocks.NewEvaluationQueueMock()
	subErr := errors.New("redis down")
	q.On("SubscribeEvaluations", ctx).Return(nil, subErr).Once()

	w := worker.NewEvaluationWorker(mocks.NewEvaluationServiceMock(), q)

	assert.ErrorIs(t, w.Start(ctx), subErr)
}
