package queue_test

import (
	"context"
	"testing"
	"time"

	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/queue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessage() *model.EvaluationSubmitted {
	return &model.EvaluationSubmitted{
		EvaluationID: 7,
		EventID:      uuid.New(),
		WineID:       uuid.New(),
		UserID:       uuid.New(),
		RequestID:    uuid.NewString(),
	}
}

func receive(t *testing.T, ch <-chan queue.Delivery) queue.Delivery {
	t.Helper()
	select {
	case d, ok := <-ch:
		require.True(t, ok, "channel closed")
		return d
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
	return queue.Delivery{}
}

func TestEvaluationQueue_PublishSubscribe(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	q := queue.NewEvaluationQueue(4)
	msgs, err := q.SubscribeEvaluations(ctx)
	require.NoError(t, err)

	msg := newMessage()
	require.NoError(t, q.PublishEvaluation(ctx, msg))

	d := receive(t, msgs)
	assert.Equal(t, msg, d.Data)
	d.Ack()
}

func TestEvaluationQueue_NackRequeue(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	q := queue.NewEvaluationQueue(4)
	msgs, err := q.SubscribeEvaluations(ctx)
	require.NoError(t, err)

	msg := newMessage()
	require.NoError(t, q.PublishEvaluation(ctx, msg))

	first := receive(t, msgs)
	first.Nack(true)

	second := receive(t, msgs)
	assert.Equal(t, msg.EvaluationID, second.Data.EvaluationID)
}

func TestEvaluationQueue_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	q := queue.NewEvaluationQueue(1)
	msgs, err := q.SubscribeEvaluations(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-msgs:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel was not closed")
	}
}

func TestEvaluationQueue_PublishRespectsContext(t *testing.T) {
	q := queue.NewEvaluationQueue(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := q.PublishEvaluation(ctx, newMessage())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluationQueue_DropsAfterMaxRetries(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	q := queue.NewEvaluationQueue(4)
	msgs, err := q.SubscribeEvaluations(ctx)
	require.NoError(t, err)
	require.NoError(t, q.PublishEvaluation(ctx, newMessage()))

	for i := 0; i < queue.MaxMemoryRetries; i++ {
		d := receive(t, msgs)
		d.Nack(true)
	}

	select {
	case d := <-msgs:
		t.Fatalf("unexpected redelivery of %d", d.Data.EvaluationID)
	case <-time.After(100 * time.Millisecond):
	}
}
