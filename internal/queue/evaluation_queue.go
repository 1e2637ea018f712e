package queue

import (
	"context"
	"go-wine-tasting/internal/model"
)

type Delivery struct {
	Data *model.EvaluationSubmitted
	Ack  func()
	Nack func(requeue bool)
}

type EvaluationQueue interface {
	// 發送評分事件到隊列
	PublishEvaluation(ctx context.Context, msg *model.EvaluationSubmitted) error
	// 訂閱評分事件隊列
	SubscribeEvaluations(ctx context.Context) (<-chan Delivery, error)
}

// MaxMemoryRetries 記憶體版重回隊列的上限，超過即丟棄
const MaxMemoryRetries = 5

type memoryMessage struct {
	data     *model.EvaluationSubmitted
	attempts int
}

type EvaluationQueueImpl struct {
	// 使用 Go channel 作為單機版隊列
	ch chan *memoryMessage
}

func NewEvaluationQueue(bufferSize int) EvaluationQueue {
	return &EvaluationQueueImpl{
		ch: make(chan *memoryMessage, bufferSize),
	}
}

func (q *EvaluationQueueImpl) PublishEvaluation(ctx context.Context, msg *model.EvaluationSubmitted) error {
	select {
	case q.ch <- &memoryMessage{data: msg}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *EvaluationQueueImpl) SubscribeEvaluations(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-q.ch:
				if !ok {
					return
				}

				msg.attempts++
				d := Delivery{
					Data: msg.data,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if !requeue || msg.attempts >= MaxMemoryRetries {
							return
						}
						// 重回隊列；隊列已滿時丟棄，避免阻塞 worker
						select {
						case q.ch <- msg:
						default:
						}
					},
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
