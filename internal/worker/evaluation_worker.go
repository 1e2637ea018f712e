package worker

import (
	"context"
	"go-wine-tasting/internal/queue"
	"go-wine-tasting/internal/service"
	"go-wine-tasting/pkg/logger"
	"sync"

	"go.uber.org/zap"
)

type EvaluationWorker interface {
	// 訂閱評分隊列並在背景處理
	Start(ctx context.Context) error
	// 等待背景處理結束（ctx 取消後）
	Wait()
}

type EvaluationWorkerImpl struct {
	service service.EvaluationService
	queue   queue.EvaluationQueue
	wg      sync.WaitGroup
}

func NewEvaluationWorker(service service.EvaluationService, queue queue.EvaluationQueue) EvaluationWorker {
	return &EvaluationWorkerImpl{
		service: service,
		queue:   queue,
	}
}

func (w *EvaluationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeEvaluations(ctx)
	if err != nil {
		return err
	}

	log := logger.WithComponent("worker")
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for msg := range msgs {
			err := w.service.ProcessSubmitted(ctx, msg.Data)
			if err != nil {
				// 暫時性錯誤(資料庫、Redis)，留待重試
				log.Warn("process evaluation failed",
					zap.Int("evaluation_id", msg.Data.EvaluationID),
					zap.Error(err),
				)
				msg.Nack(true)
				continue
			}
			msg.Ack()
		}
	}()
	return nil
}

func (w *EvaluationWorkerImpl) Wait() {
	w.wg.Wait()
}
