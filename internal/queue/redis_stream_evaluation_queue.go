package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-wine-tasting/internal/model"
	"go-wine-tasting/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	StreamKey          = "evaluations:stream"
	ConsumerGroupName  = "evaluation-workers"
	ConsumerNamePrefix = "worker"

	payloadField = "evaluation"
	batchSize    = 10
	// ack 不跟隨訂閱的 ctx，關機時處理完的訊息仍能確認
	ackTimeout = 3 * time.Second
)

// RedisStreamEvaluationQueueConfig 可注入的逾時與重試設定；nil 或零值時使用預設。
type RedisStreamEvaluationQueueConfig struct {
	ClaimMinIdleTime   time.Duration // PEL 中閒置超過此時間才會被 XAUTOCLAIM 領回
	MaxRetryCount      int           // 投遞次數達到此值即丟棄
	ReadGroupBlockTime time.Duration
	MaxLen             int64 // stream 約略保留的訊息數
}

func (c *RedisStreamEvaluationQueueConfig) withDefaults() RedisStreamEvaluationQueueConfig {
	cfg := RedisStreamEvaluationQueueConfig{
		ClaimMinIdleTime:   5 * time.Second,
		MaxRetryCount:      5,
		ReadGroupBlockTime: 2 * time.Second,
		MaxLen:             100000,
	}
	if c == nil {
		return cfg
	}
	if c.ClaimMinIdleTime > 0 {
		cfg.ClaimMinIdleTime = c.ClaimMinIdleTime
	}
	if c.MaxRetryCount > 0 {
		cfg.MaxRetryCount = c.MaxRetryCount
	}
	if c.ReadGroupBlockTime > 0 {
		cfg.ReadGroupBlockTime = c.ReadGroupBlockTime
	}
	if c.MaxLen > 0 {
		cfg.MaxLen = c.MaxLen
	}
	return cfg
}

type RedisStreamEvaluationQueueImpl struct {
	client   *redis.Client
	consumer string
	cfg      RedisStreamEvaluationQueueConfig
	log      *zap.Logger
}

// NewRedisStreamEvaluationQueue 建立 consumer group (已存在時沿用)。consumerID 為空時隨機產生。
func NewRedisStreamEvaluationQueue(client *redis.Client, consumerID string, config *RedisStreamEvaluationQueueConfig) (EvaluationQueue, error) {
	if consumerID == "" {
		consumerID = uuid.NewString()
	}
	err := client.XGroupCreateMkStream(context.Background(), StreamKey, ConsumerGroupName, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return nil, fmt.Errorf("ensure consumer group: %w", err)
	}

	consumer := ConsumerNamePrefix + ":" + consumerID
	return &RedisStreamEvaluationQueueImpl{
		client:   client,
		consumer: consumer,
		cfg:      config.withDefaults(),
		log:      logger.WithComponent("mq").With(zap.String("consumer", consumer)),
	}, nil
}

func (q *RedisStreamEvaluationQueueImpl) PublishEvaluation(ctx context.Context, msg *model.EvaluationSubmitted) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal evaluation: %w", err)
	}
	err = q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: q.cfg.MaxLen,
		Approx: true,
		Values: map[string]interface{}{payloadField: string(payload)},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd: %w", err)
	}
	return nil
}

// SubscribeEvaluations 同時跑新訊息讀取與逾時領回兩個迴圈；
// 兩者都結束後才關閉 channel。
func (q *RedisStreamEvaluationQueueImpl) SubscribeEvaluations(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		q.readNew(ctx, out)
	}()
	go func() {
		defer wg.Done()
		q.reclaimIdle(ctx, out)
	}()
	go func() {
		wg.Wait()
		close(out)
	}()

	return out, nil
}

// readNew 只讀取尚未投遞過的訊息 (">")
func (q *RedisStreamEvaluationQueueImpl) readNew(ctx context.Context, out chan<- Delivery) {
	for ctx.Err() == nil {
		streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    ConsumerGroupName,
			Consumer: q.consumer,
			Streams:  []string{StreamKey, ">"},
			Count:    batchSize,
			Block:    q.cfg.ReadGroupBlockTime,
		}).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			q.log.Error("XReadGroup failed", zap.Error(err))
			if !sleep(ctx, time.Second) {
				return
			}
			continue
		}

		for _, stream := range streams {
			if !q.deliver(ctx, out, stream.Messages, false) {
				return
			}
		}
	}
}

// reclaimIdle 定期以 XAUTOCLAIM 領回閒置未 ack 的訊息，形成延遲重試
func (q *RedisStreamEvaluationQueueImpl) reclaimIdle(ctx context.Context, out chan<- Delivery) {
	ticker := time.NewTicker(q.cfg.ClaimMinIdleTime)
	defer ticker.Stop()

	cursor := "0-0"
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		claimed, next, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   StreamKey,
			Group:    ConsumerGroupName,
			Consumer: q.consumer,
			MinIdle:  q.cfg.ClaimMinIdleTime,
			Start:    cursor,
			Count:    batchSize,
		}).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			if ctx.Err() != nil {
				return
			}
			q.log.Error("XAutoClaim failed", zap.Error(err))
			continue
		}
		cursor = next
		if cursor == "" {
			cursor = "0-0"
		}

		if !q.deliver(ctx, out, claimed, true) {
			return
		}
	}
}

// deliver 將訊息送往 out；ctx 結束時回傳 false。
// 領回的訊息先檢查投遞次數，達上限即 ack 丟棄。
func (q *RedisStreamEvaluationQueueImpl) deliver(ctx context.Context, out chan<- Delivery, msgs []redis.XMessage, reclaimed bool) bool {
	for _, msg := range msgs {
		if ctx.Err() != nil {
			return false
		}
		if reclaimed && q.exhausted(ctx, msg.ID) {
			continue
		}
		d, ok := q.decode(msg)
		if !ok {
			continue
		}
		select {
		case out <- d:
		case <-ctx.Done():
			return false
		}
	}
	return true
}

func (q *RedisStreamEvaluationQueueImpl) exhausted(ctx context.Context, id string) bool {
	pending, err := q.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: StreamKey,
		Group:  ConsumerGroupName,
		Start:  id,
		End:    id,
		Count:  1,
	}).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		q.log.Warn("XPending failed", zap.String("message_id", id), zap.Error(err))
		return false
	}
	if len(pending) == 0 || pending[0].RetryCount < int64(q.cfg.MaxRetryCount) {
		return false
	}

	q.log.Warn("discard poison message",
		zap.String("message_id", id),
		zap.Int64("deliveries", pending[0].RetryCount),
		zap.Int("max_retries", q.cfg.MaxRetryCount),
	)
	q.ack(id)
	return true
}

// decode 解析訊息內容；格式錯誤的訊息無法重試，直接 ack
func (q *RedisStreamEvaluationQueueImpl) decode(msg redis.XMessage) (Delivery, bool) {
	id := msg.ID
	payload, ok := msg.Values[payloadField].(string)
	if !ok {
		q.log.Warn("message without evaluation payload", zap.String("message_id", id))
		q.ack(id)
		return Delivery{}, false
	}
	var data model.EvaluationSubmitted
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		q.log.Warn("unmarshal evaluation failed", zap.String("message_id", id), zap.Error(err))
		q.ack(id)
		return Delivery{}, false
	}

	return Delivery{
		Data: &data,
		Ack:  func() { q.ack(id) },
		Nack: func(requeue bool) {
			if requeue {
				// 留在 PEL，閒置超過 ClaimMinIdleTime 後由 reclaimIdle 領回
				return
			}
			q.ack(id)
		},
	}, true
}

func (q *RedisStreamEvaluationQueueImpl) ack(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), ackTimeout)
	defer cancel()
	if err := q.client.XAck(ctx, StreamKey, ConsumerGroupName, id).Err(); err != nil {
		q.log.Error("XAck failed", zap.String("message_id", id), zap.Error(err))
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
