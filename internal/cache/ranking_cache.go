package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go-wine-tasting/internal/model"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("ranking cache miss")

type RankingCache interface {
	// 讀取：回傳快取的排行與目前世代；未命中時回傳 ErrCacheMiss 及世代
	Get(ctx context.Context, eventID uuid.UUID) (*model.Ranking, int64, error)
	// 寫入：只有世代未被 Invalidate 改變時才寫入 (使用Lua腳本確保原子性)
	Set(ctx context.Context, ranking *model.Ranking, generation int64) (bool, error)
	// 失效：世代加一並刪除快取 (使用Lua腳本確保原子性)
	Invalidate(ctx context.Context, eventID uuid.UUID) error
}

type RedisRankingCacheImpl struct {
	client *redis.Client
	ttl    time.Duration
	// 世代 key 的存活時間，必須遠大於 ttl，過期前資料早已過期
	genTTL time.Duration
}

const (
	defaultRankingTTL = 5 * time.Minute
	minGenerationTTL  = 24 * time.Hour
)

func NewRedisRankingCache(client *redis.Client, ttl time.Duration) RankingCache {
	if ttl <= 0 {
		ttl = defaultRankingTTL
	}
	genTTL := 10 * ttl
	if genTTL < minGenerationTTL {
		genTTL = minGenerationTTL
	}
	return &RedisRankingCacheImpl{
		client: client,
		ttl:    ttl,
		genTTL: genTTL,
	}
}

// 排行資料 key
func (c *RedisRankingCacheImpl) getDataKey(eventID uuid.UUID) string {
	return fmt.Sprintf("event:%s:ranking", eventID)
}

// 世代計數 key，每次失效加一
func (c *RedisRankingCacheImpl) getGenerationKey(eventID uuid.UUID) string {
	return fmt.Sprintf("event:%s:ranking:gen", eventID)
}

func (c *RedisRankingCacheImpl) Get(ctx context.Context, eventID uuid.UUID) (*model.Ranking, int64, error) {
	pipe := c.client.Pipeline()
	genCmd := pipe.Get(ctx, c.getGenerationKey(eventID))
	dataCmd := pipe.Get(ctx, c.getDataKey(eventID))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, 0, err
	}

	generation, err := genCmd.Int64()
	if err != nil && err != redis.Nil {
		return nil, 0, fmt.Errorf("invalid generation: %w", err)
	}

	data, err := dataCmd.Bytes()
	if err == redis.Nil {
		return nil, generation, ErrCacheMiss
	}
	if err != nil {
		return nil, generation, err
	}

	var ranking model.Ranking
	if err := json.Unmarshal(data, &ranking); err != nil {
		// 壞掉的快取視為未命中
		return nil, generation, ErrCacheMiss
	}
	return &ranking, generation, nil
}

func (c *RedisRankingCacheImpl) Set(ctx context.Context, ranking *model.Ranking, generation int64) (bool, error) {
	data, err := json.Marshal(ranking)
	if err != nil {
		return false, fmt.Errorf("marshal ranking: %w", err)
	}

	script := `
		local gen_key = KEYS[1]
		local data_key = KEYS[2]
		local expected = tonumber(ARGV[1])

		-- 世代已被改變，代表期間有新的評分
		local current = tonumber(redis.call('GET', gen_key) or '0')
		if current ~= expected then
			return 0
		end

		redis.call('SET', data_key, ARGV[2], 'PX', ARGV[3])
		return 1
	`

	keys := []string{c.getGenerationKey(ranking.EventID), c.getDataKey(ranking.EventID)}
	result, err := c.client.Eval(ctx, script, keys,
		strconv.FormatInt(generation, 10), string(data), c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return result == 1, nil
}

func (c *RedisRankingCacheImpl) Invalidate(ctx context.Context, eventID uuid.UUID) error {
	script := `
		redis.call('INCR', KEYS[1])
		-- 已結束的活動不再失效，世代 key 隨之過期
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
		redis.call('DEL', KEYS[2])
		return "OK"
	`

	keys := []string{c.getGenerationKey(eventID), c.getDataKey(eventID)}
	return c.client.Eval(ctx, script, keys, c.genTTL.Milliseconds()).Err()
}
