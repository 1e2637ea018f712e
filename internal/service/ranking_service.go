package service

import (
	"context"
	"errors"

	"go-wine-tasting/internal/cache"
	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/repository"
	apperrors "go-wine-tasting/pkg/app_errors"
	"go-wine-tasting/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RankingService interface {
	// GetRanking 先讀快取，未命中時由資料庫彙總並回寫
	GetRanking(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*model.Ranking, error)
}

type RankingServiceImpl struct {
	eventRepo      repository.EventRepository
	evaluationRepo repository.EvaluationRepository
	rankingCache   cache.RankingCache
}

func NewRankingService(
	eventRepo repository.EventRepository,
	evaluationRepo repository.EvaluationRepository,
	rankingCache cache.RankingCache,
) RankingService {
	return &RankingServiceImpl{
		eventRepo:      eventRepo,
		evaluationRepo: evaluationRepo,
		rankingCache:   rankingCache,
	}
}

func (s *RankingServiceImpl) GetRanking(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*model.Ranking, error) {
	log := logger.WithComponent("service").With(zap.String("event_id", eventID.String()))

	event, err := s.eventRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsOrganizer(userID) && event.Participant(userID) == nil {
		return nil, apperrors.ErrNotParticipant
	}

	cached, generation, cacheErr := s.rankingCache.Get(ctx, eventID)
	if cacheErr == nil {
		return cached, nil
	}
	if !errors.Is(cacheErr, cache.ErrCacheMiss) {
		// Redis 有問題時仍由資料庫提供
		log.Warn("ranking cache unavailable", zap.Error(cacheErr))
	}

	entries, err := s.evaluationRepo.RankingByEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	ranking := model.NewRanking(event.EventID, entries)

	if errors.Is(cacheErr, cache.ErrCacheMiss) {
		if _, setErr := s.rankingCache.Set(ctx, ranking, generation); setErr != nil {
			log.Warn("store ranking cache failed", zap.Error(setErr))
		}
	}
	return ranking, nil
}
