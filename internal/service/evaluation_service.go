package service

import (
	"context"
	"errors"
	"strings"

	"go-wine-tasting/internal/cache"
	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/queue"
	"go-wine-tasting/internal/repository"
	"go-wine-tasting/internal/tasting"
	apperrors "go-wine-tasting/pkg/app_errors"
	"go-wine-tasting/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SubmitEvaluationInput struct {
	EventID   uuid.UUID
	UserID    uuid.UUID
	WineID    uuid.UUID
	WineIndex int
	Aroma     float64
	Color     float64
	Flavor    float64
	Notes     string
}

type EvaluationService interface {
	// Submit 驗證分數與解鎖規則後寫入評分，回傳重新讀取的活動狀態
	Submit(ctx context.Context, input SubmitEvaluationInput) (*model.Event, error)
	// ProcessSubmitted 由 worker 呼叫：寫入個人日誌並讓排行快取失效
	ProcessSubmitted(ctx context.Context, msg *model.EvaluationSubmitted) error
}

type EvaluationServiceImpl struct {
	eventRepo       repository.EventRepository
	wineRepo        repository.WineRepository
	repository      repository.EvaluationRepository
	diaryRepository repository.DiaryRepository
	rankingCache    cache.RankingCache
	evaluationQueue queue.EvaluationQueue
}

func NewEvaluationService(
	eventRepo repository.EventRepository,
	wineRepo repository.WineRepository,
	evaluationRepository repository.EvaluationRepository,
	diaryRepository repository.DiaryRepository,
	rankingCache cache.RankingCache,
	evaluationQueue queue.EvaluationQueue,
) EvaluationService {
	return &EvaluationServiceImpl{
		eventRepo:       eventRepo,
		wineRepo:        wineRepo,
		repository:      evaluationRepository,
		diaryRepository: diaryRepository,
		rankingCache:    rankingCache,
		evaluationQueue: evaluationQueue,
	}
}

func (s *EvaluationServiceImpl) Submit(ctx context.Context, input SubmitEvaluationInput) (*model.Event, error) {
	// 1. 分數檢查
	if err := validateRatings(input.Aroma, input.Color, input.Flavor); err != nil {
		return nil, err
	}

	// 2. 活動狀態與參與者檢查
	event, err := s.eventRepo.FindByEventID(ctx, input.EventID)
	if err != nil {
		return nil, err
	}
	if event.IsClosed() {
		return nil, apperrors.ErrEventClosed
	}
	if event.Participant(input.UserID) == nil {
		return nil, apperrors.ErrNotParticipant
	}

	// 3. 酒款位置必須吻合，且已解鎖(主辦人不受限)
	if input.WineIndex < 0 || input.WineIndex >= len(event.Wines) || event.Wines[input.WineIndex].WineID != input.WineID {
		return nil, apperrors.ErrWineMismatch
	}
	if !tasting.CanEvaluate(event, input.UserID, input.WineIndex) {
		return nil, apperrors.ErrWineLocked
	}

	wine := event.Wines[input.WineIndex]
	created, err := s.repository.Create(ctx, event.ID, wine.ID, &model.Evaluation{
		EventID: event.EventID,
		WineID:  wine.WineID,
		UserID:  input.UserID,
		Aroma:   input.Aroma,
		Color:   input.Color,
		Flavor:  input.Flavor,
		Notes:   strings.TrimSpace(input.Notes),
	})
	if err != nil {
		return nil, err
	}

	log := logger.WithComponent("service").With(
		zap.Int("evaluation_id", created.ID),
		zap.String("event_id", event.EventID.String()),
	)

	// 4. 分數已寫入，同步讓排行快取失效；失敗只記錄，快取會在 TTL 後過期
	if err := s.rankingCache.Invalidate(ctx, event.EventID); err != nil {
		log.Warn("failed to invalidate ranking cache", zap.Error(err))
	}

	// 5. 發送 MQ 處理日誌等後續工作，失敗不回報給使用者
	msg := &model.EvaluationSubmitted{
		EvaluationID: created.ID,
		EventID:      event.EventID,
		WineID:       wine.WineID,
		UserID:       input.UserID,
		RequestID:    uuid.NewString(),
	}
	if err := s.evaluationQueue.PublishEvaluation(ctx, msg); err != nil {
		log.Error("failed to publish evaluation", zap.Error(err))
	}

	// 6. 重新讀取完整活動狀態
	return s.eventRepo.FindByEventID(ctx, input.EventID)
}

func (s *EvaluationServiceImpl) ProcessSubmitted(ctx context.Context, msg *model.EvaluationSubmitted) error {
	log := logger.WithComponent("service").With(
		zap.Int("evaluation_id", msg.EvaluationID),
		zap.String("request_id", msg.RequestID),
	)

	if err := s.rankingCache.Invalidate(ctx, msg.EventID); err != nil {
		return err
	}

	evaluation, err := s.repository.FindByID(ctx, msg.EvaluationID)
	if errors.Is(err, apperrors.ErrEvaluationNotFound) {
		log.Warn("evaluation no longer exists, skipping diary entry")
		return nil
	}
	if err != nil {
		return err
	}

	wine, err := s.wineRepo.FindByWineID(ctx, evaluation.WineID)
	if err != nil {
		return err
	}

	eventID := evaluation.EventID
	wineID := wine.WineID
	evaluationID := evaluation.ID
	_, err = s.diaryRepository.Create(ctx, &model.DiaryEntry{
		UserID:       evaluation.UserID,
		EventID:      &eventID,
		WineID:       &wineID,
		EvaluationID: &evaluationID,
		WineName:     wine.Name,
		Country:      wine.Country,
		Grape:        wine.Grape,
		Harvest:      wine.Harvest,
		Aroma:        evaluation.Aroma,
		Color:        evaluation.Color,
		Flavor:       evaluation.Flavor,
		Notes:        evaluation.Notes,
	})
	if errors.Is(err, apperrors.ErrDiaryEntryExists) {
		// 重送的消息
		log.Info("diary entry already recorded")
		return nil
	}
	return err
}
