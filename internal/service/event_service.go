package service

import (
	"context"
	"errors"
	"strings"

	"go-wine-tasting/internal/cache"
	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/repository"
	apperrors "go-wine-tasting/pkg/app_errors"
	"go-wine-tasting/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 邀請碼碰撞時的重試次數
const inviteCodeAttempts = 5

type EventService interface {
	Create(ctx context.Context, params model.CreateEventParams) (*model.Event, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Event, error)
	// Get 只有參與者可以看到活動內容
	Get(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*model.Event, error)
	// Join 以邀請碼加入；已加入時直接回傳活動
	Join(ctx context.Context, code string, userID uuid.UUID) (*model.Event, error)
	Close(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*model.Event, error)
	RegenerateInviteCode(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*model.Event, error)
	// AppendWine 將酒款加到評鑑順序的最後
	AppendWine(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, wineID uuid.UUID) (*model.Event, error)
}

type EventServiceOption func(*EventServiceImpl)

// WithInviteCodeGenerator 替換邀請碼產生器
func WithInviteCodeGenerator(gen func() (string, error)) EventServiceOption {
	return func(s *EventServiceImpl) {
		s.newInviteCode = gen
	}
}

type EventServiceImpl struct {
	repo          repository.EventRepository
	wineRepo      repository.WineRepository
	rankingCache  cache.RankingCache
	newInviteCode func() (string, error)
}

func NewEventService(
	repo repository.EventRepository,
	wineRepo repository.WineRepository,
	rankingCache cache.RankingCache,
	opts ...EventServiceOption,
) EventService {
	s := &EventServiceImpl{
		repo:          repo,
		wineRepo:      wineRepo,
		rankingCache:  rankingCache,
		newInviteCode: GenerateInviteCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *EventServiceImpl) Create(ctx context.Context, params model.CreateEventParams) (*model.Event, error) {
	params.Name = strings.TrimSpace(params.Name)

	verr := apperrors.NewValidationError()
	if params.Name == "" {
		verr.Add("name", "is required")
	}
	if params.DateStart.IsZero() {
		verr.Add("date_start", "is required")
	}
	if params.DateEnd != nil && params.DateEnd.Before(params.DateStart) {
		verr.Add("date_end", "must not be before date_start")
	}
	seen := make(map[uuid.UUID]struct{}, len(params.WineIDs))
	for _, id := range params.WineIDs {
		if _, dup := seen[id]; dup {
			verr.Add("wine_ids", "must not contain duplicates")
			break
		}
		seen[id] = struct{}{}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		code, err := s.newInviteCode()
		if err != nil {
			return nil, err
		}
		params.InviteCode = code

		event, err := s.repo.Create(ctx, params)
		if errors.Is(err, apperrors.ErrInviteCodeConflict) {
			continue
		}
		return event, err
	}
	return nil, apperrors.ErrInviteCodeConflict
}

func (s *EventServiceImpl) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Event, error) {
	return s.repo.ListByParticipant(ctx, userID)
}

func (s *EventServiceImpl) Get(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*model.Event, error) {
	event, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsOrganizer(userID) && event.Participant(userID) == nil {
		return nil, apperrors.ErrNotParticipant
	}
	return event, nil
}

func (s *EventServiceImpl) Join(ctx context.Context, code string, userID uuid.UUID) (*model.Event, error) {
	code = NormalizeInviteCode(code)
	if code == "" {
		verr := apperrors.NewValidationError()
		verr.Add("invite_code", "is required")
		return nil, verr
	}

	found, err := s.repo.FindByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if found.IsClosed() {
		return nil, apperrors.ErrEventClosed
	}

	added, err := s.repo.AddParticipant(ctx, found.ID, userID)
	if err != nil {
		return nil, err
	}
	if added {
		logger.WithComponent("service").Info("participant joined",
			zap.String("event_id", found.EventID.String()),
			zap.String("user_id", userID.String()),
		)
	}

	return s.repo.FindByEventID(ctx, found.EventID)
}

// loadAsOrganizer 讀取活動並確認操作者為主辦人且活動未結束
func (s *EventServiceImpl) loadAsOrganizer(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*model.Event, error) {
	event, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsOrganizer(userID) {
		return nil, apperrors.ErrNotOrganizer
	}
	if event.IsClosed() {
		return nil, apperrors.ErrEventClosed
	}
	return event, nil
}

func (s *EventServiceImpl) Close(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*model.Event, error) {
	event, err := s.loadAsOrganizer(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if !event.Status.CanTransitionTo(model.EventStatusClosed) {
		return nil, apperrors.ErrEventClosed
	}

	if err := s.repo.UpdateStatus(ctx, event.ID, model.EventStatusClosed); err != nil {
		return nil, err
	}
	if err := s.rankingCache.Invalidate(ctx, event.EventID); err != nil {
		logger.WithComponent("service").Warn("invalidate ranking cache failed",
			zap.String("event_id", event.EventID.String()), zap.Error(err))
	}

	return s.repo.FindByEventID(ctx, eventID)
}

func (s *EventServiceImpl) RegenerateInviteCode(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*model.Event, error) {
	event, err := s.loadAsOrganizer(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		code, err := s.newInviteCode()
		if err != nil {
			return nil, err
		}
		if code == event.InviteCode {
			continue
		}

		err = s.repo.UpdateInviteCode(ctx, event.ID, code)
		if errors.Is(err, apperrors.ErrInviteCodeConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		event.InviteCode = code
		return event, nil
	}
	return nil, apperrors.ErrInviteCodeConflict
}

func (s *EventServiceImpl) AppendWine(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, wineID uuid.UUID) (*model.Event, error) {
	event, err := s.loadAsOrganizer(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	wine, err := s.wineRepo.FindByWineID(ctx, wineID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AppendWine(ctx, event.ID, wine.ID); err != nil {
		return nil, err
	}
	if err := s.rankingCache.Invalidate(ctx, event.EventID); err != nil {
		logger.WithComponent("service").Warn("invalidate ranking cache failed",
			zap.String("event_id", event.EventID.String()), zap.Error(err))
	}
	return s.repo.FindByEventID(ctx, eventID)
}
