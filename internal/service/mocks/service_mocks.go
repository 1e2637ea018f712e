package mocks

import (
	"context"

	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type EventServiceMock struct {
	mock.Mock
}

func NewEventServiceMock() *EventServiceMock {
	return &EventServiceMock{}
}

func eventResult(args mock.Arguments) (*model.Event, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventServiceMock) Create(ctx context.Context, params model.CreateEventParams) (*model.Event, error) {
	return eventResult(m.Called(ctx, params))
}

func (m *EventServiceMock) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Event, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventServiceMock) Get(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*model.Event, error) {
	return eventResult(m.Called(ctx, eventID, userID))
}

func (m *EventServiceMock) Join(ctx context.Context, code string, userID uuid.UUID) (*model.Event, error) {
	return eventResult(m.Called(ctx, code, userID))
}

func (m *EventServiceMock) Close(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*model.Event, error) {
	return eventResult(m.Called(ctx, eventID, userID))
}

func (m *EventServiceMock) RegenerateInviteCode(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*model.Event, error) {
	return eventResult(m.Called(ctx, eventID, userID))
}

func (m *EventServiceMock) AppendWine(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, wineID uuid.UUID) (*model.Event, error) {
	return eventResult(m.Called(ctx, eventID, userID, wineID))
}

type EvaluationServiceMock struct {
	mock.Mock
}

func NewEvaluationServiceMock() *EvaluationServiceMock {
	return &EvaluationServiceMock{}
}

func (m *EvaluationServiceMock) Submit(ctx context.Context, input service.SubmitEvaluationInput) (*model.Event, error) {
	return eventResult(m.Called(ctx, input))
}

func (m *EvaluationServiceMock) ProcessSubmitted(ctx context.Context, msg *model.EvaluationSubmitted) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type RankingServiceMock struct {
	mock.Mock
}

func NewRankingServiceMock() *RankingServiceMock {
	return &RankingServiceMock{}
}

func (m *RankingServiceMock) GetRanking(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*model.Ranking, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ranking), args.Error(1)
}

type WineServiceMock struct {
	mock.Mock
}

func NewWineServiceMock() *WineServiceMock {
	return &WineServiceMock{}
}

func (m *WineServiceMock) Create(ctx context.Context, wine *model.Wine) (*model.Wine, error) {
	args := m.Called(ctx, wine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wine), args.Error(1)
}

func (m *WineServiceMock) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Wine, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Wine), args.Error(1)
}

func (m *WineServiceMock) GetByWineID(ctx context.Context, wineID uuid.UUID) (*model.Wine, error) {
	args := m.Called(ctx, wineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wine), args.Error(1)
}

type DiaryServiceMock struct {
	mock.Mock
}

func NewDiaryServiceMock() *DiaryServiceMock {
	return &DiaryServiceMock{}
}

func (m *DiaryServiceMock) Create(ctx context.Context, entry *model.DiaryEntry) (*model.DiaryEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DiaryEntry), args.Error(1)
}

func (m *DiaryServiceMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.DiaryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.DiaryEntry), args.Error(1)
}

type UserServiceMock struct {
	mock.Mock
}

func NewUserServiceMock() *UserServiceMock {
	return &UserServiceMock{}
}

func (m *UserServiceMock) EnsureUser(ctx context.Context, identity service.Identity) (*model.User, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserServiceMock) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserServiceMock) CreateGuest(ctx context.Context, name string) (*model.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
