package mocks

import (
	"context"

	"go-wine-tasting/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type EventRepositoryMock struct {
	mock.Mock
}

func NewEventRepositoryMock() *EventRepositoryMock {
	return &EventRepositoryMock{}
}

func (m *EventRepositoryMock) Create(ctx context.Context, params model.CreateEventParams) (*model.Event, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*model.Event, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) FindByInviteCode(ctx context.Context, code string) (*model.Event, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) AddParticipant(ctx context.Context, id int, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *EventRepositoryMock) UpdateStatus(ctx context.Context, id int, status model.EventStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *EventRepositoryMock) UpdateInviteCode(ctx context.Context, id int, code string) error {
	args := m.Called(ctx, id, code)
	return args.Error(0)
}

func (m *EventRepositoryMock) AppendWine(ctx context.Context, id int, wineID int) error {
	args := m.Called(ctx, id, wineID)
	return args.Error(0)
}

type WineRepositoryMock struct {
	mock.Mock
}

func NewWineRepositoryMock() *WineRepositoryMock {
	return &WineRepositoryMock{}
}

func (m *WineRepositoryMock) Create(ctx context.Context, wine *model.Wine) (*model.Wine, error) {
	args := m.Called(ctx, wine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wine), args.Error(1)
}

func (m *WineRepositoryMock) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Wine, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Wine), args.Error(1)
}

func (m *WineRepositoryMock) FindByWineID(ctx context.Context, wineID uuid.UUID) (*model.Wine, error) {
	args := m.Called(ctx, wineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wine), args.Error(1)
}

type EvaluationRepositoryMock struct {
	mock.Mock
}

func NewEvaluationRepositoryMock() *EvaluationRepositoryMock {
	return &EvaluationRepositoryMock{}
}

func (m *EvaluationRepositoryMock) Create(ctx context.Context, eventID int, wineID int, evaluation *model.Evaluation) (*model.Evaluation, error) {
	args := m.Called(ctx, eventID, wineID, evaluation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Evaluation), args.Error(1)
}

func (m *EvaluationRepositoryMock) FindByID(ctx context.Context, id int) (*model.Evaluation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Evaluation), args.Error(1)
}

func (m *EvaluationRepositoryMock) RankingByEvent(ctx context.Context, eventID int) ([]*model.RankingEntry, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RankingEntry), args.Error(1)
}

type DiaryRepositoryMock struct {
	mock.Mock
}

func NewDiaryRepositoryMock() *DiaryRepositoryMock {
	return &DiaryRepositoryMock{}
}

func (m *DiaryRepositoryMock) Create(ctx context.Context, entry *model.DiaryEntry) (*model.DiaryEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DiaryEntry), args.Error(1)
}

func (m *DiaryRepositoryMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.DiaryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.DiaryEntry), args.Error(1)
}

type UserRepositoryMock struct {
	mock.Mock
}

func NewUserRepositoryMock() *UserRepositoryMock {
	return &UserRepositoryMock{}
}

func (m *UserRepositoryMock) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepositoryMock) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
