package service

import (
	"context"
	"strings"

	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/repository"
	apperrors "go-wine-tasting/pkg/app_errors"

	"github.com/google/uuid"
)

// Identity 由身分提供者簽發的 token 解析而來
type Identity struct {
	UserID  uuid.UUID
	Name    string
	Email   *string
	IsGuest bool
}

type UserService interface {
	// EnsureUser 每次驗證後同步使用者資料
	EnsureUser(ctx context.Context, identity Identity) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	CreateGuest(ctx context.Context, name string) (*model.User, error)
}

type UserServiceImpl struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &UserServiceImpl{repo: repo}
}

const defaultUserName = "Taster"

func (s *UserServiceImpl) EnsureUser(ctx context.Context, identity Identity) (*model.User, error) {
	if identity.UserID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = defaultUserName
	}
	return s.repo.Upsert(ctx, &model.User{
		ID:      identity.UserID,
		Name:    name,
		Email:   identity.Email,
		IsGuest: identity.IsGuest,
	})
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserServiceImpl) CreateGuest(ctx context.Context, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		verr := apperrors.NewValidationError()
		verr.Add("name", "is required")
		return nil, verr
	}
	return s.repo.Upsert(ctx, &model.User{
		ID:      uuid.New(),
		Name:    name,
		IsGuest: true,
	})
}
