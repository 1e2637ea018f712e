package service

import (
	"context"
	"strings"
	"time"

	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/repository"
	apperrors "go-wine-tasting/pkg/app_errors"

	"github.com/google/uuid"
)

type WineService interface {
	Create(ctx context.Context, wine *model.Wine) (*model.Wine, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Wine, error)
	GetByWineID(ctx context.Context, wineID uuid.UUID) (*model.Wine, error)
}

type WineServiceImpl struct {
	repo repository.WineRepository
	now  func() time.Time
}

func NewWineService(repo repository.WineRepository) WineService {
	return &WineServiceImpl{repo: repo, now: time.Now}
}

func (s *WineServiceImpl) Create(ctx context.Context, wine *model.Wine) (*model.Wine, error) {
	wine.Name = strings.TrimSpace(wine.Name)
	wine.Country = strings.TrimSpace(wine.Country)
	wine.Grape = strings.TrimSpace(wine.Grape)

	verr := apperrors.NewValidationError()
	if wine.Name == "" {
		verr.Add("name", "is required")
	}
	if wine.Harvest != nil && !model.ValidHarvest(*wine.Harvest, s.now()) {
		verr.Add("harvest", "is not a valid year")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if wine.WineID == uuid.Nil {
		wine.WineID = uuid.New()
	}
	return s.repo.Create(ctx, wine)
}

func (s *WineServiceImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Wine, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *WineServiceImpl) GetByWineID(ctx context.Context, wineID uuid.UUID) (*model.Wine, error) {
	return s.repo.FindByWineID(ctx, wineID)
}
