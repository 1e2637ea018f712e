package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/repository"
	apperrors "go-wine-tasting/pkg/app_errors"

	"github.com/google/uuid"
)

type DiaryService interface {
	Create(ctx context.Context, entry *model.DiaryEntry) (*model.DiaryEntry, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.DiaryEntry, error)
}

type DiaryServiceImpl struct {
	repo repository.DiaryRepository
	now  func() time.Time
}

func NewDiaryService(repo repository.DiaryRepository) DiaryService {
	return &DiaryServiceImpl{repo: repo, now: time.Now}
}

func (s *DiaryServiceImpl) Create(ctx context.Context, entry *model.DiaryEntry) (*model.DiaryEntry, error) {
	entry.WineName = strings.TrimSpace(entry.WineName)
	entry.Notes = strings.TrimSpace(entry.Notes)

	verr := apperrors.NewValidationError()
	var ratingErr *apperrors.ValidationError
	if errors.As(validateRatings(entry.Aroma, entry.Color, entry.Flavor), &ratingErr) {
		for field, msg := range ratingErr.Fields {
			verr.Add(field, msg)
		}
	}
	if entry.WineName == "" {
		verr.Add("wine_name", "is required")
	}
	if entry.Harvest != nil && !model.ValidHarvest(*entry.Harvest, s.now()) {
		verr.Add("harvest", "is not a valid year")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	// 手動建立的日誌不連結評分
	entry.EvaluationID = nil
	return s.repo.Create(ctx, entry)
}

func (s *DiaryServiceImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.DiaryEntry, error) {
	return s.repo.ListByUser(ctx, userID)
}
