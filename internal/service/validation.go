package service

import (
	"fmt"
	"go-wine-tasting/internal/model"
	apperrors "go-wine-tasting/pkg/app_errors"
)

var ratingMessage = fmt.Sprintf("must be between %.1f and %.0f in steps of %.1f", model.MinRating, model.MaxRating, model.RatingStep)

// validateRatings 逐欄檢查三項分數，回傳 *ValidationError 或 nil
func validateRatings(aroma, color, flavor float64) error {
	verr := apperrors.NewValidationError()
	if !model.ValidRating(aroma) {
		verr.Add("aroma", ratingMessage)
	}
	if !model.ValidRating(color) {
		verr.Add("color", ratingMessage)
	}
	if !model.ValidRating(flavor) {
		verr.Add("flavor", ratingMessage)
	}
	return verr.OrNil()
}
