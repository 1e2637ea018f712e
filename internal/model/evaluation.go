package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating  = 0.5
	MaxRating  = 5.0
	RatingStep = 0.5
)

// ValidRating 分數需在 [0.5, 5] 且為 0.5 的倍數
func ValidRating(v float64) bool {
	if math.IsNaN(v) || v < MinRating || v > MaxRating {
		return false
	}
	steps := v / RatingStep
	return steps == math.Trunc(steps)
}

// Evaluation 建立後不可修改
type Evaluation struct {
	ID        int       `json:"id" db:"id"`
	EventID   uuid.UUID `json:"event_id" db:"-"`
	WineID    uuid.UUID `json:"wine_id" db:"-"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Aroma     float64   `json:"aroma" db:"aroma"`
	Color     float64   `json:"color" db:"color"`
	Flavor    float64   `json:"flavor" db:"flavor"`
	Notes     string    `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Score 三項分數的平均
func (e *Evaluation) Score() float64 {
	return (e.Aroma + e.Color + e.Flavor) / 3
}

// SubmitEvaluationRequest 送出評分請求
type SubmitEvaluationRequest struct {
	WineID    uuid.UUID `json:"wine_id" binding:"required"`
	WineIndex *int      `json:"wine_index" binding:"required,min=0"`
	Aroma     float64   `json:"aroma" binding:"rating"`
	Color     float64   `json:"color" binding:"rating"`
	Flavor    float64   `json:"flavor" binding:"rating"`
	Notes     string    `json:"notes" binding:"max=2000"`
}

// EvaluationSubmitted 評分成功後送入佇列的訊息
type EvaluationSubmitted struct {
	EvaluationID int       `json:"evaluation_id"`
	EventID      uuid.UUID `json:"event_id"`
	WineID       uuid.UUID `json:"wine_id"`
	UserID       uuid.UUID `json:"user_id"`
	RequestID    string    `json:"request_id"`
}
