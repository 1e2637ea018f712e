package model

import (
	"time"

	"github.com/google/uuid"
)

type DiaryEntry struct {
	ID           int        `json:"id" db:"id"`
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	EventID      *uuid.UUID `json:"event_id,omitempty" db:"-"`
	WineID       *uuid.UUID `json:"wine_id,omitempty" db:"-"`
	EvaluationID *int       `json:"evaluation_id,omitempty" db:"evaluation_id"`
	WineName     string     `json:"wine_name" db:"wine_name"`
	Country      string     `json:"country" db:"country"`
	Grape        string     `json:"grape" db:"grape"`
	Harvest      *int       `json:"harvest,omitempty" db:"harvest"`
	Aroma        float64    `json:"aroma" db:"aroma"`
	Color        float64    `json:"color" db:"color"`
	Flavor       float64    `json:"flavor" db:"flavor"`
	Notes        string     `json:"notes" db:"notes"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}
