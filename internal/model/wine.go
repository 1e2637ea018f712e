package model

import (
	"time"

	"github.com/google/uuid"
)

type Wine struct {
	ID        int       `json:"-" db:"id"`
	WineID    uuid.UUID `json:"id" db:"wine_id"`
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	Country   string    `json:"country" db:"country"`
	Grape     string    `json:"grape" db:"grape"`
	Harvest   *int      `json:"harvest,omitempty" db:"harvest"`
	Image     string    `json:"image" db:"image"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MinHarvestYear 最早可接受的年份
const MinHarvestYear = 1800

// ValidHarvest 年份需介於 MinHarvestYear 與明年之間
func ValidHarvest(year int, now time.Time) bool {
	return year >= MinHarvestYear && year <= now.Year()+1
}
