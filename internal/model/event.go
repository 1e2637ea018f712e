package model

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus 活動狀態
type EventStatus string

const (
	EventStatusOpen   EventStatus = "OPEN"
	EventStatusClosed EventStatus = "CLOSED"
)

// IsValid 驗證狀態是否有效
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusOpen, EventStatusClosed:
		return true
	}
	return false
}

// CanTransitionTo CLOSED 為終止狀態
func (s EventStatus) CanTransitionTo(target EventStatus) bool {
	return s == EventStatusOpen && target == EventStatusClosed
}

type Event struct {
	ID          int         `json:"-" db:"id"`
	EventID     uuid.UUID   `json:"id" db:"event_id"`
	Name        string      `json:"name" db:"name"`
	Description *string     `json:"description,omitempty" db:"description"`
	OrganizerID uuid.UUID   `json:"organizer_id" db:"organizer_id"`
	Status      EventStatus `json:"status" db:"status"`
	InviteCode  string      `json:"invite_code" db:"invite_code"`
	DateStart   time.Time   `json:"date_start" db:"date_start"`
	DateEnd     *time.Time  `json:"date_end,omitempty" db:"date_end"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`

	// Wines 依評鑑順序排列
	Wines        []*Wine        `json:"wines" db:"-"`
	Participants []*Participant `json:"participants" db:"-"`
}

func (e *Event) IsClosed() bool {
	return e.Status == EventStatusClosed
}

func (e *Event) IsOrganizer(userID uuid.UUID) bool {
	return e.OrganizerID == userID
}

// Participant 找出活動中的參與者，不存在時回傳 nil
func (e *Event) Participant(userID uuid.UUID) *Participant {
	for _, p := range e.Participants {
		if p.ID == userID {
			return p
		}
	}
	return nil
}

// Participant 活動參與者及其評分紀錄
type Participant struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	IsGuest     bool          `json:"is_guest"`
	JoinedAt    time.Time     `json:"joined_at"`
	Evaluations []*Evaluation `json:"evaluations"`
}

// HasEvaluated 參與者是否已對該酒款評分
func (p *Participant) HasEvaluated(wineID uuid.UUID) bool {
	for _, e := range p.Evaluations {
		if e.WineID == wineID {
			return true
		}
	}
	return false
}

type CreateEventParams struct {
	Name        string
	Description *string
	OrganizerID uuid.UUID
	InviteCode  string
	DateStart   time.Time
	DateEnd     *time.Time
	WineIDs     []uuid.UUID
}
