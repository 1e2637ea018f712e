package model

import "github.com/google/uuid"

// PodiumSize 前幾名另外顯示
const PodiumSize = 3

type RankingEntry struct {
	Position        int     `json:"position"`
	Wine            *Wine   `json:"wine"`
	AverageRating   float64 `json:"average_rating"`
	EvaluationCount int     `json:"evaluation_count"`
}

type Ranking struct {
	EventID uuid.UUID       `json:"event_id"`
	Podium  []*RankingEntry `json:"podium"`
	Rest    []*RankingEntry `json:"rest"`
}

// NewRanking 依已排序的列表切出前三名與其餘
func NewRanking(eventID uuid.UUID, entries []*RankingEntry) *Ranking {
	r := &Ranking{
		EventID: eventID,
		Podium:  make([]*RankingEntry, 0, PodiumSize),
		Rest:    make([]*RankingEntry, 0),
	}
	for i, e := range entries {
		e.Position = i + 1
		if i < PodiumSize {
			r.Podium = append(r.Podium, e)
		} else {
			r.Rest = append(r.Rest, e)
		}
	}
	return r
}
