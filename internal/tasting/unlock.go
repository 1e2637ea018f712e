// Package tasting 決定活動中哪些酒款可以評分。
//
// 酒款依順序評鑑：第 i 款 (i>0) 只有在所有參與者都評過第 i-1 款後才會解鎖。
// 主辦人不受此限制。
package tasting

import (
	"go-wine-tasting/internal/model"

	"github.com/google/uuid"
)

// IsWineUnlocked 第 0 款永遠解鎖；其餘需所有參與者都評過前一款。
// 沒有參與者時視為解鎖。
func IsWineUnlocked(index int, wines []*model.Wine, participants []*model.Participant) bool {
	if index < 0 || index >= len(wines) {
		return false
	}
	if index == 0 {
		return true
	}

	prev := wines[index-1]
	if prev == nil || prev.WineID == uuid.Nil {
		return false
	}

	for _, p := range participants {
		if !p.HasEvaluated(prev.WineID) {
			return false
		}
	}
	return true
}

// CanEvaluate 主辦人可評任何一款，其他人依解鎖規則
func CanEvaluate(event *model.Event, userID uuid.UUID, index int) bool {
	if index < 0 || index >= len(event.Wines) {
		return false
	}
	if event.IsOrganizer(userID) {
		return true
	}
	return IsWineUnlocked(index, event.Wines, event.Participants)
}

// WineStatus 活動房間中單一酒款的狀態
type WineStatus struct {
	WineID          uuid.UUID `json:"wine_id"`
	Index           int       `json:"index"`
	Unlocked        bool      `json:"unlocked"`
	Evaluable       bool      `json:"evaluable"`
	EvaluatedByMe   bool      `json:"evaluated_by_me"`
	EvaluationCount int       `json:"evaluation_count"`
}

// Progress 計算每一款酒對該使用者的狀態
func Progress(event *model.Event, userID uuid.UUID) []WineStatus {
	me := event.Participant(userID)
	out := make([]WineStatus, 0, len(event.Wines))

	for i, w := range event.Wines {
		status := WineStatus{
			WineID:   w.WineID,
			Index:    i,
			Unlocked: IsWineUnlocked(i, event.Wines, event.Participants),
		}
		for _, p := range event.Participants {
			if p.HasEvaluated(w.WineID) {
				status.EvaluationCount++
			}
		}
		if me != nil {
			status.EvaluatedByMe = me.HasEvaluated(w.WineID)
		}
		status.Evaluable = !event.IsClosed() && me != nil && !status.EvaluatedByMe && CanEvaluate(event, userID, i)
		out = append(out, status)
	}
	return out
}
