package service_test

import (
	"time"

	"go-wine-tasting/internal/model"

	"github.com/google/uuid"
)

// newTestEvent 建立有 n 支酒、由 organizer 主辦的活動，participants 會一併加入
func newTestEvent(organizer uuid.UUID, wineCount int, participants ...uuid.UUID) *model.Event {
	event := &model.Event{
		ID:          1,
		EventID:     uuid.New(),
		Name:        "Friday tasting",
		OrganizerID: organizer,
		Status:      model.EventStatusOpen,
		InviteCode:  "ABC234",
		DateStart:   time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC),
	}
	for i := 0; i < wineCount; i++ {
		event.Wines = append(event.Wines, &model.Wine{ID: 100 + i, WineID: uuid.New(), OwnerID: organizer, Name: "Wine"})
	}
	event.Participants = append(event.Participants, &model.Participant{ID: organizer, Name: "Organizer"})
	for _, id := range participants {
		event.Participants = append(event.Participants, &model.Participant{ID: id, Name: "Taster"})
	}
	return event
}

// rate 模擬 userID 對第 index 支酒的評分
func rate(event *model.Event, userID uuid.UUID, index int) {
	p := event.Participant(userID)
	p.Evaluations = append(p.Evaluations, &model.Evaluation{
		EventID: event.EventID,
		WineID:  event.Wines[index].WineID,
		UserID:  userID,
		Aroma:   4, Color: 4, Flavor: 4,
	})
}
