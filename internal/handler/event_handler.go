package handler

import (
	"net/http"
	"time"

	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/service"
	"go-wine-tasting/internal/tasting"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("events", h.List)
	r.POST("events", h.Create)
	r.POST("events/join", h.Join)
	r.GET("events/:uuid", h.Get)
	r.POST("events/:uuid/close", h.Close)
	r.POST("events/:uuid/invite-code", h.RegenerateInviteCode)
	r.POST("events/:uuid/wines", h.AppendWine)
}

// CreateEventRequest 建立活動請求
type CreateEventRequest struct {
	Name        string      `json:"name" binding:"required,max=200"`
	Description *string     `json:"description" binding:"omitempty,max=2000"`
	DateStart   time.Time   `json:"date_start" binding:"required"`
	DateEnd     *time.Time  `json:"date_end"`
	WineIDs     []uuid.UUID `json:"wine_ids"`
}

// JoinEventRequest 以邀請碼加入活動
type JoinEventRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

// AppendWineRequest 新增酒款到活動
type AppendWineRequest struct {
	WineID uuid.UUID `json:"wine_id" binding:"required"`
}

// EventRoomResponse 活動內容加上登入者視角的酒款狀態
type EventRoomResponse struct {
	*model.Event
	IsOrganizer bool                 `json:"is_organizer"`
	Progress    []tasting.WineStatus `json:"progress"`
}

func newEventRoomResponse(event *model.Event, userID uuid.UUID) EventRoomResponse {
	return EventRoomResponse{
		Event:       event,
		IsOrganizer: event.IsOrganizer(userID),
		Progress:    tasting.Progress(event, userID),
	}
}

func parseEventUUID(c *gin.Context) (uuid.UUID, bool) {
	var uri EventUri
	if err := BindUri(c, &uri); err != nil {
		return uuid.Nil, false
	}
	eventID, err := uuid.Parse(uri.UUID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid", "code": "invalid_request"})
		return uuid.Nil, false
	}
	return eventID, true
}

func (h *EventHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	events, err := h.service.ListForUser(c, user.ID)
	if err != nil {
		handleError(c, err, "ListEvents")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	params := model.CreateEventParams{
		Name:        req.Name,
		Description: req.Description,
		OrganizerID: user.ID,
		DateStart:   req.DateStart,
		DateEnd:     req.DateEnd,
		WineIDs:     req.WineIDs,
	}
	created, err := h.service.Create(c, params)
	if err != nil {
		handleError(c, err, "CreateEvent")
		return
	}
	c.JSON(http.StatusCreated, newEventRoomResponse(created, user.ID))
}

func (h *EventHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	eventID, ok := parseEventUUID(c)
	if !ok {
		return
	}
	event, err := h.service.Get(c, eventID, user.ID)
	if err != nil {
		handleError(c, err, "GetEvent")
		return
	}
	c.JSON(http.StatusOK, newEventRoomResponse(event, user.ID))
}

func (h *EventHandler) Join(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req JoinEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	event, err := h.service.Join(c, req.InviteCode, user.ID)
	if err != nil {
		handleError(c, err, "JoinEvent")
		return
	}
	c.JSON(http.StatusOK, newEventRoomResponse(event, user.ID))
}

func (h *EventHandler) Close(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	eventID, ok := parseEventUUID(c)
	if !ok {
		return
	}
	event, err := h.service.Close(c, eventID, user.ID)
	if err != nil {
		handleError(c, err, "CloseEvent")
		return
	}
	c.JSON(http.StatusOK, newEventRoomResponse(event, user.ID))
}

func (h *EventHandler) RegenerateInviteCode(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	eventID, ok := parseEventUUID(c)
	if !ok {
		return
	}
	event, err := h.service.RegenerateInviteCode(c, eventID, user.ID)
	if err != nil {
		handleError(c, err, "RegenerateInviteCode")
		return
	}
	c.JSON(http.StatusOK, gin.H{"invite_code": event.InviteCode})
}

func (h *EventHandler) AppendWine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	eventID, ok := parseEventUUID(c)
	if !ok {
		return
	}
	var req AppendWineRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	event, err := h.service.AppendWine(c, eventID, user.ID, req.WineID)
	if err != nil {
		handleError(c, err, "AppendWine")
		return
	}
	c.JSON(http.StatusOK, newEventRoomResponse(event, user.ID))
}
