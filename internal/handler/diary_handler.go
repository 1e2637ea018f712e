package handler

import (
	"net/http"

	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/service"

	"github.com/gin-gonic/gin"
)

type DiaryHandler struct {
	service service.DiaryService
}

func NewDiaryHandler(service service.DiaryService) *DiaryHandler {
	return &DiaryHandler{service: service}
}

func (h *DiaryHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("diary", h.List)
	r.POST("diary", h.Create)
}

// CreateDiaryEntryRequest 手動新增品飲日誌
type CreateDiaryEntryRequest struct {
	WineName string  `json:"wine_name" binding:"required,max=200"`
	Country  string  `json:"country" binding:"max=100"`
	Grape    string  `json:"grape" binding:"max=100"`
	Harvest  *int    `json:"harvest"`
	Aroma    float64 `json:"aroma" binding:"rating"`
	Color    float64 `json:"color" binding:"rating"`
	Flavor   float64 `json:"flavor" binding:"rating"`
	Notes    string  `json:"notes" binding:"max=2000"`
}

func (h *DiaryHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	entries, err := h.service.ListByUser(c, user.ID)
	if err != nil {
		handleError(c, err, "ListDiary")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *DiaryHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateDiaryEntryRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	created, err := h.service.Create(c, &model.DiaryEntry{
		UserID:   user.ID,
		WineName: req.WineName,
		Country:  req.Country,
		Grape:    req.Grape,
		Harvest:  req.Harvest,
		Aroma:    req.Aroma,
		Color:    req.Color,
		Flavor:   req.Flavor,
		Notes:    req.Notes,
	})
	if err != nil {
		handleError(c, err, "CreateDiaryEntry")
		return
	}
	c.JSON(http.StatusCreated, created)
}
