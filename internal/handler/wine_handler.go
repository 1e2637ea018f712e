package handler

import (
	"net/http"

	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WineHandler struct {
	service service.WineService
}

func NewWineHandler(service service.WineService) *WineHandler {
	return &WineHandler{service: service}
}

func (h *WineHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("wines", h.List)
	r.POST("wines", h.Create)
	r.GET("wines/:uuid", h.Get)
}

// CreateWineRequest 新增酒款到個人酒單
type CreateWineRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Country string `json:"country" binding:"max=100"`
	Grape   string `json:"grape" binding:"max=100"`
	Harvest *int   `json:"harvest"`
	Image   string `json:"image" binding:"omitempty,url"`
}

type WineUri struct {
	UUID string `uri:"uuid" binding:"required,uuid"`
}

func (h *WineHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	wines, err := h.service.ListByOwner(c, user.ID)
	if err != nil {
		handleError(c, err, "ListWines")
		return
	}
	c.JSON(http.StatusOK, wines)
}

func (h *WineHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateWineRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	created, err := h.service.Create(c, &model.Wine{
		OwnerID: user.ID,
		Name:    req.Name,
		Country: req.Country,
		Grape:   req.Grape,
		Harvest: req.Harvest,
		Image:   req.Image,
	})
	if err != nil {
		handleError(c, err, "CreateWine")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *WineHandler) Get(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	var uri WineUri
	if err := BindUri(c, &uri); err != nil {
		return
	}
	wine, err := h.service.GetByWineID(c, uuid.MustParse(uri.UUID))
	if err != nil {
		handleError(c, err, "GetWine")
		return
	}
	c.JSON(http.StatusOK, wine)
}
