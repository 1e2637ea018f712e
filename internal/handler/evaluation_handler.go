package handler

import (
	"net/http"

	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/service"

	"github.com/gin-gonic/gin"
)

type EvaluationHandler struct {
	service        service.EvaluationService
	rankingService service.RankingService
}

func NewEvaluationHandler(service service.EvaluationService, rankingService service.RankingService) *EvaluationHandler {
	return &EvaluationHandler{service: service, rankingService: rankingService}
}

func (h *EvaluationHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("events/:uuid/evaluations", h.Submit)
	r.GET("events/:uuid/ranking", h.Ranking)
}

// Submit 成功時回傳重新讀取的活動內容
func (h *EvaluationHandler) Submit(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	eventID, ok := parseEventUUID(c)
	if !ok {
		return
	}
	var req model.SubmitEvaluationRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	event, err := h.service.Submit(c, service.SubmitEvaluationInput{
		EventID:   eventID,
		UserID:    user.ID,
		WineID:    req.WineID,
		WineIndex: *req.WineIndex,
		Aroma:     req.Aroma,
		Color:     req.Color,
		Flavor:    req.Flavor,
		Notes:     req.Notes,
	})
	if err != nil {
		handleError(c, err, "SubmitEvaluation")
		return
	}
	c.JSON(http.StatusCreated, newEventRoomResponse(event, user.ID))
}

func (h *EvaluationHandler) Ranking(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	eventID, ok := parseEventUUID(c)
	if !ok {
		return
	}
	ranking, err := h.rankingService.GetRanking(c, eventID, user.ID)
	if err != nil {
		handleError(c, err, "GetRanking")
		return
	}
	c.JSON(http.StatusOK, ranking)
}
