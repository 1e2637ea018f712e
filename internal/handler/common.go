package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/middleware"
	apperrors "go-wine-tasting/pkg/app_errors"
	"go-wine-tasting/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var registerOnce sync.Once

// RegisterValidators 註冊自訂驗證規則，並讓錯誤欄位使用 JSON 名稱
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("rating", func(fl validator.FieldLevel) bool {
			return model.ValidRating(fl.Field().Float())
		})
	})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "rating":
		return "must be between 0.5 and 5 in steps of 0.5"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = validationMessage(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid input",
			"code":   "invalid_input",
			"fields": fields,
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"error": "Invalid request format",
		"code":  "invalid_request",
	})
}

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		bindError(c, err)
		return err
	}
	return nil
}

func BindUri(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindUri(obj); err != nil {
		bindError(c, err)
		return err
	}
	return nil
}

// EventUri 活動路徑參數
type EventUri struct {
	UUID string `uri:"uuid" binding:"required,uuid"`
}

// currentUser 取得登入者；middleware 未設置時回 401
func currentUser(c *gin.Context) (*model.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "code": "unauthorized"})
		return nil, false
	}
	return user, true
}

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// 依序比對，第一個符合的決定回應
var errorMappings = []errorMapping{
	{apperrors.ErrEventNotFound, http.StatusNotFound, "event_not_found", "Event not found"},
	{apperrors.ErrWineNotFound, http.StatusNotFound, "wine_not_found", "Wine not found"},
	{apperrors.ErrUserNotFound, http.StatusNotFound, "user_not_found", "User not found"},
	{apperrors.ErrInviteCodeNotFound, http.StatusNotFound, "invite_code_not_found", "Invite code not found"},
	{apperrors.ErrEventClosed, http.StatusConflict, "event_closed", "Event is closed"},
	{apperrors.ErrNotParticipant, http.StatusForbidden, "not_participant", "You are not a participant of this event"},
	{apperrors.ErrNotOrganizer, http.StatusForbidden, "not_organizer", "Only the organizer can do this"},
	{apperrors.ErrWineMismatch, http.StatusBadRequest, "wine_mismatch", "Wine does not match its position in the event"},
	{apperrors.ErrWineLocked, http.StatusConflict, "wine_locked", "This wine unlocks once every participant has rated the previous one"},
	{apperrors.ErrAlreadyRated, http.StatusConflict, "already_rated", "You have already rated this wine"},
	{apperrors.ErrWineAlreadyInEvent, http.StatusConflict, "wine_already_in_event", "Wine is already part of this event"},
	{apperrors.ErrDiaryEntryExists, http.StatusConflict, "diary_entry_exists", "Diary entry already exists"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Unauthorized"},
	{apperrors.ErrInvalidInput, http.StatusBadRequest, "invalid_input", "Invalid input"},
}

func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		log.Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid input",
			"code":   "invalid_input",
			"fields": verr.Fields,
		})
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			log.Warn(m.message)
			c.JSON(m.status, gin.H{"error": m.message, "code": m.code})
			return
		}
	}

	log.Error("Unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "internal"})
}
