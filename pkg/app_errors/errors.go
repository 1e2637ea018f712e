package apperrors

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrWineNotFound        = errors.New("wine not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrEvaluationNotFound  = errors.New("evaluation not found")
	ErrInviteCodeNotFound  = errors.New("invite code not found")
	ErrEventClosed         = errors.New("event closed")
	ErrNotParticipant      = errors.New("user is not a participant of the event")
	ErrNotOrganizer        = errors.New("only the organizer can do this")
	ErrWineMismatch        = errors.New("wine does not match its position in the event")
	ErrWineLocked          = errors.New("wine is locked until every participant rated the previous one")
	ErrAlreadyRated        = errors.New("already rated")
	ErrWineAlreadyInEvent  = errors.New("wine already in event")
	ErrDiaryEntryExists    = errors.New("diary entry already exists")
	ErrInviteCodeConflict  = errors.New("invite code already in use")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInternalServerError = errors.New("internal server error")
)

// ValidationError 欄位層級的驗證錯誤，key 為 JSON 欄位名
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil 沒有任何欄位錯誤時回傳 nil，方便直接 return
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is 讓 errors.Is(err, ErrInvalidInput) 對 ValidationError 成立
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
