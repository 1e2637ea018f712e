package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-wine-tasting/internal/handler"
	"go-wine-tasting/internal/middleware"
	"go-wine-tasting/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	InvalidJSON = `{"invalid": json}`
)

type routeRegistrar interface {
	RegisterRoutes(r gin.IRouter)
}

// setupTestRouter 以 user 身分掛上 handler；user 為 nil 時模擬未登入
func setupTestRouter(user *model.User, handlers ...routeRegistrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler.RegisterValidators()
	router := gin.New()
	v1 := router.Group("/api/v1")
	if user != nil {
		v1.Use(func(c *gin.Context) {
			middleware.SetCurrentUser(c, user)
			c.Next()
		})
	}
	for _, h := range handlers {
		h.RegisterRoutes(v1)
	}
	return router
}

func testUser() *model.User {
	return &model.User{ID: uuid.New(), Name: "Ana"}
}

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	if s, ok := data.(string); ok {
		return bytes.NewBufferString(s)
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req, err := http.NewRequest(method, url, createJSONRequest(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
