package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/recipe-finder/backend/internal/api"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/models"
	"github.com/pageza/recipe-finder/backend/internal/router"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// scriptedChat replays canned gateway responses in call order
type scriptedChat struct {
	responses []string
	errs      []error
	calls     int
}

func (s *scriptedChat) ChatCompletion(_ context.Context, _, _ string, _ float64) (string, error) {
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	resp := ""
	if i < len(s.responses) {
		resp = s.responses[i]
	}
	return resp, err
}

type testApp struct {
	engine *gin.Engine
	db     *gorm.DB
	chat   *scriptedChat
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&model.Session{},
		&model.Share{},
	))

	log := zap.NewNop()
	chat := &scriptedChat{}

	authService := service.NewAuthService(db, "test-secret")
	sessionService := service.NewSessionService(db, nil, log)
	generationService := service.NewGenerationService(chat, nil, sessionService, log)

	handlers := router.Handlers{
		Auth:       api.NewAuthHandler(authService),
		Generation: api.NewGenerationHandler(generationService),
		Sessions:   api.NewSessionHandler(sessionService),
		Shares:     api.NewShareHandler(sessionService),
	}
	engine := router.SetupRouter(handlers, authService, nil, log)

	return &testApp{engine: engine, db: db, chat: chat}
}

// registerUser creates an account through the API and returns its token
func (a *testApp) registerUser(t *testing.T, email string) string {
	t.Helper()
	body := map[string]string{
		"name":     "Test User",
		"email":    email,
		"username": strings.SplitN(email, "@", 2)[0],
		"password": "password123",
	}
	w := a.request(t, http.MethodPost, "/api/v1/auth/register", body, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (a *testApp) request(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// generationPayload is a minimal valid gateway response with the given titles
func generationPayload(titles ...string) string {
	type step struct {
		N           int    `json:"n"`
		Instruction string `json:"instruction"`
		Time        string `json:"time"`
	}
	type recipe struct {
		Title    string `json:"title"`
		Summary  string `json:"summary"`
		Steps    []step `json:"steps"`
		Servings int    `json:"servings"`
	}
	var recipes []recipe
	for _, title := range titles {
		recipes = append(recipes, recipe{
			Title:    title,
			Summary:  title + " summary",
			Steps:    []step{{N: 1, Instruction: "Cook", Time: "10 min"}},
			Servings: 2,
		})
	}
	out, _ := json.Marshal(map[string]interface{}{"recipes": recipes})
	return string(out)
}
