package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/models"
)

// newTestDB opens an isolated in-memory database and migrates the schema
func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

// fakeChat scripts the chat completion responses the pipeline will see, in
// call order.
type fakeChat struct {
	responses []string
	errs      []error
	calls     int
	system    []string
	user      []string
	temps     []float64
}

func (f *fakeChat) ChatCompletion(_ context.Context, system, user string, temperature float64) (string, error) {
	i := f.calls
	f.calls++
	f.system = append(f.system, system)
	f.user = append(f.user, user)
	f.temps = append(f.temps, temperature)

	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	resp := ""
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	return resp, err
}

// fakeImager returns a fixed URL, optionally failing for specific prompts
type fakeImager struct {
	url      string
	source   string
	failWhen func(prompt string) bool
	prompts  []string
}

func (f *fakeImager) GenerateDishImage(_ context.Context, prompt string) (string, string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.failWhen != nil && f.failWhen(prompt) {
		return "", "", fmt.Errorf("image provider rejected prompt")
	}
	return f.url, f.source, nil
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// recipesJSON builds a minimal valid generation payload with the given titles
func recipesJSON(titles ...string) string {
	out := `{"recipes":[`
	for i, title := range titles {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"title":%q,"summary":"A %s to try","steps":[{"n":9,"instruction":"Cook","time":"10 min"},{"n":1,"instruction":"Serve","time":"1 min"}],"servings":2}`, title, title)
	}
	return out + `]}`
}
