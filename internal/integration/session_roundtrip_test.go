package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pageza/recipe-finder/backend/internal/database"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

// startPostgres runs a pgvector-enabled Postgres container and returns an
// open gorm handle. Skipped unless INTEGRATION_TESTS=true.
func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("INTEGRATION_TESTS") != "true" {
		t.Skip("set INTEGRATION_TESTS=true to run container tests")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "pgvector/pgvector:pg16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "recipefinder_test",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=recipefinder_test sslmode=disable", host, port.Port())
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSessionRoundTripOnPostgres(t *testing.T) {
	db := startPostgres(t)
	sessions := service.NewSessionService(db, nil, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	recipes := []model.GeneratedRecipe{
		{
			ID:      uuid.New().String(),
			Title:   "Pad Thai",
			Summary: "Sweet and tangy noodles",
			Steps: []model.RecipeStep{
				{N: 1, Instruction: "Soak the noodles", Time: "20 min"},
				{N: 2, Instruction: "Stir-fry everything", Time: "8 min"},
			},
			Servings:        2,
			PopularityScore: 90,
		},
		{
			ID:              uuid.New().String(),
			Title:           "Fried Rice",
			Summary:         "Day-old rice, high heat",
			Steps:           []model.RecipeStep{{N: 1, Instruction: "Fry the rice", Time: "10 min"}},
			Servings:        2,
			PopularityScore: 70,
		},
	}

	created, err := sessions.CreateSession(ctx, userID, "Ingredients: rice, egg", recipes, 3)
	require.NoError(t, err)

	// JSONB round trip preserves the full recipe shape
	got, err := sessions.GetSession(ctx, created.ID, userID)
	require.NoError(t, err)
	require.Len(t, got.Recipes, 2)
	assert.Equal(t, "Pad Thai", got.Recipes[0].Title)
	assert.Equal(t, 90, got.Recipes[0].PopularityScore)
	assert.Equal(t, "Soak the noodles", got.Recipes[0].Steps[0].Instruction)
	assert.Equal(t, model.CurrentSchemaVersion, got.SchemaVersion)

	// share flow against the real database
	share, err := sessions.CreateShare(ctx, created.ID, userID)
	require.NoError(t, err)
	resolved, err := sessions.ResolveShare(ctx, share.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)
}

func TestVectorSimilarityOrderingOnPostgres(t *testing.T) {
	db := startPostgres(t)
	sessions := service.NewSessionService(db, nil, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	prompts := []string{
		"Ingredients: rice, egg, lime",
		"Ingredients: flour, butter, sugar, chocolate chips",
		"Ingredients: rice, egg",
	}
	for _, p := range prompts {
		_, err := sessions.CreateSession(ctx, userID, p, []model.GeneratedRecipe{{
			ID:    uuid.New().String(),
			Title: "Dish",
		}}, 3)
		require.NoError(t, err)
	}

	got, err := sessions.FindSimilar(ctx, userID, "Ingredients: rice, egg", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// the exact prompt match is the nearest neighbor
	assert.Equal(t, "Ingredients: rice, egg", got[0].Prompt)

	// other users see nothing
	other, err := sessions.FindSimilar(ctx, uuid.New(), "rice", 5)
	require.NoError(t, err)
	assert.Empty(t, other)
}
