package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
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
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestResolveShareUsesRedisCache(t *testing.T) {
	db := startPostgres(t)
	redisClient := startRedis(t)
	sessions := service.NewSessionService(db, redisClient, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	created, err := sessions.CreateSession(ctx, userID, "cached prompt", []model.GeneratedRecipe{{
		ID:    uuid.New().String(),
		Title: "Cached Dish",
	}}, 3)
	require.NoError(t, err)
	share, err := sessions.CreateShare(ctx, created.ID, userID)
	require.NoError(t, err)

	// first resolve populates the cache
	resolved, err := sessions.ResolveShare(ctx, share.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)

	cacheKey := fmt.Sprintf("session:shared:%s", share.ID)
	ttl, err := redisClient.TTL(ctx, cacheKey).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	// second resolve is served from the cache even if the row disappears
	require.NoError(t, db.Delete(&model.Share{}, "id = ?", share.ID).Error)
	resolved, err = sessions.ResolveShare(ctx, share.ID)
	require.NoError(t, err)
	assert.Equal(t, "cached prompt", resolved.Prompt)
}
