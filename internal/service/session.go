package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

const sharedSessionTTL = time.Hour

// SessionService persists finalized recipe sets and resolves share links.
// The Redis client is optional; share lookups fall back to the database.
type SessionService struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.Logger
}

// NewSessionService creates a new SessionService instance
func NewSessionService(db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *SessionService {
	return &SessionService{
		db:     db,
		redis:  redisClient,
		logger: logger,
	}
}

// CreateSession persists the sorted recipe set with its originating prompt.
// A storage rejection is fatal to the request; already generated recipes are
// discarded, not retried.
func (s *SessionService) CreateSession(ctx context.Context, userID uuid.UUID, prompt string, recipes []model.GeneratedRecipe, requested int) (*model.Session, error) {
	session := &model.Session{
		ID:              uuid.New(),
		UserID:          userID,
		Prompt:          prompt,
		Recipes:         model.RecipeList(recipes),
		SelectedIndex:   0,
		NSuggestions:    requested,
		SchemaVersion:   model.CurrentSchemaVersion,
		PromptEmbedding: GenerateEmbedding(prompt),
	}

	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, &types.PersistenceError{Message: "failed to save session", Err: err}
	}
	return session, nil
}

// GetSession returns a session owned by the given user
func (s *SessionService) GetSession(ctx context.Context, id, userID uuid.UUID) (*model.Session, error) {
	var session model.Session
	err := s.db.WithContext(ctx).
		First(&session, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessions returns the user's sessions, newest first
func (s *SessionService) ListSessions(ctx context.Context, userID uuid.UUID) ([]model.Session, error) {
	var sessions []model.Session
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// FindSimilar returns the user's sessions ordered by prompt similarity.
// Vector ordering needs Postgres; elsewhere it degrades to recency.
func (s *SessionService) FindSimilar(ctx context.Context, userID uuid.UUID, prompt string, limit int) ([]model.Session, error) {
	if s.db.Dialector.Name() != "postgres" {
		sessions, err := s.ListSessions(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(sessions) > limit {
			sessions = sessions[:limit]
		}
		return sessions, nil
	}

	var sessions []model.Session
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "prompt_embedding <-> ?", Vars: []interface{}{GenerateEmbedding(prompt)}},
		}).
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// UpdateSelectedIndex remembers the last-viewed recipe of a session
func (s *SessionService) UpdateSelectedIndex(ctx context.Context, id, userID uuid.UUID, index int) error {
	session, err := s.GetSession(ctx, id, userID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(session.Recipes) {
		return &types.ValidationError{Message: "selected_index out of range"}
	}

	return s.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("id = ?", id).
		Update("selected_index", index).Error
}

// CreateShare mints a share token for a session the user owns
func (s *SessionService) CreateShare(ctx context.Context, sessionID, userID uuid.UUID) (*model.Share, error) {
	if _, err := s.GetSession(ctx, sessionID, userID); err != nil {
		return nil, err
	}

	share := &model.Share{
		ID:        uuid.New(),
		SessionID: sessionID,
	}
	if err := s.db.WithContext(ctx).Create(share).Error; err != nil {
		return nil, &types.PersistenceError{Message: "failed to create share", Err: err}
	}
	return share, nil
}

// ResolveShare returns the session a share token points at, read-only.
// Resolved sessions are cached briefly since share links get passed around.
func (s *SessionService) ResolveShare(ctx context.Context, shareID uuid.UUID) (*model.Session, error) {
	cacheKey := fmt.Sprintf("session:shared:%s", shareID)

	if s.redis != nil {
		if data, err := s.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var session model.Session
			if err := json.Unmarshal(data, &session); err == nil {
				return &session, nil
			}
		}
	}

	var share model.Share
	if err := s.db.WithContext(ctx).First(&share, "id = ?", shareID).Error; err != nil {
		return nil, err
	}

	var session model.Session
	if err := s.db.WithContext(ctx).First(&session, "id = ?", share.SessionID).Error; err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(session); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, sharedSessionTTL).Err(); err != nil {
				s.logger.Warn("failed to cache shared session", zap.Error(err))
			}
		}
	}
	return &session, nil
}
