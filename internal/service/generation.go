package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

// GenerationService runs the full suggestion pipeline: prompt build,
// generation call, normalization, image enrichment, scoring, sort, persist.
// Each request owns its recipe slice throughout; the stages are strictly
// sequential.
type GenerationService struct {
	ai       ChatCompleter
	images   DishImager
	sessions *SessionService
	logger   *zap.Logger
}

// NewGenerationService creates a new GenerationService instance. images may
// be nil when image generation is not configured; recipes are then marked
// unavailable rather than failing.
func NewGenerationService(ai ChatCompleter, images DishImager, sessions *SessionService, logger *zap.Logger) *GenerationService {
	return &GenerationService{
		ai:       ai,
		images:   images,
		sessions: sessions,
		logger:   logger,
	}
}

// GenerateSession handles one generation request end to end and returns the
// persisted session. Validation failures surface before any outbound call is
// made.
func (s *GenerationService) GenerateSession(ctx context.Context, userID uuid.UUID, req types.GenerateRequest) (*model.Session, error) {
	prompt, err := s.resolvePrompt(req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("generating recipes",
		zap.String("user_id", userID.String()),
		zap.Int("n_suggestions", req.NSuggestions),
	)

	raw, err := s.ai.ChatCompletion(ctx, generationSystemPrompt(req.NSuggestions), prompt, 0.8)
	if err != nil {
		return nil, err
	}

	recipes, err := ParseRecipes(raw, req.NSuggestions)
	if err != nil {
		return nil, err
	}

	s.enrichImages(ctx, recipes)
	recipes = s.scoreRecipes(ctx, recipes)

	session, err := s.sessions.CreateSession(ctx, userID, prompt, recipes, req.NSuggestions)
	if err != nil {
		return nil, err
	}

	s.logger.Info("generated and saved session",
		zap.String("session_id", session.ID.String()),
		zap.Int("recipes", len(recipes)),
	)
	return session, nil
}

// resolvePrompt accepts either a ready-made prompt or free-text ingredients
// plus preferences, which it folds into the canonical prompt format.
func (s *GenerationService) resolvePrompt(req types.GenerateRequest) (string, error) {
	if p := strings.TrimSpace(req.Prompt); p != "" {
		if err := ValidateCount(req.NSuggestions); err != nil {
			return "", err
		}
		return p, nil
	}
	return BuildPrompt(req.Ingredients, req.Preferences, req.NSuggestions)
}

// enrichImages issues one image call per recipe, sequentially. A failure
// degrades that recipe's visualization to unavailable and never fails the
// request.
func (s *GenerationService) enrichImages(ctx context.Context, recipes []model.GeneratedRecipe) {
	for i := range recipes {
		viz := &recipes[i].DishVisualization

		if s.images == nil {
			viz.Status = model.VisualizationUnavailable
			viz.URL = ""
			continue
		}

		prompt := viz.ImagePrompt
		if strings.TrimSpace(prompt) == "" {
			prompt = buildDishImagePrompt(recipes[i].Title, recipes[i].Summary)
			viz.ImagePrompt = prompt
		}

		url, source, err := s.images.GenerateDishImage(ctx, prompt)
		if err != nil {
			s.logger.Warn("image enrichment failed",
				zap.String("recipe", recipes[i].Title),
				zap.Error(err),
			)
			viz.Status = model.VisualizationUnavailable
			viz.URL = ""
			continue
		}

		viz.Status = model.VisualizationOK
		viz.URL = url
		viz.Source = source
	}
}
