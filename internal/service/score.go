package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipe-finder/backend/internal/model"
)

const scoringSystemPrompt = `You are a culinary expert analyzing recipe popularity. For each recipe, estimate a popularity score from 0-100 based on:
- Global familiarity and cultural appeal (40 points)
- Simplicity and accessibility of ingredients (30 points)
- Dietary appeal (vegetarian/vegan/gluten-free gets bonus) (20 points)
- Ease of preparation (10 points)

Return ONLY a JSON array of numbers: [score1, score2, ...]`

// scoreRecipes asks the model to rank the recipes and sorts them by
// descending score. Popularity is an enrichment: any failure degrades to the
// deterministic fallback ranking instead of aborting generation. Fresh ids
// are assigned here regardless of the scoring outcome.
func (s *GenerationService) scoreRecipes(ctx context.Context, recipes []model.GeneratedRecipe) []model.GeneratedRecipe {
	scores := s.requestScores(ctx, recipes)

	for i := range recipes {
		recipes[i].ID = uuid.New().String()
		recipes[i].PopularityScore = scores[i]
	}

	sort.SliceStable(recipes, func(a, b int) bool {
		return recipes[a].PopularityScore > recipes[b].PopularityScore
	})
	return recipes
}

func (s *GenerationService) requestScores(ctx context.Context, recipes []model.GeneratedRecipe) []int {
	var lines []string
	for i, r := range recipes {
		lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, r.Title, r.Summary))
	}
	user := "Rate these recipes:\n" + strings.Join(lines, "\n")

	content, err := s.ai.ChatCompletion(ctx, scoringSystemPrompt, user, 0.3)
	if err != nil {
		s.logger.Warn("scoring call failed, using default scores", zap.Error(err))
		return fallbackScores(len(recipes))
	}

	var raw []int
	if err := json.Unmarshal([]byte(stripCodeFences(content)), &raw); err != nil {
		s.logger.Warn("failed to parse scores, using defaults", zap.Error(err))
		return fallbackScores(len(recipes))
	}

	scores := make([]int, len(recipes))
	for i := range scores {
		switch {
		case i >= len(raw) || raw[i] <= 0:
			scores[i] = 50
		case raw[i] > 100:
			scores[i] = 100
		default:
			scores[i] = raw[i]
		}
	}
	return scores
}

// fallbackScores is the deterministic descending ranking used whenever the
// scoring call cannot be trusted: 80, 70, 60, ... floored at 0.
func fallbackScores(n int) []int {
	scores := make([]int, n)
	for i := range scores {
		score := 80 - 10*i
		if score < 0 {
			score = 0
		}
		scores[i] = score
	}
	return scores
}
