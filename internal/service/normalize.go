package service

import (
	"encoding/json"
	"strings"

	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

type recipeEnvelope struct {
	Recipes []model.GeneratedRecipe `json:"recipes"`
}

// ParseRecipes turns raw model output into the canonical recipe list. The
// contract is parse-with-fallback: a strict parse first, then one
// normalization pass (fence stripping, brace slicing), then a typed format
// error. More recipes than requested are truncated; fewer are accepted down
// to one, since the model may legitimately have limited options.
func ParseRecipes(raw string, requested int) ([]model.GeneratedRecipe, error) {
	var env recipeEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		cleaned := stripCodeFences(raw)
		cleaned = sliceToOuterBraces(cleaned)
		if err := json.Unmarshal([]byte(cleaned), &env); err != nil {
			return nil, &types.GenerationFormatError{Message: "invalid recipe format received from AI"}
		}
	}

	if len(env.Recipes) == 0 {
		return nil, &types.GenerationFormatError{Message: "no recipes were generated"}
	}

	recipes := env.Recipes
	if len(recipes) > requested {
		recipes = recipes[:requested]
	}

	for i := range recipes {
		normalizeRecipe(&recipes[i])
	}
	return recipes, nil
}

// normalizeRecipe defaults and widens a parsed entry rather than rejecting
// it. Optional fields become empty slices so the presentation layer can
// render them as empty sections, and step numbers are never trusted from the
// model.
func normalizeRecipe(r *model.GeneratedRecipe) {
	if r.SelectedIngredients == nil {
		r.SelectedIngredients = []model.RecipeIngredient{}
	}
	if r.LeftoverIngredients == nil {
		r.LeftoverIngredients = []string{}
	}
	if r.ExtrasToBuy == nil {
		r.ExtrasToBuy = []string{}
	}
	if r.Equipment == nil {
		r.Equipment = []string{}
	}
	if r.Steps == nil {
		r.Steps = []model.RecipeStep{}
	}
	if r.SubstitutionsAndVariations == nil {
		r.SubstitutionsAndVariations = []string{}
	}
	if r.Notes == nil {
		r.Notes = []string{}
	}

	for i := range r.Steps {
		r.Steps[i].N = i + 1
	}

	if r.Servings <= 0 {
		r.Servings = 2
	}

	if r.DishVisualization.Status == "" {
		r.DishVisualization.Status = model.VisualizationPending
	}
	if r.DishVisualization.Alt == "" {
		r.DishVisualization.Alt = r.Title
	}
}

// stripCodeFences removes leading/trailing markdown fences the model may
// wrap its JSON in, including a language tag like ```json.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if idx := strings.Index(s, "\n"); idx >= 0 && !strings.HasPrefix(s, "{") {
			// drop the language tag line
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// sliceToOuterBraces cuts any prose surrounding the JSON object
func sliceToOuterBraces(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
