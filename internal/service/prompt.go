package service

import (
	"fmt"
	"strings"

	"github.com/pageza/recipe-finder/backend/internal/types"
)

// Requested counts the form offers. The minimum-1 tolerance applies to what
// the model returns, not to what callers may ask for.
var allowedCounts = map[int]bool{3: true, 5: true}

// BuildPrompt turns free-text ingredients and optional preferences into the
// instruction string sent to the generation model. Pure; no side effects.
func BuildPrompt(ingredients, preferences string, count int) (string, error) {
	ingredients = strings.TrimSpace(ingredients)
	if ingredients == "" {
		return "", &types.ValidationError{Message: "Prompt is required"}
	}
	if !allowedCounts[count] {
		return "", &types.ValidationError{Message: "n_suggestions must be 3 or 5"}
	}

	prompt := "Ingredients: " + ingredients
	if p := strings.TrimSpace(preferences); p != "" {
		prompt += "\nPreferences: " + p
	}
	return prompt, nil
}

// ValidateCount checks a ready-made prompt request against the same rules
func ValidateCount(count int) error {
	if !allowedCounts[count] {
		return &types.ValidationError{Message: "n_suggestions must be 3 or 5"}
	}
	return nil
}

// generationSystemPrompt is the schema contract sent with every generation
// call. The model is told to return pure JSON; the normalizer still tolerates
// fenced output.
func generationSystemPrompt(count int) string {
	return fmt.Sprintf(`You are a creative recipe generator. Generate exactly %d distinct, delicious recipes based on the user's ingredients and preferences. For each recipe provide:
- title: a catchy, descriptive name
- summary: a one-line description (max 90 characters)
- selected_ingredients: array of {name, quantity, unit, role} where role is one of primary, supporting, aromatic, acid, fat, seasoning
- leftover_ingredients: user-provided items the recipe does not use
- extras_to_buy: items needed beyond a small staple allowance
- equipment: array of strings
- steps: array of {n, instruction, rationale, time} with n starting at 1
- timing: {prep_minutes, cook_minutes, total_minutes}
- servings: positive integer
- nutrition_estimate: {kcal_per_serving, protein_g, carbs_g, fat_g} as approximate strings like "~320"
- substitutions_and_variations: array of strings
- dish_visualization: {image_prompt, alt}
- notes: optional array of tips

Return ONLY valid JSON with this exact structure:
{"recipes": [{...}, {...}]}`, count)
}
