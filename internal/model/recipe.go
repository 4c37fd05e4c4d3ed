package model

import (
	"database/sql/driver"
	"encoding/json"
)

// Visualization status values for a recipe's dish image.
const (
	VisualizationOK          = "ok"
	VisualizationPending     = "pending"
	VisualizationUnavailable = "unavailable"
)

// RecipeIngredient is one ingredient selected for a recipe, with its role in
// the dish (primary, supporting, aromatic, acid, fat, seasoning).
type RecipeIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Role     string `json:"role"`
}

// RecipeStep is one cooking instruction. N is 1-based and always matches the
// step's position in the list.
type RecipeStep struct {
	N           int    `json:"n"`
	Instruction string `json:"instruction"`
	Rationale   string `json:"rationale,omitempty"`
	Time        string `json:"time"`
}

// RecipeTiming holds model-supplied timing estimates in minutes. TotalMinutes
// is what the model claims, not a computed sum.
type RecipeTiming struct {
	PrepMinutes  int `json:"prep_minutes"`
	CookMinutes  int `json:"cook_minutes"`
	TotalMinutes int `json:"total_minutes"`
}

// NutritionEstimate holds free-form approximate values such as "~320".
type NutritionEstimate struct {
	KcalPerServing string `json:"kcal_per_serving"`
	ProteinG       string `json:"protein_g"`
	CarbsG         string `json:"carbs_g"`
	FatG           string `json:"fat_g"`
}

// DishVisualization describes the recipe's photo. URL is only set when
// Status is "ok".
type DishVisualization struct {
	ImagePrompt string `json:"image_prompt"`
	Alt         string `json:"alt"`
	Source      string `json:"source,omitempty"`
	Status      string `json:"status"`
	URL         string `json:"url,omitempty"`
}

// GeneratedRecipe is the canonical recipe shape produced by the generation
// pipeline (schema version 3). The ID and PopularityScore are assigned
// locally after parsing; the model never supplies them.
type GeneratedRecipe struct {
	ID                         string             `json:"id"`
	Title                      string             `json:"title"`
	Summary                    string             `json:"summary"`
	SelectedIngredients        []RecipeIngredient `json:"selected_ingredients"`
	LeftoverIngredients        []string           `json:"leftover_ingredients"`
	ExtrasToBuy                []string           `json:"extras_to_buy"`
	Equipment                  []string           `json:"equipment"`
	Steps                      []RecipeStep       `json:"steps"`
	Timing                     RecipeTiming       `json:"timing"`
	Servings                   int                `json:"servings"`
	NutritionEstimate          NutritionEstimate  `json:"nutrition_estimate"`
	SubstitutionsAndVariations []string           `json:"substitutions_and_variations"`
	DishVisualization          DishVisualization  `json:"dish_visualization"`
	Notes                      []string           `json:"notes"`
	PopularityScore            int                `json:"popularity_score"`
}

// RecipeList is a custom type for storing the full recipe set in a JSONB column
type RecipeList []GeneratedRecipe

// Value implements the driver.Valuer interface
func (l RecipeList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *RecipeList) Scan(value interface{}) error {
	if value == nil {
		*l = RecipeList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}
