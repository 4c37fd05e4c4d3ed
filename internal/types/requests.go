package types

import "github.com/pageza/recipe-finder/backend/internal/model"

// GenerateRequest is the body of a generation request. Either a ready-made
// prompt or a free-text ingredient list must be present; when only
// ingredients are given the server builds the prompt itself.
type GenerateRequest struct {
	Prompt       string `json:"prompt"`
	Ingredients  string `json:"ingredients"`
	Preferences  string `json:"preferences"`
	NSuggestions int    `json:"n_suggestions"`
}

// GenerateResponse is returned on successful generation.
type GenerateResponse struct {
	SessionID string                  `json:"sessionId"`
	Recipes   []model.GeneratedRecipe `json:"recipes"`
}

// RegisterRequest is the body for new-user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateSelectionRequest updates which recipe a session's detail view shows
type UpdateSelectionRequest struct {
	SelectedIndex *int `json:"selected_index" binding:"required"`
}
