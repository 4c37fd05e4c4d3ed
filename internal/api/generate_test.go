package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-finder/backend/internal/types"
)

func TestGenerateEndpoint(t *testing.T) {
	app := newTestApp(t)
	app.chat.responses = []string{
		generationPayload("Pad Thai", "Fried Rice", "Larb"),
		`[60, 90, 75]`,
	}
	token := app.registerUser(t, "cook@example.com")

	w := app.request(t, http.MethodPost, "/api/v1/recipes/generate", map[string]interface{}{
		"ingredients":   "rice, egg, lime",
		"preferences":   "thai",
		"n_suggestions": 3,
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	require.Len(t, resp.Recipes, 3)
	assert.Equal(t, "Fried Rice", resp.Recipes[0].Title)
	assert.Equal(t, 90, resp.Recipes[0].PopularityScore)
}

func TestGenerateRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	w := app.request(t, http.MethodPost, "/api/v1/recipes/generate", map[string]interface{}{
		"ingredients":   "rice",
		"n_suggestions": 3,
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())

	w = app.request(t, http.MethodPost, "/api/v1/recipes/generate", nil, "bogus-token")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

func TestGenerateValidation(t *testing.T) {
	app := newTestApp(t)
	token := app.registerUser(t, "cook@example.com")

	// empty prompt
	w := app.request(t, http.MethodPost, "/api/v1/recipes/generate", map[string]interface{}{
		"ingredients":   "",
		"n_suggestions": 3,
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Prompt is required")

	// disallowed count
	w = app.request(t, http.MethodPost, "/api/v1/recipes/generate", map[string]interface{}{
		"ingredients":   "rice",
		"n_suggestions": 4,
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "n_suggestions must be 3 or 5")

	// no gateway call was made for either request
	assert.Equal(t, 0, app.chat.calls)
}

func TestGenerateQuotaPassthrough(t *testing.T) {
	app := newTestApp(t)
	app.chat.errs = []error{&types.UpstreamQuotaError{
		StatusCode: http.StatusTooManyRequests,
		Message:    "Rate limit exceeded. Please try again later.",
	}}
	token := app.registerUser(t, "cook@example.com")

	w := app.request(t, http.MethodPost, "/api/v1/recipes/generate", map[string]interface{}{
		"ingredients":   "rice",
		"n_suggestions": 3,
	}, token)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestGenerateFormatError(t *testing.T) {
	app := newTestApp(t)
	app.chat.responses = []string{"I'm sorry, I can't do that."}
	token := app.registerUser(t, "cook@example.com")

	w := app.request(t, http.MethodPost, "/api/v1/recipes/generate", map[string]interface{}{
		"ingredients":   "rice",
		"n_suggestions": 3,
	}, token)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "invalid recipe format")
}
