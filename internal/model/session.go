package model

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
)

// CurrentSchemaVersion tags stored sessions with the recipe shape they carry.
// Older rows with earlier shapes are a migration concern, not something this
// code deserializes.
const CurrentSchemaVersion = 3

// Session is one generation request's finalized result: the originating
// prompt and the sorted recipe set. Immutable after insert except for
// SelectedIndex.
type Session struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Prompt          string          `gorm:"type:text;not null" json:"prompt"`
	Recipes         RecipeList      `gorm:"column:suggestions_json;type:jsonb;not null;default:'[]'" json:"suggestions_json"`
	SelectedIndex   int             `gorm:"not null;default:0" json:"selected_index"`
	NSuggestions    int             `gorm:"not null" json:"n_suggestions"`
	SchemaVersion   int             `gorm:"not null;default:3" json:"schema_version"`
	PromptEmbedding pgvector.Vector `gorm:"type:vector(3)" json:"-"`
}

// Share grants anonymous read-only access to one session's recipes. Row
// existence alone grants access; there is no expiry or revocation.
type Share struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
}
