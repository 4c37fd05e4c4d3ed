package service

import "context"

// ChatCompleter issues one chat-style completion against the AI gateway and
// returns the assistant's raw text content.
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, system, user string, temperature float64) (string, error)
}

// DishImager produces a hosted image URL for a dish description. The source
// identifies where the returned URL lives ("s3" or "provider").
type DishImager interface {
	GenerateDishImage(ctx context.Context, prompt string) (url, source string, err error)
}
