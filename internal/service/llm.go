package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a chat-completion request to the AI gateway
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
}

// ChatResponse is the portion of the gateway response we consume
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// LLMService talks to the OpenAI-compatible chat-completions gateway. All
// three outbound calls of the pipeline (generation, scoring, images) share
// its credential; its absence is a startup error, checked by config.
type LLMService struct {
	client *resty.Client
	model  string
	logger *zap.Logger
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg *config.Config, logger *zap.Logger) (*LLMService, error) {
	if cfg.AIAPIKey == "" {
		return nil, fmt.Errorf("AI_API_KEY or AI_API_KEY_FILE must be set")
	}

	client := resty.New().
		SetBaseURL(cfg.AIGatewayURL).
		SetTimeout(cfg.AITimeout).
		SetHeader("Authorization", "Bearer "+cfg.AIAPIKey).
		SetHeader("Content-Type", "application/json")

	return &LLMService{
		client: client,
		model:  cfg.AIModel,
		logger: logger,
	}, nil
}

// ChatCompletion sends one system+user message pair and returns the
// assistant's content. Provider 429/402 responses surface as
// UpstreamQuotaError so handlers can pass the status through.
func (s *LLMService) ChatCompletion(ctx context.Context, system, user string, temperature float64) (string, error) {
	req := ChatRequest{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send request to AI gateway: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return "", &types.UpstreamQuotaError{StatusCode: resp.StatusCode(), Message: "Rate limit exceeded. Please try again later."}
	case http.StatusPaymentRequired:
		return "", &types.UpstreamQuotaError{StatusCode: resp.StatusCode(), Message: "AI credits exhausted. Please add more credits."}
	default:
		s.logger.Error("AI gateway error",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return "", fmt.Errorf("AI gateway returned status %d", resp.StatusCode())
	}

	var result ChatResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to decode gateway response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in gateway response")
	}

	return result.Choices[0].Message.Content, nil
}
