package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipe-finder/backend/config"
)

// ImageGenerationRequest represents a request to the image API
type ImageGenerationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	ResponseFormat string `json:"response_format"`
}

// ImageGenerationResponse represents the image API response
type ImageGenerationResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL string `json:"url,omitempty"`
	} `json:"data"`
}

// ImageService generates dish photos and rehosts them on S3. When S3 is not
// configured the provider URL is returned as-is.
type ImageService struct {
	client   *resty.Client
	model    string
	s3Config *config.S3Config
	logger   *zap.Logger
}

// NewImageService creates a new ImageService instance
func NewImageService(cfg *config.Config, s3Config *config.S3Config, logger *zap.Logger) (*ImageService, error) {
	if cfg.AIAPIKey == "" {
		return nil, fmt.Errorf("AI_API_KEY or AI_API_KEY_FILE must be set")
	}

	client := resty.New().
		SetBaseURL(cfg.AIImageURL).
		SetTimeout(cfg.AITimeout).
		SetHeader("Authorization", "Bearer "+cfg.AIAPIKey).
		SetHeader("Content-Type", "application/json")

	return &ImageService{
		client:   client,
		model:    cfg.AIImageModel,
		s3Config: s3Config,
		logger:   logger,
	}, nil
}

// GenerateDishImage generates one image for the given prompt and returns its
// hosted URL plus the source it lives on.
func (s *ImageService) GenerateDishImage(ctx context.Context, prompt string) (string, string, error) {
	reqBody := ImageGenerationRequest{
		Model:          s.model,
		Prompt:         prompt,
		N:              1,
		Size:           "1024x1024",
		Quality:        "standard",
		ResponseFormat: "url",
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(reqBody).
		Post("")
	if err != nil {
		return "", "", fmt.Errorf("failed to send image request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		s.logger.Warn("image API request failed",
			zap.Int("status", resp.StatusCode()),
		)
		return "", "", fmt.Errorf("image API returned status %d", resp.StatusCode())
	}

	var result ImageGenerationResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", "", fmt.Errorf("failed to decode image response: %w", err)
	}

	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return "", "", fmt.Errorf("no image payload in API response")
	}

	providerURL := result.Data[0].URL
	if s.s3Config == nil {
		return providerURL, "provider", nil
	}

	s3URL, err := s.rehostOnS3(ctx, providerURL)
	if err != nil {
		s.logger.Warn("failed to upload image to S3, keeping provider URL", zap.Error(err))
		return providerURL, "provider", nil
	}
	return s3URL, "s3", nil
}

// rehostOnS3 downloads the provider image and uploads it to the public bucket
func (s *ImageService) rehostOnS3(ctx context.Context, imageURL string) (string, error) {
	resp, err := s.client.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("failed to download image, status: %d", resp.StatusCode())
	}

	fileName := fmt.Sprintf("dish-images/%s.png", uuid.New().String())
	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(resp.Body()),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName), nil
}

// buildDishImagePrompt synthesizes an image prompt when the model did not
// supply one.
func buildDishImagePrompt(title, summary string) string {
	desc := strings.ToLower(strings.TrimSpace(title))
	if s := strings.TrimSpace(summary); s != "" {
		desc += ", " + strings.ToLower(s)
	}
	prompt := "A professional food photography shot of " + desc +
		", shot with natural lighting, shallow depth of field, restaurant quality presentation, appetizing colors"
	if len(prompt) > 900 {
		prompt = prompt[:900]
	}
	return prompt
}
