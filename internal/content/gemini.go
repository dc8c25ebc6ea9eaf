package content

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiGenerator runs structured-output requests against the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
}

// NewGeminiGenerator creates a generator authenticated with an API key.
func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("new genai client: %w", err)
	}

	return &GeminiGenerator{client: client}, nil
}

// Generate implements Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	})
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}
