package assistant

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel используется, если модель не задана.
const DefaultModel = "gemini-2.5-flash"

// GeminiClient реализует Generator поверх Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient создаёт клиент Gemini API с указанным ключом.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if modelName == "" {
		modelName = DefaultModel
	}

	return &GeminiClient{client: client, model: modelName}, nil
}

// Generate выполняет один запрос без истории диалога.
func (c *GeminiClient) Generate(ctx context.Context, systemInstruction, message string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(message), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
