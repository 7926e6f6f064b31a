package assistant

import (
	"context"
	"strings"

	"google.golang.org/genai"

	apperrors "github.com/DatKorso/price-updater/internal/errors"
)

const (
	// DefaultModel модель Gemini по умолчанию
	DefaultModel = "gemini-2.5-flash"
	// APIKeyEnv переменная окружения с ключом API
	APIKeyEnv = "GEMINI_API_KEY"
)

// GeminiGenerator Generator поверх Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator создает клиента Gemini с явным ключом API
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, apperrors.NewAssistantError("не задан ключ "+APIKeyEnv, nil)
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperrors.NewAssistantError("не удалось создать клиента Gemini", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// Model возвращает имя используемой модели
func (g *GeminiGenerator) Model() string {
	return g.model
}

// Generate выполняет один запрос generateContent
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.2)),
		ResponseMIMEType: "application/json",
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}
