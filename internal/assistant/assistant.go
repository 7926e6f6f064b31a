// Package assistant помогает готовить публикации с помощью языковой модели.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/DatKorso/price-updater/internal/errors"
)

const (
	// DefaultCategory категория, если клиент ее не передал
	DefaultCategory = "General"
	// MaxTitleLength максимальная длина заголовка публикации
	MaxTitleLength = 60
)

// ListingRequest текущие данные публикации
type ListingRequest struct {
	Title       string `json:"titulo_actual" binding:"required"`
	Description string `json:"descripcion_actual"`
	Category    string `json:"categoria"`
}

// Listing предложенная моделью публикация
type Listing struct {
	Title       string `json:"nuevo_titulo"`
	Description string `json:"nueva_descripcion"`
	Suggestions string `json:"sugerencias_adicionales"`
}

// Service операции помощника
type Service interface {
	OptimizeListing(ctx context.Context, req ListingRequest) (*Listing, error)
	EditRow(ctx context.Context, row map[string]any, command string) (map[string]any, error)
}

// Generator отправляет запрос модели и возвращает текст ответа
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ListingAssistant реализация Service поверх Generator
type ListingAssistant struct {
	generator Generator
	logger    *slog.Logger
}

// NewListingAssistant создает помощника
func NewListingAssistant(generator Generator, logger *slog.Logger) *ListingAssistant {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListingAssistant{generator: generator, logger: logger}
}

// OptimizeListing предлагает новый заголовок и описание публикации
func (a *ListingAssistant) OptimizeListing(ctx context.Context, req ListingRequest) (*Listing, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewAssistantError("заголовок публикации не указан", nil)
	}
	if strings.TrimSpace(req.Category) == "" {
		req.Category = DefaultCategory
	}

	raw, err := a.generate(ctx, optimizePrompt(req))
	if err != nil {
		return nil, err
	}

	var listing Listing
	if err := decodeResponse(raw, &listing); err != nil {
		return nil, err
	}
	if strings.TrimSpace(listing.Title) == "" {
		return nil, apperrors.NewAssistantError("модель не вернула заголовок", nil)
	}
	if n := len([]rune(listing.Title)); n > MaxTitleLength {
		a.logger.Warn("предложенный заголовок длиннее допустимого",
			"length", n,
			"max", MaxTitleLength,
		)
	}

	a.logger.Info("публикация оптимизирована", "title", listing.Title)
	return &listing, nil
}

// EditRow применяет команду пользователя к строке и возвращает только измененные поля
func (a *ListingAssistant) EditRow(ctx context.Context, row map[string]any, command string) (map[string]any, error) {
	if strings.TrimSpace(command) == "" {
		return nil, apperrors.NewAssistantError("команда не указана", nil)
	}

	rowJSON, err := json.Marshal(row)
	if err != nil {
		return nil, apperrors.NewAssistantError("не удалось сериализовать строку", err)
	}

	raw, err := a.generate(ctx, editPrompt(string(rowJSON), command))
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if err := decodeResponse(raw, &changes); err != nil {
		return nil, err
	}

	a.logger.Info("строка отредактирована", "changed_fields", len(changes))
	return changes, nil
}

func (a *ListingAssistant) generate(ctx context.Context, prompt string) (string, error) {
	raw, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		a.logger.Error("ошибка запроса к модели", "error", err)
		return "", apperrors.NewAssistantError("запрос к модели не выполнен", err)
	}
	a.logger.Debug("ответ модели получен", "length", len(raw))
	return raw, nil
}

func optimizePrompt(req ListingRequest) string {
	return fmt.Sprintf(`Eres un experto en SEO y posicionamiento en Mercado Libre.
Tu objetivo es optimizar publicaciones para aumentar la conversión.

Reglas de Mercado Libre:
- Título: máximo %d caracteres. Producto + Marca + Modelo + Especificación principal. Nada de "Envío gratis" u "Oferta".
- Descripción: texto plano, sin HTML, clara y enfocada en beneficios y características técnicas.

Datos actuales:
- Categoría sugerida: %s
- Título: %s
- Descripción: %s

Devuelve ÚNICAMENTE un objeto JSON con la estructura:
{"nuevo_titulo": "...", "nueva_descripcion": "...", "sugerencias_adicionales": "..."}`,
		MaxTitleLength, req.Category, req.Title, req.Description)
}

func editPrompt(rowJSON, command string) string {
	return fmt.Sprintf(`Eres un experto en e-commerce para Mercado Libre.
Datos actuales del producto extraídos de Excel:
%s

Instrucción del usuario: %q

Aplica la instrucción a los datos. Si se piden características, usa el SKU u otras referencias para completar los campos vacíos.
Devuelve ÚNICAMENTE un objeto JSON con las columnas modificadas o completadas, sin las columnas que no cambiaste.
Ejemplo: {"Color": "Negro", "Marca": "Sony"}`, rowJSON, command)
}
