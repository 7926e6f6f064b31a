package assistant

import (
	"encoding/json"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	apperrors "github.com/DatKorso/price-updater/internal/errors"
)

// stripFences убирает markdown-обрамление вокруг JSON
func stripFences(raw string) string {
	text := strings.ReplaceAll(raw, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// decodeResponse разбирает ответ модели в v, при необходимости исправляя JSON
func decodeResponse(raw string, v any) error {
	text := stripFences(raw)
	if text == "" {
		return apperrors.NewAssistantError("пустой ответ модели", nil)
	}

	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	repaired, err := jsonrepair.RepairJSON(text)
	if err != nil {
		return apperrors.NewAssistantError("не удалось исправить JSON ответа", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return apperrors.NewAssistantError("не удалось разобрать ответ модели", err)
	}
	return nil
}
