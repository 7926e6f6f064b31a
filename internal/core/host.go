package core

import (
	"context"
	"errors"
)

// ErrCancelled возвращается хостом, когда оператор отменил действие
var ErrCancelled = errors.New("действие отменено оператором")

// Host точки взаимодействия движка с оператором.
// Оба вызова блокируют рабочую горутину до ответа оператора.
type Host interface {
	// ConfirmColumnMapping запрашивает столбцы листа источника.
	// ErrCancelled означает пропуск листа.
	ConfirmColumnMapping(ctx context.Context, req MappingRequest) (SheetColumnConfig, error)
	// ConfirmPreview показывает строки отчета и возвращает решение оператора
	ConfirmPreview(ctx context.Context, req PreviewRequest) (bool, error)
}

// MappingRequest данные для выбора столбцов листа источника
type MappingRequest struct {
	SheetName string
	Preview   *SheetPreview
	Suggested SheetColumnConfig
}

// PreviewRequest строки отчета для подтверждения перед записью
type PreviewRequest struct {
	Title     string
	Columns   []string
	Rows      [][]string
	TotalRows int
}
