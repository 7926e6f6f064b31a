package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppErrorFormatting(t *testing.T) {
	t.Run("без вложенной ошибки", func(t *testing.T) {
		err := NewFileNotFoundError("a.xlsx")
		if !strings.HasPrefix(err.Error(), "[E001]") {
			t.Errorf("ожидался префикс кода, получено %q", err.Error())
		}
	})

	t.Run("с вложенной ошибкой", func(t *testing.T) {
		inner := fmt.Errorf("disk full")
		err := NewSaveError("out.xlsx", inner)
		if !strings.Contains(err.Error(), "disk full") {
			t.Errorf("ожидалось описание вложенной ошибки, получено %q", err.Error())
		}
		if !errors.Is(err, inner) {
			t.Error("Unwrap должен возвращать вложенную ошибку")
		}
	})
}

func TestCode(t *testing.T) {
	wrapped := fmt.Errorf("контекст: %w", NewFileLockedError("dest.xlsx", nil))

	if got := Code(wrapped); got != ErrCodeFileLocked {
		t.Errorf("ожидался код %s, получено %s", ErrCodeFileLocked, got)
	}
	if !IsCode(wrapped, ErrCodeFileLocked) {
		t.Error("IsCode должен находить код в цепочке")
	}
	if Code(fmt.Errorf("plain")) != "" {
		t.Error("для обычной ошибки код должен быть пустым")
	}
}

func TestUserMessage(t *testing.T) {
	codes := []string{
		ErrCodeFileLocked,
		ErrCodeDestinationColumns,
		ErrCodeColumnNotFound,
		ErrCodeReportError,
	}
	for _, code := range codes {
		if msg := UserMessage(code); msg == "Произошла неизвестная ошибка" {
			t.Errorf("для кода %s нет сообщения", code)
		}
	}

	if UserMessage("E999") != "Произошла неизвестная ошибка" {
		t.Error("для неизвестного кода ожидалось сообщение по умолчанию")
	}
}
