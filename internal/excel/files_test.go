package excel

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/DatKorso/price-updater/internal/errors"
)

// TestCheckNotLocked тестирует проверку блокировки файла
func TestCheckNotLocked(t *testing.T) {
	t.Run("свободный файл", func(t *testing.T) {
		path := newPublicationsWorkbook(t)
		if err := CheckNotLocked(path); err != nil {
			t.Errorf("файл не должен считаться заблокированным: %v", err)
		}
	})

	t.Run("несуществующий файл", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nuevo.xlsx")
		if err := CheckNotLocked(path); err != nil {
			t.Errorf("несуществующий файл считается свободным: %v", err)
		}
	})

	t.Run("файл открыт в Excel", func(t *testing.T) {
		path := newPublicationsWorkbook(t)
		owner := filepath.Join(filepath.Dir(path), "~$"+filepath.Base(path))
		if err := os.WriteFile(owner, []byte("owner"), 0644); err != nil {
			t.Fatal(err)
		}

		err := CheckNotLocked(path)
		if !apperrors.IsCode(err, apperrors.ErrCodeFileLocked) {
			t.Errorf("ожидалась ошибка %s, получено %v", apperrors.ErrCodeFileLocked, err)
		}
	})

	t.Run("файл открыт в LibreOffice", func(t *testing.T) {
		path := newPublicationsWorkbook(t)
		owner := filepath.Join(filepath.Dir(path), ".~lock."+filepath.Base(path)+"#")
		if err := os.WriteFile(owner, []byte("owner"), 0644); err != nil {
			t.Fatal(err)
		}

		if err := CheckNotLocked(path); !apperrors.IsCode(err, apperrors.ErrCodeFileLocked) {
			t.Errorf("ожидалась ошибка %s, получено %v", apperrors.ErrCodeFileLocked, err)
		}
	})
}

// TestCopyFile тестирует копирование книги
func TestCopyFile(t *testing.T) {
	src := newPublicationsWorkbook(t)
	dst := filepath.Join(t.TempDir(), "copia.xlsx")

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("Failed to copy: %v", err)
	}

	want, _ := os.ReadFile(src)
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(want) != string(got) {
		t.Error("содержимое копии отличается")
	}

	err = CopyFile(filepath.Join(t.TempDir(), "missing.xlsx"), dst)
	if !apperrors.IsCode(err, apperrors.ErrCodeFileReadError) {
		t.Errorf("ожидалась ошибка %s, получено %v", apperrors.ErrCodeFileReadError, err)
	}
}

// TestSamePath тестирует сравнение путей
func TestSamePath(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.xlsx")
	if err := os.WriteFile(a, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		left     string
		right    string
		expected bool
	}{
		{name: "одинаковые пути", left: a, right: a, expected: true},
		{name: "неочищенный путь", left: a, right: filepath.Join(dir, ".", "a.xlsx"), expected: true},
		{name: "разные файлы", left: a, right: filepath.Join(dir, "b.xlsx"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SamePath(tt.left, tt.right); got != tt.expected {
				t.Errorf("SamePath() = %v, ожидалось %v", got, tt.expected)
			}
		})
	}
}
