package excel

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	apperrors "github.com/DatKorso/price-updater/internal/errors"
)

// Коды ошибок Windows при открытии файла, занятого другим процессом
const (
	errSharingViolation syscall.Errno = 32
	errLockViolation    syscall.Errno = 33
)

// CheckNotLocked проверяет, что файл можно открыть на запись.
// Несуществующий файл считается свободным.
func CheckNotLocked(path string) error {
	if ownerFile, ok := officeOwnerFile(path); ok {
		return apperrors.NewFileLockedError(path, fmt.Errorf("найден файл блокировки %s", filepath.Base(ownerFile)))
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if isLockError(err) {
			return apperrors.NewFileLockedError(path, err)
		}
		return apperrors.NewPermissionDeniedError(path, err)
	}
	return f.Close()
}

// isLockError определяет, что файл занят другим процессом
func isLockError(err error) bool {
	if errors.Is(err, fs.ErrPermission) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == errSharingViolation || errno == errLockViolation
	}
	return false
}

// officeOwnerFile ищет файлы-владельцы, которые создают Excel и LibreOffice
func officeOwnerFile(path string) (string, bool) {
	dir, name := filepath.Split(path)
	candidates := []string{
		filepath.Join(dir, "~$"+name),
		filepath.Join(dir, ".~lock."+name+"#"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// CopyFile копирует файл src в dst, перезаписывая dst
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return apperrors.NewFileReadError(src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		if isLockError(err) {
			return apperrors.NewFileLockedError(dst, err)
		}
		return apperrors.NewSaveError(dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return apperrors.NewSaveError(dst, err)
	}

	if err := out.Close(); err != nil {
		return apperrors.NewSaveError(dst, err)
	}
	return nil
}

// SamePath проверяет, указывают ли пути на один файл
func SamePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	if absA == absB {
		return true
	}

	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)
	if errA != nil || errB != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}
