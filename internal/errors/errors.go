package errors

import (
	"errors"
	"fmt"
)

// Коды ошибок
const (
	ErrCodeFileNotFound       = "E001"
	ErrCodeFileReadError      = "E002"
	ErrCodeSheetNotFound      = "E003"
	ErrCodeHeaderNotFound     = "E004"
	ErrCodeEmptyFile          = "E005"
	ErrCodeInvalidFormat      = "E006"
	ErrCodePermissionDenied   = "E007"
	ErrCodeFileCorrupted      = "E008"
	ErrCodeConfigError        = "E009"
	ErrCodeReconcileError     = "E010"
	ErrCodeSaveError          = "E011"
	ErrCodeFileLocked         = "E012"
	ErrCodeColumnNotFound     = "E013"
	ErrCodeDestinationColumns = "E014"
	ErrCodeReportError        = "E015"
	ErrCodeAssistantError     = "E016"
)

// AppError представляет ошибку приложения с кодом и контекстом
type AppError struct {
	Code    string
	Message string
	Context map[string]interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Конструкторы ошибок

// NewFileNotFoundError создает ошибку "файл не найден"
func NewFileNotFoundError(path string) *AppError {
	return &AppError{
		Code:    ErrCodeFileNotFound,
		Message: "Файл не найден",
		Context: map[string]interface{}{"path": path},
	}
}

// NewSheetNotFoundError создает ошибку "лист не найден"
func NewSheetNotFoundError(sheet, file string) *AppError {
	return &AppError{
		Code:    ErrCodeSheetNotFound,
		Message: fmt.Sprintf("Лист '%s' не найден в файле", sheet),
		Context: map[string]interface{}{"sheet": sheet, "file": file},
	}
}

// NewHeaderNotFoundError создает ошибку "строка заголовков не найдена"
func NewHeaderNotFoundError(sheet string, scanned int) *AppError {
	return &AppError{
		Code:    ErrCodeHeaderNotFound,
		Message: fmt.Sprintf("На листе '%s' не найдена строка заголовков в первых %d строках", sheet, scanned),
		Context: map[string]interface{}{"sheet": sheet, "scanned_rows": scanned},
	}
}

// NewFileReadError создает ошибку чтения файла
func NewFileReadError(path string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeFileReadError,
		Message: "Ошибка при чтении файла",
		Context: map[string]interface{}{"path": path},
		Err:     err,
	}
}

// NewEmptyFileError создает ошибку "файл пустой"
func NewEmptyFileError(path string) *AppError {
	return &AppError{
		Code:    ErrCodeEmptyFile,
		Message: "Файл пустой или не содержит данных",
		Context: map[string]interface{}{"path": path},
	}
}

// NewInvalidFormatError создает ошибку "неверный формат файла"
func NewInvalidFormatError(path string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidFormat,
		Message: "Неверный формат файла. Поддерживаются только .xlsx и .xlsm файлы",
		Context: map[string]interface{}{"path": path},
	}
}

// NewPermissionDeniedError создает ошибку "нет доступа"
func NewPermissionDeniedError(path string, err error) *AppError {
	return &AppError{
		Code:    ErrCodePermissionDenied,
		Message: "Нет доступа к файлу",
		Context: map[string]interface{}{"path": path},
		Err:     err,
	}
}

// NewFileCorruptedError создает ошибку "файл поврежден"
func NewFileCorruptedError(path string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeFileCorrupted,
		Message: "Файл поврежден и не может быть прочитан",
		Context: map[string]interface{}{"path": path},
		Err:     err,
	}
}

// NewConfigError создает ошибку конфигурации
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeConfigError,
		Message: message,
		Err:     err,
	}
}

// NewReconcileError создает ошибку обновления цен
func NewReconcileError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeReconcileError,
		Message: message,
		Err:     err,
	}
}

// NewSaveError создает ошибку сохранения файла
func NewSaveError(path string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeSaveError,
		Message: "Не удалось сохранить файл",
		Context: map[string]interface{}{"path": path},
		Err:     err,
	}
}

// NewFileLockedError создает ошибку "файл открыт в другой программе"
func NewFileLockedError(path string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeFileLocked,
		Message: "Файл открыт в другой программе, закройте его и повторите",
		Context: map[string]interface{}{"path": path},
		Err:     err,
	}
}

// NewColumnNotFoundError создает ошибку "столбец не найден" для листа источника
func NewColumnNotFoundError(sheet, column string) *AppError {
	return &AppError{
		Code:    ErrCodeColumnNotFound,
		Message: fmt.Sprintf("Столбец '%s' не найден на листе '%s'", column, sheet),
		Context: map[string]interface{}{"sheet": sheet, "column": column},
	}
}

// NewDestinationColumnsError создает фатальную ошибку столбцов файла назначения
func NewDestinationColumnsError(sheet string, columns ...string) *AppError {
	return &AppError{
		Code:    ErrCodeDestinationColumns,
		Message: fmt.Sprintf("На листе назначения '%s' не найдены столбцы %v", sheet, columns),
		Context: map[string]interface{}{"sheet": sheet, "columns": columns},
	}
}

// NewReportError создает ошибку формирования отчета
func NewReportError(path string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeReportError,
		Message: "Не удалось сформировать отчет",
		Context: map[string]interface{}{"path": path},
		Err:     err,
	}
}

// NewAssistantError создает ошибку ИИ-ассистента
func NewAssistantError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeAssistantError,
		Message: message,
		Err:     err,
	}
}

// Code возвращает код ошибки приложения или пустую строку
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsCode проверяет, что в цепочке есть AppError с указанным кодом
func IsCode(err error, code string) bool {
	return Code(err) == code
}

// UserMessage возвращает понятное пользователю сообщение об ошибке
func UserMessage(code string) string {
	messages := map[string]string{
		ErrCodeFileNotFound:       "Файл не найден. Пожалуйста, проверьте путь к файлу.",
		ErrCodeFileReadError:      "Не удалось прочитать файл. Возможно, он поврежден или открыт в другой программе.",
		ErrCodeSheetNotFound:      "Указанный лист не найден в файле. Проверьте настройки.",
		ErrCodeHeaderNotFound:     "Не удалось найти строку заголовков на листе.",
		ErrCodeEmptyFile:          "Файл пустой или не содержит данных.",
		ErrCodeInvalidFormat:      "Неверный формат файла. Поддерживаются только .xlsx файлы.",
		ErrCodePermissionDenied:   "Нет доступа к файлу. Проверьте права доступа.",
		ErrCodeFileCorrupted:      "Файл поврежден и не может быть прочитан.",
		ErrCodeConfigError:        "Ошибка конфигурации. Проверьте выбранные листы и столбцы.",
		ErrCodeReconcileError:     "Ошибка при обновлении цен. Проверьте логи.",
		ErrCodeSaveError:          "Не удалось сохранить файл. Проверьте путь и права доступа.",
		ErrCodeFileLocked:         "Файл открыт в другой программе. Закройте его и повторите попытку.",
		ErrCodeColumnNotFound:     "Выбранный столбец не найден на листе. Лист пропущен.",
		ErrCodeDestinationColumns: "В файле назначения не найдены столбцы SKU и PRICE.",
		ErrCodeReportError:        "Файл обновлен, но отчеты сохранить не удалось.",
		ErrCodeAssistantError:     "ИИ-ассистент не смог обработать запрос.",
	}

	if msg, exists := messages[code]; exists {
		return msg
	}
	return "Произошла неизвестная ошибка"
}
