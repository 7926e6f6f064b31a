package native

import (
	"errors"
	"path/filepath"

	"github.com/sqweek/dialog"
)

const (
	workbookFilter = "Excel (*.xlsx)"
	workbookExt    = "xlsx"
)

// SelectWorkbook показывает нативный диалог выбора книги Excel.
// startDir задает начальную директорию, если не пустая.
// При отмене возвращается dialog.Cancelled.
func SelectWorkbook(title, startDir string) (string, error) {
	dlg := dialog.File().Title(title).Filter(workbookFilter, workbookExt)
	if startDir != "" {
		dlg = dlg.SetStartDir(startDir)
	}
	return dlg.Load()
}

// SelectSavePath показывает диалог сохранения книги с предложенным путем
func SelectSavePath(title, suggested string) (string, error) {
	dlg := dialog.File().Title(title).Filter(workbookFilter, workbookExt)
	if suggested != "" {
		dlg = dlg.SetStartDir(filepath.Dir(suggested)).SetStartFile(filepath.Base(suggested))
	}

	filename, err := dlg.Save()
	if err != nil {
		return "", err
	}
	if filepath.Ext(filename) == "" {
		filename += "." + workbookExt
	}
	return filename, nil
}

// SelectDirectory показывает диалог выбора директории
func SelectDirectory(title string) (string, error) {
	return dialog.Directory().Title(title).Browse()
}

// IsCancelled проверяет, является ли ошибка отменой диалога пользователем
func IsCancelled(err error) bool {
	return errors.Is(err, dialog.Cancelled)
}
