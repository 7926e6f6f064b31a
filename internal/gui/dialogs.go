package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/DatKorso/price-updater/internal/core"
)

// noColumn вариант "столбец не используется"
const noColumn = "(нет)"

const previewColumnWidth = 140

// newPreviewTable создает таблицу только для чтения с заголовками столбцов
func newPreviewTable(headers []string, rows [][]string) *widget.Table {
	table := widget.NewTableWithHeaders(
		func() (int, int) {
			return len(rows), len(headers)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			text := ""
			if id.Row < len(rows) && id.Col < len(rows[id.Row]) {
				text = rows[id.Row][id.Col]
			}
			obj.(*widget.Label).SetText(text)
		},
	)
	table.ShowHeaderColumn = false
	table.CreateHeader = func() fyne.CanvasObject {
		label := widget.NewLabel("")
		label.TextStyle = fyne.TextStyle{Bold: true}
		return label
	}
	table.UpdateHeader = func(id widget.TableCellID, obj fyne.CanvasObject) {
		label := obj.(*widget.Label)
		if id.Row < 0 && id.Col >= 0 && id.Col < len(headers) {
			label.SetText(headers[id.Col])
			return
		}
		label.SetText("")
	}

	for i := range headers {
		table.SetColumnWidth(i, previewColumnWidth)
	}
	return table
}

// newColumnSelect создает выбор столбца с предвыбранным значением, если оно есть среди заголовков
func newColumnSelect(options []string, selected string) *widget.Select {
	sel := widget.NewSelect(options, nil)
	for _, option := range options {
		if option == selected {
			sel.SetSelected(selected)
			break
		}
	}
	return sel
}

// selectedColumn возвращает выбранный столбец, "(нет)" дает пустую строку
func selectedColumn(sel *widget.Select) string {
	if sel.Selected == noColumn {
		return ""
	}
	return sel.Selected
}

// mappingFromSelection собирает столбцы листа из выбора оператора.
// "(нет)" в названии дает пустую строку. Без SKU или цены возвращается ошибка.
func mappingFromSelection(sheetName, sku, price, name string) (core.SheetColumnConfig, error) {
	if name == noColumn {
		name = ""
	}
	cfg := core.SheetColumnConfig{
		SheetName:   sheetName,
		SKUColumn:   sku,
		PriceColumn: price,
		NameColumn:  name,
	}
	if err := cfg.Validate(); err != nil {
		return core.SheetColumnConfig{}, err
	}
	return cfg, nil
}

// showMappingDialog показывает выбор столбцов SKU, цены и названия листа источника.
// onDone вызывается один раз: ok=false означает пропуск листа.
func showMappingDialog(parent fyne.Window, req core.MappingRequest, onDone func(cfg core.SheetColumnConfig, ok bool)) {
	headers := []string{}
	rows := [][]string{}
	if req.Preview != nil {
		headers = req.Preview.Headers
		rows = req.Preview.Rows
	}

	skuSelect := newColumnSelect(headers, req.Suggested.SKUColumn)
	priceSelect := newColumnSelect(headers, req.Suggested.PriceColumn)
	nameOptions := append([]string{noColumn}, headers...)
	nameSelect := newColumnSelect(nameOptions, req.Suggested.NameColumn)
	if nameSelect.Selected == "" {
		nameSelect.SetSelected(noColumn)
	}

	form := widget.NewForm(
		widget.NewFormItem("Столбец SKU", skuSelect),
		widget.NewFormItem("Столбец цены", priceSelect),
		widget.NewFormItem("Столбец названия", nameSelect),
	)

	content := container.NewBorder(
		container.NewVBox(
			widget.NewLabel(fmt.Sprintf("Лист '%s': первые строки", req.SheetName)),
			form,
			widget.NewSeparator(),
		),
		nil, nil, nil,
		newPreviewTable(headers, rows),
	)

	dlg := dialog.NewCustomWithoutButtons("Выбор столбцов", content, parent)

	confirmBtn := widget.NewButtonWithIcon("Подтвердить", theme.ConfirmIcon(), func() {
		cfg, err := mappingFromSelection(req.SheetName, skuSelect.Selected, priceSelect.Selected, nameSelect.Selected)
		if err != nil {
			dialog.ShowInformation("Внимание", "Выберите как минимум столбцы SKU и цены", parent)
			return
		}
		dlg.Hide()
		onDone(cfg, true)
	})
	confirmBtn.Importance = widget.HighImportance

	skipBtn := widget.NewButtonWithIcon("Пропустить лист", theme.CancelIcon(), func() {
		dlg.Hide()
		onDone(core.SheetColumnConfig{}, false)
	})

	dlg.SetButtons([]fyne.CanvasObject{skipBtn, confirmBtn})
	dlg.Resize(fyne.NewSize(900, 560))
	dlg.Show()
}

// showPreviewDialog показывает строки отчета перед записью
func showPreviewDialog(parent fyne.Window, req core.PreviewRequest, onDone func(ok bool)) {
	info := widget.NewLabel(fmt.Sprintf("Показано строк: %d из %d", len(req.Rows), req.TotalRows))

	content := container.NewBorder(
		info, nil, nil, nil,
		newPreviewTable(req.Columns, req.Rows),
	)

	dlg := dialog.NewCustomConfirm(req.Title, "Сохранить отчеты", "Отмена", content, onDone, parent)
	dlg.Resize(fyne.NewSize(900, 560))
	dlg.Show()
}
