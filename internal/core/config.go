package core

import (
	"time"

	apperrors "github.com/DatKorso/price-updater/internal/errors"
)

const (
	// ProfileVersion версия формата профиля
	ProfileVersion = "1.0"
	// DefaultDestinationSheet лист назначения, выбираемый по умолчанию
	DefaultDestinationSheet = "Publicaciones"
	// DefaultOutputName имя файла результата по умолчанию
	DefaultOutputName = "ML_Actualizado.xlsx"
)

// SheetColumnConfig подтвержденные оператором столбцы одного листа источника
type SheetColumnConfig struct {
	SheetName   string `json:"sheet_name"`
	SKUColumn   string `json:"sku_column"`
	PriceColumn string `json:"price_column"`
	NameColumn  string `json:"name_column,omitempty"`
}

// Validate проверяет, что выбраны столбцы идентификатора и цены
func (c SheetColumnConfig) Validate() error {
	if c.SheetName == "" {
		return apperrors.NewConfigError("Имя листа не может быть пустым", nil)
	}
	if c.SKUColumn == "" || c.PriceColumn == "" {
		err := apperrors.NewConfigError("Нужно выбрать как минимум столбцы SKU и цены", nil)
		err.Context = map[string]interface{}{"sheet": c.SheetName}
		return err
	}
	return nil
}

// DestinationConfig настройки книги назначения
type DestinationConfig struct {
	SheetName   string `json:"sheet_name"`
	SKUColumn   string `json:"sku_column"`
	TitleColumn string `json:"title_column,omitempty"`
	OutputName  string `json:"output_name"`
}

// Profile представляет сохраненный профиль настроек
type Profile struct {
	Version     string              `json:"version"`
	ProfileName string              `json:"profile_name"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	SourceFile  string              `json:"source_file"`
	Sheets      []SheetColumnConfig `json:"sheets"`
	Destination DestinationConfig   `json:"destination"`
}

// NewProfile создает новый профиль с настройками по умолчанию
func NewProfile(name string) *Profile {
	now := time.Now()
	return &Profile{
		Version:     ProfileVersion,
		ProfileName: name,
		CreatedAt:   now,
		UpdatedAt:   now,
		Sheets:      []SheetColumnConfig{},
		Destination: DestinationConfig{
			SheetName:  DefaultDestinationSheet,
			OutputName: DefaultOutputName,
		},
	}
}

// Clone возвращает независимую копию профиля
func (p *Profile) Clone() *Profile {
	clone := *p
	clone.Sheets = append([]SheetColumnConfig(nil), p.Sheets...)
	return &clone
}

// SetSheet добавляет или заменяет конфигурацию листа
func (p *Profile) SetSheet(config SheetColumnConfig) {
	if !p.UpdateSheet(config.SheetName, config) {
		p.Sheets = append(p.Sheets, config)
		p.UpdatedAt = time.Now()
	}
}

// GetSheetConfig возвращает конфигурацию листа по имени
func (p *Profile) GetSheetConfig(sheetName string) *SheetColumnConfig {
	for i := range p.Sheets {
		if p.Sheets[i].SheetName == sheetName {
			return &p.Sheets[i]
		}
	}
	return nil
}

// UpdateSheet обновляет конфигурацию листа
func (p *Profile) UpdateSheet(sheetName string, config SheetColumnConfig) bool {
	for i := range p.Sheets {
		if p.Sheets[i].SheetName == sheetName {
			p.Sheets[i] = config
			p.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// RemoveSheet удаляет конфигурацию листа из профиля
func (p *Profile) RemoveSheet(sheetName string) bool {
	for i := range p.Sheets {
		if p.Sheets[i].SheetName == sheetName {
			p.Sheets = append(p.Sheets[:i], p.Sheets[i+1:]...)
			p.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// Validate проверяет корректность профиля
func (p *Profile) Validate() error {
	if p.ProfileName == "" {
		return apperrors.NewConfigError("Имя профиля не может быть пустым", nil)
	}

	for i, sheet := range p.Sheets {
		if err := sheet.Validate(); err != nil {
			if appErr, ok := err.(*apperrors.AppError); ok && appErr.Context == nil {
				appErr.Context = map[string]interface{}{"sheet_index": i}
			}
			return err
		}
	}

	return nil
}
