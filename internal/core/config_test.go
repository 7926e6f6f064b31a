package core

import (
	"testing"

	apperrors "github.com/DatKorso/price-updater/internal/errors"
)

func TestNewProfile(t *testing.T) {
	profileName := "Proveedor ACME"
	profile := NewProfile(profileName)

	if profile.ProfileName != profileName {
		t.Errorf("Expected profile name %s, got %s", profileName, profile.ProfileName)
	}

	if profile.Version != ProfileVersion {
		t.Errorf("Expected version %s, got %s", ProfileVersion, profile.Version)
	}

	if profile.Destination.SheetName != DefaultDestinationSheet || profile.Destination.OutputName != DefaultOutputName {
		t.Errorf("неверные настройки назначения по умолчанию: %+v", profile.Destination)
	}
}

func TestProfileSheets(t *testing.T) {
	profile := NewProfile("Test")

	profile.SetSheet(SheetColumnConfig{SheetName: "Lista", SKUColumn: "SKU", PriceColumn: "PRECIO"})
	profile.SetSheet(SheetColumnConfig{SheetName: "Otros", SKUColumn: "CODIGO", PriceColumn: "COSTO"})

	if len(profile.Sheets) != 2 {
		t.Fatalf("Expected 2 sheets, got %d", len(profile.Sheets))
	}

	t.Run("замена существующего листа", func(t *testing.T) {
		profile.SetSheet(SheetColumnConfig{SheetName: "Lista", SKUColumn: "SKU", PriceColumn: "PRECIO ML"})
		if len(profile.Sheets) != 2 {
			t.Errorf("лист не должен дублироваться: %d", len(profile.Sheets))
		}
		if cfg := profile.GetSheetConfig("Lista"); cfg == nil || cfg.PriceColumn != "PRECIO ML" {
			t.Errorf("конфигурация не обновлена: %+v", cfg)
		}
	})

	t.Run("удаление листа", func(t *testing.T) {
		if !profile.RemoveSheet("Otros") {
			t.Error("RemoveSheet должен вернуть true")
		}
		if profile.RemoveSheet("Otros") {
			t.Error("повторное удаление должно вернуть false")
		}
		if profile.GetSheetConfig("Otros") != nil {
			t.Error("лист должен быть удален")
		}
	})
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile func() *Profile
		wantErr bool
	}{
		{
			name:    "корректный профиль",
			profile: func() *Profile { return NewProfile("ok") },
			wantErr: false,
		},
		{
			name:    "пустое имя",
			profile: func() *Profile { return NewProfile("") },
			wantErr: true,
		},
		{
			name: "лист без цены",
			profile: func() *Profile {
				p := NewProfile("x")
				p.SetSheet(SheetColumnConfig{SheetName: "Lista", SKUColumn: "SKU"})
				return p
			},
			wantErr: true,
		},
		{
			name: "лист без имени",
			profile: func() *Profile {
				p := NewProfile("x")
				p.Sheets = append(p.Sheets, SheetColumnConfig{SKUColumn: "SKU", PriceColumn: "PRECIO"})
				return p
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile().Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperrors.IsCode(err, apperrors.ErrCodeConfigError) {
				t.Errorf("ожидалась ошибка %s, получено %v", apperrors.ErrCodeConfigError, err)
			}
		})
	}
}

func TestProfileClone(t *testing.T) {
	profile := NewProfile("orig")
	profile.SetSheet(SheetColumnConfig{SheetName: "Lista", SKUColumn: "SKU", PriceColumn: "PRECIO"})

	clone := profile.Clone()
	clone.SetSheet(SheetColumnConfig{SheetName: "Lista", SKUColumn: "SKU", PriceColumn: "COSTO"})
	clone.Destination.SheetName = "Otra"

	if profile.Sheets[0].PriceColumn != "PRECIO" {
		t.Errorf("изменение копии затронуло оригинал: %+v", profile.Sheets[0])
	}
	if profile.Destination.SheetName != DefaultDestinationSheet {
		t.Errorf("назначение оригинала изменено: %s", profile.Destination.SheetName)
	}
}
