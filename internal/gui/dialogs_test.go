package gui

import (
	"testing"

	"github.com/DatKorso/price-updater/internal/core"
	apperrors "github.com/DatKorso/price-updater/internal/errors"
)

func TestMappingFromSelection(t *testing.T) {
	tests := []struct {
		name    string
		sku     string
		price   string
		colName string
		want    core.SheetColumnConfig
		wantErr bool
	}{
		{
			name: "все столбцы", sku: "SKU", price: "PRECIO", colName: "NOMBRE",
			want: core.SheetColumnConfig{SheetName: "Lista", SKUColumn: "SKU", PriceColumn: "PRECIO", NameColumn: "NOMBRE"},
		},
		{
			name: "без названия", sku: "SKU", price: "PRECIO", colName: noColumn,
			want: core.SheetColumnConfig{SheetName: "Lista", SKUColumn: "SKU", PriceColumn: "PRECIO"},
		},
		{name: "нет SKU", price: "PRECIO", colName: noColumn, wantErr: true},
		{name: "нет цены", sku: "SKU", colName: "NOMBRE", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mappingFromSelection("Lista", tt.sku, tt.price, tt.colName)
			if tt.wantErr {
				if !apperrors.IsCode(err, apperrors.ErrCodeConfigError) {
					t.Errorf("ожидалась ошибка %s, получено %v", apperrors.ErrCodeConfigError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("неожиданная ошибка: %v", err)
			}
			if got != tt.want {
				t.Errorf("получено %+v, ожидалось %+v", got, tt.want)
			}
		})
	}
}
