package core

import "strings"

var (
	skuHints   = []string{"SKU", "CODIGO", "ZMART"}
	priceHints = []string{"PRECIO", "COSTO", "ML"}
	nameHints  = []string{"PRODUCTO", "NOMBRE"}

	destinationSKUHeaders = []string{"SELLER_SKU", "SKU", "CODIGO", "INTERNAL_ID"}
)

// DestinationTitleHeader столбец заголовка публикации по умолчанию
const DestinationTitleHeader = "TITLE"

// SuggestSourceColumns предлагает столбцы листа источника по ключевым словам.
// Для каждой роли берется первый подходящий заголовок.
func SuggestSourceColumns(sheetName string, headers []string) SheetColumnConfig {
	return SheetColumnConfig{
		SheetName:   sheetName,
		SKUColumn:   firstWithHint(headers, skuHints),
		PriceColumn: firstWithHint(headers, priceHints),
		NameColumn:  firstWithHint(headers, nameHints),
	}
}

// SuggestDestinationColumns предлагает столбцы идентификатора и заголовка листа назначения.
// Побеждает последний подходящий заголовок.
func SuggestDestinationColumns(headers []string) (sku, title string) {
	for _, h := range headers {
		value := strings.TrimSpace(h)
		for _, candidate := range destinationSKUHeaders {
			if value == candidate {
				sku = h
			}
		}
		if value == DestinationTitleHeader {
			title = h
		}
	}
	return sku, title
}

func firstWithHint(headers, hints []string) string {
	for _, h := range headers {
		upper := strings.ToUpper(h)
		for _, hint := range hints {
			if strings.Contains(upper, hint) {
				return h
			}
		}
	}
	return ""
}
