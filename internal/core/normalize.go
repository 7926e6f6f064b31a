package core

import "strings"

// NormalizeSKU приводит идентификатор товара к виду для сравнения:
// обрезка пробелов, удаление ведущего апострофа, повторная обрезка, верхний регистр.
// Для пустого результата возвращает false.
//
// Апострофы снимаются, пока строка с него начинается: NormalizeSKU("''a") == "A",
// повторная нормализация результат не меняет.
func NormalizeSKU(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	for strings.HasPrefix(s, "'") {
		s = strings.TrimSpace(s[1:])
	}
	s = strings.ToUpper(s)
	return s, s != ""
}

// normalizeName приводит название товара к ключу индекса названий
func normalizeName(raw string) string {
	return strings.TrimSpace(raw)
}
