package core

import "github.com/shopspring/decimal"

// PriceEntry цена товара и лист источника, из которого она взята
type PriceEntry struct {
	Price decimal.Decimal
	Sheet string
}

// PriceIndex индекс идентификатор -> цена.
// Заполняется только консолидатором, далее используется только для чтения.
// Порядок ключей соответствует первой вставке.
type PriceIndex struct {
	keys    []string
	entries map[string]PriceEntry
}

func newPriceIndex() *PriceIndex {
	return &PriceIndex{entries: make(map[string]PriceEntry)}
}

// set записывает цену, повторная запись заменяет значение без смены позиции
func (i *PriceIndex) set(sku string, entry PriceEntry) {
	if _, ok := i.entries[sku]; !ok {
		i.keys = append(i.keys, sku)
	}
	i.entries[sku] = entry
}

// Lookup возвращает цену по идентификатору
func (i *PriceIndex) Lookup(sku string) (PriceEntry, bool) {
	if i == nil {
		return PriceEntry{}, false
	}
	entry, ok := i.entries[sku]
	return entry, ok
}

// Len количество идентификаторов в индексе
func (i *PriceIndex) Len() int {
	if i == nil {
		return 0
	}
	return len(i.keys)
}

// Keys возвращает идентификаторы в порядке добавления
func (i *PriceIndex) Keys() []string {
	if i == nil {
		return nil
	}
	keys := make([]string, len(i.keys))
	copy(keys, i.keys)
	return keys
}

// NameIndex индекс название -> идентификатор и обратная карта идентификатор -> название.
// Последняя запись побеждает в обоих направлениях.
type NameIndex struct {
	names  []string
	bySKU  map[string]string
	byName map[string]string
}

func newNameIndex() *NameIndex {
	return &NameIndex{
		bySKU:  make(map[string]string),
		byName: make(map[string]string),
	}
}

func (i *NameIndex) set(name, sku string) {
	if _, ok := i.byName[name]; !ok {
		i.names = append(i.names, name)
	}
	i.byName[name] = sku
	i.bySKU[sku] = name
}

// Lookup возвращает идентификатор по названию
func (i *NameIndex) Lookup(name string) (string, bool) {
	if i == nil {
		return "", false
	}
	sku, ok := i.byName[name]
	return sku, ok
}

// NameOf возвращает последнее название, записанное для идентификатора
func (i *NameIndex) NameOf(sku string) string {
	if i == nil {
		return ""
	}
	return i.bySKU[sku]
}

// Names возвращает названия в порядке добавления
func (i *NameIndex) Names() []string {
	if i == nil {
		return nil
	}
	names := make([]string, len(i.names))
	copy(names, i.names)
	return names
}

// Len количество названий в индексе
func (i *NameIndex) Len() int {
	if i == nil {
		return 0
	}
	return len(i.names)
}
