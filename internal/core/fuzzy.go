package core

import (
	"log/slog"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	// DefaultSimilarityThreshold минимальная похожесть для предложения связи
	DefaultSimilarityThreshold = 0.4
	// NoOriginSheet лист источника для идентификатора без цены
	NoOriginSheet = "-"
)

// FuzzySuggestion предложенная связь строки назначения без идентификатора
type FuzzySuggestion struct {
	Title        string  // текст строки назначения
	MatchedName  string  // найденное название источника
	SuggestedSKU string  // идентификатор найденного названия
	Similarity   float64 // 0..1
	Percent      int     // Similarity*100 с отбрасыванием дробной части
	OriginSheet  string
}

// FuzzyLinker подбирает ближайшее известное название для строк без идентификатора
type FuzzyLinker struct {
	Threshold float64
	logger    *slog.Logger
}

// NewFuzzyLinker создает новый связыватель с порогом DefaultSimilarityThreshold
func NewFuzzyLinker(logger *slog.Logger) *FuzzyLinker {
	if logger == nil {
		logger = slog.Default()
	}

	return &FuzzyLinker{
		Threshold: DefaultSimilarityThreshold,
		logger:    logger,
	}
}

// Link возвращает не более одного предложения на кандидата.
// Совпадения с похожестью ниже порога отбрасываются.
func (l *FuzzyLinker) Link(candidates []string, names *NameIndex, prices *PriceIndex) []FuzzySuggestion {
	suggestions := []FuzzySuggestion{}
	if len(candidates) == 0 || names.Len() == 0 {
		return suggestions
	}

	known := names.Names()
	splitKnown := make([][]string, len(known))
	for i, name := range known {
		splitKnown[i] = splitRunes(name)
	}

	for _, candidate := range candidates {
		best, ratio, ok := l.bestMatch(candidate, known, splitKnown)
		if !ok {
			continue
		}

		sku, _ := names.Lookup(best)
		origin := NoOriginSheet
		if entry, found := prices.Lookup(sku); found {
			origin = entry.Sheet
		}

		suggestions = append(suggestions, FuzzySuggestion{
			Title:        candidate,
			MatchedName:  best,
			SuggestedSKU: sku,
			Similarity:   ratio,
			Percent:      int(ratio * 100),
			OriginSheet:  origin,
		})
	}

	l.logger.Info("поиск похожих названий завершен",
		"candidates", len(candidates),
		"suggestions", len(suggestions),
		"threshold", l.Threshold,
	)

	return suggestions
}

// bestMatch ищет название с наибольшей похожестью не ниже порога.
// При равной похожести выбирается лексикографически большее название.
func (l *FuzzyLinker) bestMatch(candidate string, known []string, splitKnown [][]string) (string, float64, bool) {
	matcher := difflib.NewMatcher(nil, splitRunes(candidate))

	bestName := ""
	bestRatio := -1.0
	for i, name := range known {
		matcher.SetSeq1(splitKnown[i])
		if matcher.RealQuickRatio() < l.Threshold || matcher.QuickRatio() < l.Threshold {
			continue
		}

		ratio := matcher.Ratio()
		if ratio < l.Threshold {
			continue
		}
		if ratio > bestRatio || (ratio == bestRatio && name > bestName) {
			bestName, bestRatio = name, ratio
		}
	}

	if bestRatio < 0 {
		return "", 0, false
	}
	return bestName, bestRatio, true
}

// splitRunes разбивает строку на символы для сравнения последовательностей
func splitRunes(s string) []string {
	return strings.Split(s, "")
}
