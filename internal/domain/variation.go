package domain

import (
	"sort"
	"strings"
	"time"
)

// VariationCategory — категория вариации товара (цвет или размер).
type VariationCategory string

const (
	VariationColor VariationCategory = "color"
	VariationSize  VariationCategory = "size"
)

// ParseVariationCategory приводит строку к VariationCategory без учёта регистра.
func ParseVariationCategory(s string) (VariationCategory, bool) {
	switch VariationCategory(strings.ToLower(s)) {
	case VariationColor:
		return VariationColor, true
	case VariationSize:
		return VariationSize, true
	default:
		return "", false
	}
}

// Variation описывает вариацию товара (например color=red или size=M)
type Variation struct {
	ID        int64
	ProductID int64
	Category  VariationCategory
	Value     string
	IsActive  bool
	CreatedAt time.Time
}

// VariationSet — неупорядоченный набор идентификаторов вариаций.
// Позиции корзины сливаются только при точном совпадении наборов.
type VariationSet []int64

// NewVariationSet строит нормализованный набор из списка вариаций.
func NewVariationSet(variations []Variation) VariationSet {
	ids := make(VariationSet, 0, len(variations))
	for _, v := range variations {
		ids = append(ids, v.ID)
	}
	return ids.Normalize()
}

// Normalize возвращает отсортированную копию набора без дубликатов.
func (s VariationSet) Normalize() VariationSet {
	if len(s) == 0 {
		return VariationSet{}
	}

	seen := make(map[int64]struct{}, len(s))
	out := make(VariationSet, 0, len(s))
	for _, id := range s {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal сравнивает наборы как множества.
func (s VariationSet) Equal(other VariationSet) bool {
	a := s.Normalize()
	b := other.Normalize()
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
