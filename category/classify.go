package category

import (
	"strings"
)

// Rule assigns Category to any name containing one of Keywords.
type Rule struct {
	Category Category
	Keywords []string
	// FoldCase compares keywords against the lower-cased name.
	FoldCase bool
}

func (r Rule) matches(name string) bool {
	if r.FoldCase {
		name = strings.ToLower(name)
	}
	for _, keyword := range r.Keywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

// Table is evaluated top to bottom; the first matching rule wins.
type Table []Rule

// DefaultTable is the classification table in priority order. It must not be
// modified.
var DefaultTable = Table{
	{Category: CCTV, Keywords: []string{"cctv"}, FoldCase: true},
	{Category: WeiShi, Keywords: []string{"卫视"}},
	{Category: Local, Keywords: provinceKeywords},
	{Category: HKMOTW, Keywords: hkmotwKeywords},
	{Category: City, Keywords: cityKeywords},
}

// Classify returns the category of a channel name.
func (t Table) Classify(name string) Category {
	for _, rule := range t {
		if rule.matches(name) {
			return rule.Category
		}
	}
	return Other
}

// Classify classifies name with DefaultTable.
func Classify(name string) Category {
	return DefaultTable.Classify(name)
}
