package parser

import (
	"strings"

	"temata/internal/model"
)

// categoryAliases maps each canonical category to the label variants seen
// in the source workbooks. Aliases are stored pre-normalized (lowercase,
// no diacritics, no separator punctuation); matching is substring based so
// authors' prefixes and suffixes are tolerated.
var categoryAliases = map[model.Category][]string{
	model.CategoryArete: {
		"arete",
	},
	model.CategoryPoliticaPoder: {
		"politica y poder",
		"poder y politica",
		"politica",
		"poder",
	},
	model.CategoryDiosesHombres: {
		"relacion entre dioses y hombres",
		"relacion entre humanos y dioses",
		"relacion dioses humanos",
		"dioses y hombres",
		"humanos y dioses",
		"dioses",
		"h y d",
	},
}

// MatchCategory resolves a free-form sheet name or label to a canonical
// category. The longest matching alias wins; if two categories tie at the
// same alias length the matcher refuses to guess and reports unknown.
// Callers treat unknown as "skip this sheet/table", never as a failure.
func MatchCategory(label string) model.Category {
	key := NormalizeKey(label)
	if key == "" {
		return model.CategoryUnknown
	}

	best := model.CategoryUnknown
	bestLen := 0
	ambiguous := false

	for _, cat := range model.Categories {
		for _, alias := range categoryAliases[cat] {
			if !strings.Contains(key, alias) {
				continue
			}
			switch {
			case len(alias) > bestLen:
				best = cat
				bestLen = len(alias)
				ambiguous = false
			case len(alias) == bestLen && cat != best:
				ambiguous = true
			}
		}
	}

	if ambiguous || bestLen == 0 {
		return model.CategoryUnknown
	}
	return best
}
