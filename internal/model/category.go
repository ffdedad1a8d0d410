package model

// Category is one of the three fixed thematic categories of the corpus.
// Sheet names and table labels are resolved to these canonical values
// by the parser; raw labels never reach the store.
type Category string

const (
	CategoryUnknown Category = "unknown"

	CategoryArete         Category = "arete"          // Areté
	CategoryPoliticaPoder Category = "politica_poder" // Política y Poder
	CategoryDiosesHombres Category = "dioses_hombres" // Relación Dioses-Humanos
)

// Categories lists the canonical categories in label order.
var Categories = []Category{CategoryArete, CategoryPoliticaPoder, CategoryDiosesHombres}

// LabelID returns the numeric label used by the downstream classifier.
// Unknown maps to -1 and must never be persisted.
func (c Category) LabelID() int {
	switch c {
	case CategoryArete:
		return 0
	case CategoryPoliticaPoder:
		return 1
	case CategoryDiosesHombres:
		return 2
	}
	return -1
}

// DisplayName returns the human-readable category name.
func (c Category) DisplayName() string {
	switch c {
	case CategoryArete:
		return "Areté"
	case CategoryPoliticaPoder:
		return "Política y Poder"
	case CategoryDiosesHombres:
		return "Relación Dioses-Humanos"
	}
	return "Desconocida"
}

// Valid reports whether c is one of the three canonical categories.
func (c Category) Valid() bool {
	return c == CategoryArete || c == CategoryPoliticaPoder || c == CategoryDiosesHombres
}
