package parser

// Concept is one of the column roles a table header must provide.
type Concept string

const (
	ConceptCanto  Concept = "canto"
	ConceptVersos Concept = "versos"
	ConceptCita   Concept = "cita"
)

// concepts in detection order.
var concepts = []Concept{ConceptCanto, ConceptVersos, ConceptCita}

// HeaderLocation is a located table header: the 0-based row index and the
// column index each concept was found at. Row extraction reads cells
// positionally through Columns, so the original column order is irrelevant.
type HeaderLocation struct {
	Row     int
	Columns map[Concept]int
}

// Span returns the leftmost and rightmost mapped column indices.
func (h HeaderLocation) Span() (lo, hi int) {
	first := true
	for _, col := range h.Columns {
		if first || col < lo {
			lo = col
		}
		if first || col > hi {
			hi = col
		}
		first = false
	}
	return lo, hi
}

// Options are the heuristic tunables of the normalizer. They are policy
// constants inherited from the observed source workbooks, surfaced as
// configuration rather than hard-coded.
type Options struct {
	// ScanRows bounds the header search window from the top of a sheet.
	ScanRows int
	// EmptyRowLimit is the number of consecutive fully empty rows that
	// terminates a table. A single blank separator row does not.
	EmptyRowLimit int
}

// DefaultOptions returns the policies observed in the source data:
// headers within the first 20 rows, tables ended by 2 empty rows.
func DefaultOptions() Options {
	return Options{ScanRows: 20, EmptyRowLimit: 2}
}

func (o Options) withDefaults() Options {
	if o.ScanRows <= 0 {
		o.ScanRows = 20
	}
	if o.EmptyRowLimit <= 0 {
		o.EmptyRowLimit = 2
	}
	return o
}
