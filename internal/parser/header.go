package parser

import "strings"

// conceptAliases maps each header concept to the column-label variants
// seen in the source workbooks, pre-normalized like categoryAliases.
var conceptAliases = map[Concept][]string{
	ConceptCanto: {
		"numero de canto",
		"n canto",
		"canto",
		"libro",
	},
	ConceptVersos: {
		"numeros de versos",
		"numero de versos",
		"n verso",
		"versos",
		"verso",
	},
	ConceptCita: {
		"fragmento",
		"pasaje",
		"cita",
		"texto",
	},
}

// matchConcept resolves a header cell to a column concept, longest alias
// first; empty concept when the cell matches nothing.
func matchConcept(cell string) Concept {
	key := NormalizeKey(cell)
	if key == "" {
		return ""
	}

	var best Concept
	bestLen := 0
	for _, concept := range concepts {
		for _, alias := range conceptAliases[concept] {
			if strings.Contains(key, alias) && len(alias) > bestLen {
				best = concept
				bestLen = len(alias)
			}
		}
	}
	return best
}

// FindHeader scans the first opts.ScanRows rows of grid, restricted to
// columns [colLo, colHi] (colHi < 0 means unbounded), for a row that
// carries all three column concepts in any order. The topmost satisfying
// row wins; data tables are assumed not to repeat headers. The boolean is
// false when no row in the window qualifies — the caller skips the region
// rather than failing the run.
func FindHeader(grid [][]string, colLo, colHi int, opts Options) (HeaderLocation, bool) {
	opts = opts.withDefaults()

	limit := opts.ScanRows
	if limit > len(grid) {
		limit = len(grid)
	}

	for rowIdx := 0; rowIdx < limit; rowIdx++ {
		row := grid[rowIdx]
		hi := colHi
		if hi < 0 || hi >= len(row) {
			hi = len(row) - 1
		}

		columns := make(map[Concept]int)
		for col := colLo; col <= hi; col++ {
			concept := matchConcept(row[col])
			if concept == "" {
				continue
			}
			if _, taken := columns[concept]; !taken {
				columns[concept] = col
			}
		}

		if len(columns) == len(concepts) {
			return HeaderLocation{Row: rowIdx, Columns: columns}, true
		}
	}

	return HeaderLocation{Row: -1}, false
}
