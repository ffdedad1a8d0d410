package parser

import "testing"

func TestFindHeader_OffsetHeader(t *testing.T) {
	t.Parallel()

	// Header at row 5, starting at column 3, preceded by noise.
	grid := [][]string{
		{},
		{"", "Ilíada - fragmentos"},
		{},
		{},
		{},
		{"", "", "", "Canto", "Versos", "Cita"},
		{"", "", "", "I", "1-7", "Canta, oh diosa, la cólera..."},
	}

	loc, ok := FindHeader(grid, 0, -1, DefaultOptions())
	if !ok {
		t.Fatalf("expected header to be found")
	}
	if loc.Row != 5 {
		t.Fatalf("header row = %d, want 5", loc.Row)
	}
	if loc.Columns[ConceptCanto] != 3 || loc.Columns[ConceptVersos] != 4 || loc.Columns[ConceptCita] != 5 {
		t.Fatalf("unexpected column mapping: %v", loc.Columns)
	}
}

func TestFindHeader_ColumnOrderIrrelevant(t *testing.T) {
	t.Parallel()

	grid := [][]string{
		{"Texto de la cita", "Nº Canto", "Números de versos"},
	}
	loc, ok := FindHeader(grid, 0, -1, DefaultOptions())
	if !ok {
		t.Fatalf("expected header to be found")
	}
	if loc.Columns[ConceptCita] != 0 || loc.Columns[ConceptCanto] != 1 || loc.Columns[ConceptVersos] != 2 {
		t.Fatalf("unexpected column mapping: %v", loc.Columns)
	}
}

func TestFindHeader_AllConceptsRequired(t *testing.T) {
	t.Parallel()

	// Canto and versos but no cita column.
	grid := [][]string{
		{"Canto", "Versos", "Comentario"},
		{"I", "1-7", "nota"},
	}
	if _, ok := FindHeader(grid, 0, -1, DefaultOptions()); ok {
		t.Fatalf("row without a cita concept must not qualify")
	}
}

func TestFindHeader_ScanWindow(t *testing.T) {
	t.Parallel()

	grid := make([][]string, 30)
	for i := range grid {
		grid[i] = []string{""}
	}
	grid[25] = []string{"Canto", "Versos", "Cita"}

	if _, ok := FindHeader(grid, 0, -1, DefaultOptions()); ok {
		t.Fatalf("header beyond the 20-row window must not be found")
	}

	loc, ok := FindHeader(grid, 0, -1, Options{ScanRows: 26, EmptyRowLimit: 2})
	if !ok || loc.Row != 25 {
		t.Fatalf("widened window should find row 25, got ok=%v row=%d", ok, loc.Row)
	}
}

func TestFindHeader_TopmostCandidateWins(t *testing.T) {
	t.Parallel()

	grid := [][]string{
		{"Canto", "Versos", "Cita"},
		{"I", "1", "texto uno"},
		{"Canto", "Versos", "Cita"},
	}
	loc, ok := FindHeader(grid, 0, -1, DefaultOptions())
	if !ok || loc.Row != 0 {
		t.Fatalf("topmost header should win, got ok=%v row=%d", ok, loc.Row)
	}
}

func TestFindTables_SideBySide(t *testing.T) {
	t.Parallel()

	grid := [][]string{
		{"Etiqueta Areté", "", "", "", "H. y D.", "", ""},
		{"Canto", "Versos", "Cita", "", "Canto", "Versos", "Cita"},
		{"I", "1-7", "texto a", "", "II", "3-9", "texto b"},
	}

	tables := FindTables(grid, DefaultOptions())
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}

	lo, hi := tables[0].Span()
	if lo != 0 || hi != 2 {
		t.Fatalf("first table span = %d-%d, want 0-2", lo, hi)
	}
	lo, hi = tables[1].Span()
	if lo != 4 || hi != 6 {
		t.Fatalf("second table span = %d-%d, want 4-6", lo, hi)
	}
}
