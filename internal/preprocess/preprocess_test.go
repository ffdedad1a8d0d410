package preprocess

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"temata/internal/model"
	"temata/internal/store"
)

func TestCleanText(t *testing.T) {
	t.Parallel()

	if got := CleanText("«Canta,  oh diosa — la cólera»"); got != `"Canta, oh diosa - la cólera"` {
		t.Fatalf("got %q", got)
	}
	if got := CleanText("palabra ....... final"); got != "palabra... final" {
		t.Fatalf("ellipsis: got %q", got)
	}
	if got := CleanText("texto , con espacios ."); got != "texto, con espacios." {
		t.Fatalf("punctuation spacing: got %q", got)
	}
	if got := CleanText("  ...  "); got != "" {
		t.Fatalf("punctuation-only must clean to empty, got %q", got)
	}
	if got := CleanText("acentos áéíóú intactos"); got != "acentos áéíóú intactos" {
		t.Fatalf("accents must survive: got %q", got)
	}
}

func seedRaw(t *testing.T, s *store.Store, nArete, nPolitica, nDioses int) {
	t.Helper()
	var records []model.Record
	add := func(cat model.Category, n int) {
		for i := 0; i < n; i++ {
			records = append(records, model.Record{
				ID:        uuid.NewString(),
				Categoria: cat,
				Canto:     "I",
				Versos:    "1-3",
				Cita:      fmt.Sprintf("fragmento %s %d", cat, i),
			})
		}
	}
	add(model.CategoryArete, nArete)
	add(model.CategoryPoliticaPoder, nPolitica)
	add(model.CategoryDiosesHombres, nDioses)
	if _, err := s.InsertRecords(store.CollectionRaw, records); err != nil {
		t.Fatalf("seed raw: %v", err)
	}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRun_BalancesToMinority(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seedRaw(t, s, 20, 14, 17)

	runner := NewRunner(s, DefaultOptions())
	res, err := runner.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if res.PerCategory != 14 {
		t.Fatalf("perCategory = %d, want 14", res.PerCategory)
	}
	if res.BalancedCount != 42 {
		t.Fatalf("balanced = %d, want 42", res.BalancedCount)
	}
	for _, cat := range model.Categories {
		if res.ByCategory[cat] != 14 {
			t.Fatalf("%s = %d, want 14", cat, res.ByCategory[cat])
		}
	}

	// test/val get floor(14*0.15)=2 each, train the rest.
	if res.TestCount != 6 || res.ValCount != 6 || res.TrainCount != 30 {
		t.Fatalf("split = %d/%d/%d", res.TrainCount, res.ValCount, res.TestCount)
	}

	n, err := s.CountDocuments(store.CollectionTrain, model.CategoryUnknown)
	if err != nil {
		t.Fatalf("count train: %v", err)
	}
	if n != 30 {
		t.Fatalf("persisted train = %d, want 30", n)
	}
}

func TestRun_Deterministic(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seedRaw(t, s, 12, 10, 11)

	runner := NewRunner(s, DefaultOptions())
	if _, err := runner.Run(); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, err := s.ListRecords(store.CollectionTrain)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if _, err := runner.Run(); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, err := s.ListRecords(store.CollectionTrain)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("row %d differs: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestRun_EmptyRawFails(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	runner := NewRunner(s, DefaultOptions())
	if _, err := runner.Run(); err == nil {
		t.Fatalf("empty raw_texts must fail")
	}
}
