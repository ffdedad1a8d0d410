package store

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"temata/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testRecord(cat model.Category, cita string) model.Record {
	return model.Record{
		ID:          uuid.NewString(),
		Categoria:   cat,
		Canto:       "I",
		Versos:      "1-7",
		Cita:        cita,
		SourceFile:  "f.xlsx",
		SourceSheet: "Areté",
		RowNo:       2,
	}
}

func TestInsertAndCount(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	records := []model.Record{
		testRecord(model.CategoryArete, "texto uno"),
		testRecord(model.CategoryArete, "texto dos"),
		testRecord(model.CategoryPoliticaPoder, "texto tres"),
	}
	n, err := s.InsertRecords(CollectionRaw, records)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if n != 3 {
		t.Fatalf("inserted = %d, want 3", n)
	}

	total, err := s.CountDocuments(CollectionRaw, model.CategoryUnknown)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}

	arete, err := s.CountDocuments(CollectionRaw, model.CategoryArete)
	if err != nil {
		t.Fatalf("count filtered: %v", err)
	}
	if arete != 2 {
		t.Fatalf("arete = %d, want 2", arete)
	}

	counts, err := s.CategoryCounts(CollectionRaw)
	if err != nil {
		t.Fatalf("category counts: %v", err)
	}
	if counts[model.CategoryArete] != 2 || counts[model.CategoryPoliticaPoder] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestInsertRejectsInvalidRecords(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	// Empty cita.
	if _, err := s.InsertRecords(CollectionRaw, []model.Record{testRecord(model.CategoryArete, "")}); err == nil {
		t.Fatalf("empty cita must be rejected")
	}
	// Non-canonical category.
	if _, err := s.InsertRecords(CollectionRaw, []model.Record{testRecord(model.CategoryUnknown, "texto")}); err == nil {
		t.Fatalf("unknown category must be rejected")
	}
	// Nothing may have been written.
	total, err := s.CountDocuments(CollectionRaw, model.CategoryUnknown)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 0 {
		t.Fatalf("store must stay empty, got %d", total)
	}
}

func TestCollectionsAreIsolated(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	if _, err := s.InsertRecords(CollectionRaw, []model.Record{testRecord(model.CategoryArete, "a")}); err != nil {
		t.Fatalf("insert raw: %v", err)
	}
	if _, err := s.InsertRecords(CollectionTrain, []model.Record{testRecord(model.CategoryArete, "b")}); err != nil {
		t.Fatalf("insert train: %v", err)
	}

	deleted, err := s.ClearCollection(CollectionRaw)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted = %d, want 1", deleted)
	}

	trainCount, err := s.CountDocuments(CollectionTrain, model.CategoryUnknown)
	if err != nil {
		t.Fatalf("count train: %v", err)
	}
	if trainCount != 1 {
		t.Fatalf("clearing raw must not touch train, got %d", trainCount)
	}
}

func TestListRecordsRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	in := []model.Record{
		testRecord(model.CategoryArete, "primero"),
		testRecord(model.CategoryDiosesHombres, "segundo"),
	}
	if _, err := s.InsertRecords(CollectionRaw, in); err != nil {
		t.Fatalf("insert: %v", err)
	}

	out, err := s.ListRecords(CollectionRaw)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d records", len(out))
	}
	if out[0].Cita != "primero" || out[1].Cita != "segundo" {
		t.Fatalf("insertion order not preserved: %+v", out)
	}
	if out[0].ID != in[0].ID || out[0].Categoria != in[0].Categoria {
		t.Fatalf("fields lost in round trip: %+v", out[0])
	}
}

func TestRunLogs(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	id, err := s.CreateRunLog("/datos")
	if err != nil {
		t.Fatalf("create run log: %v", err)
	}
	if err := s.FinishRunLog(id, 3, 1, 120, 120, "partial", ""); err != nil {
		t.Fatalf("finish run log: %v", err)
	}

	runs, err := s.RecentRuns(5)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs", len(runs))
	}
	r := runs[0]
	if r.Status != "partial" || r.TotalFiles != 3 || r.FailedFiles != 1 || r.Inserted != 120 {
		t.Fatalf("unexpected run log: %+v", r)
	}
	if r.CompletedAt == nil {
		t.Fatalf("completed_at must be set")
	}
}
