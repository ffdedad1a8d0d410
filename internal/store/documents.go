package store

import (
	"fmt"

	"temata/internal/model"
)

// InsertRecords persists records as documents of the given collection
// inside one transaction and returns the count inserted. Invalid records
// (empty cita or non-canonical category) are rejected up front so a
// partial record never reaches the store.
func (s *Store) InsertRecords(collection string, records []model.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	for _, r := range records {
		if !r.Valid() {
			return 0, fmt.Errorf("invalid record %s: empty cita or category %q", r.ID, r.Categoria)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO documents (
			id, collection, categoria, canto, versos, cita,
			source_file, source_sheet, row_no
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(
			r.ID, collection, string(r.Categoria), r.Canto, r.Versos, r.Cita,
			r.SourceFile, r.SourceSheet, r.RowNo,
		); err != nil {
			return 0, fmt.Errorf("failed to insert document %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return len(records), nil
}

// CountDocuments returns the number of documents in a collection,
// optionally filtered by category (pass model.CategoryUnknown for all).
func (s *Store) CountDocuments(collection string, categoria model.Category) (int, error) {
	var count int
	var err error
	if categoria.Valid() {
		err = s.db.QueryRow(`
			SELECT COUNT(*) FROM documents WHERE collection = ? AND categoria = ?
		`, collection, string(categoria)).Scan(&count)
	} else {
		err = s.db.QueryRow(`
			SELECT COUNT(*) FROM documents WHERE collection = ?
		`, collection).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

// CategoryCounts returns the per-category document counts of a
// collection.
func (s *Store) CategoryCounts(collection string) (map[model.Category]int, error) {
	rows, err := s.db.Query(`
		SELECT categoria, COUNT(*) FROM documents
		WHERE collection = ?
		GROUP BY categoria
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query category counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.Category]int)
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts[model.Category(cat)] = n
	}
	return counts, rows.Err()
}

// ListRecords returns every document of a collection in insertion order.
func (s *Store) ListRecords(collection string) ([]model.Record, error) {
	rows, err := s.db.Query(`
		SELECT id, categoria, canto, versos, cita, source_file, source_sheet, row_no
		FROM documents
		WHERE collection = ?
		ORDER BY rowid
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var r model.Record
		var cat string
		if err := rows.Scan(&r.ID, &cat, &r.Canto, &r.Versos, &r.Cita, &r.SourceFile, &r.SourceSheet, &r.RowNo); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		r.Categoria = model.Category(cat)
		records = append(records, r)
	}
	return records, rows.Err()
}

// ClearCollection removes every document of a collection and returns the
// number deleted.
func (s *Store) ClearCollection(collection string) (int, error) {
	res, err := s.db.Exec(`DELETE FROM documents WHERE collection = ?`, collection)
	if err != nil {
		return 0, fmt.Errorf("failed to clear collection: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
