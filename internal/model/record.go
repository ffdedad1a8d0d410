package model

// Record is one extracted text fragment. Canto and Versos are free-form
// and optional; Cita is mandatory — a record with an empty Cita is
// invalid and is dropped during extraction, never emitted.
type Record struct {
	ID          string   `json:"id"`
	Categoria   Category `json:"categoria"`
	Canto       string   `json:"canto,omitempty"`
	Versos      string   `json:"versos,omitempty"`
	Cita        string   `json:"cita"`
	SourceFile  string   `json:"sourceFile"`
	SourceSheet string   `json:"sourceSheet"`
	RowNo       int      `json:"rowNo"` // 1-based row in the source sheet
}

// Valid reports whether the record may be persisted.
func (r *Record) Valid() bool {
	return r.Cita != "" && r.Categoria.Valid()
}
