package extract

// FilenameKey is the synthetic key every record carries.
const FilenameKey = "filename"

// Record is a best-effort field-name-to-value mapping recovered from
// free-form model output. Partial by design: any subset of the requested
// fields may be missing and unrequested extra keys may be present.
type Record map[string]any

// NewRecord seeds a record with the authoritative page label.
func NewRecord(label string) Record {
	return Record{FilenameKey: label}
}

// Merge copies m's pairs into r. The seeded filename stays authoritative
// even when the model emitted its own.
func (r Record) Merge(m map[string]any) {
	for k, v := range m {
		if k == FilenameKey {
			continue
		}
		r[k] = v
	}
}

// Structured reports whether extraction recovered anything beyond the
// filename key.
func (r Record) Structured() bool {
	return len(r) > 1
}
