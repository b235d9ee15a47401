package classifier

// Scanner is a cursor over the fields of one form. Rules peek at the
// current field, advance past what they consume, and rewind to a saved
// position when a multi-field parse falls through.
type Scanner struct {
	fields []Field
	cursor int
}

// NewScanner returns a scanner positioned at the first field.
func NewScanner(fields []Field) *Scanner {
	return &Scanner{fields: fields}
}

// Peek returns the current field without consuming it, or nil when the
// scanner is exhausted.
func (s *Scanner) Peek() *Field {
	if s.Done() {
		return nil
	}
	return &s.fields[s.cursor]
}

// Advance consumes the current field.
func (s *Scanner) Advance() {
	if !s.Done() {
		s.cursor++
	}
}

// Done reports whether all fields have been consumed.
func (s *Scanner) Done() bool {
	return s.cursor >= len(s.fields)
}

// Pos returns the cursor position, for a later Rewind.
func (s *Scanner) Pos() int {
	return s.cursor
}

// Rewind moves the cursor back to a position previously obtained from Pos.
func (s *Scanner) Rewind(pos int) {
	if pos >= 0 && pos <= len(s.fields) {
		s.cursor = pos
	}
}
