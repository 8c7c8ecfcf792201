// Package sim provides a programmatic matrix scanner for tests and
// host-side harnesses: contacts are asserted and cleared by method call
// instead of electrically.
package sim

import "sync"

// Scanner implements matrix.Scanner over an in-memory contact table.
// Hold and Release may be called from any goroutine; the scan side
// (PullRow/ProbeColumn/ReleaseRows) is driven by the core's single scan
// goroutine.
type Scanner struct {
	mu       sync.Mutex
	rows     int
	cols     int
	contacts []bool
	row      int
}

// New returns a Scanner for a rows x cols matrix with no contacts closed.
func New(rows, cols int) *Scanner {
	return &Scanner{
		rows:     rows,
		cols:     cols,
		contacts: make([]bool, rows*cols),
		row:      -1,
	}
}

// Hold closes the contact at key index k.
func (s *Scanner) Hold(k int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if k >= 0 && k < len(s.contacts) {
		s.contacts[k] = true
	}
}

// Release opens the contact at key index k.
func (s *Scanner) Release(k int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if k >= 0 && k < len(s.contacts) {
		s.contacts[k] = false
	}
}

// ReleaseAll opens every contact.
func (s *Scanner) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.contacts {
		s.contacts[i] = false
	}
}

// PullRow selects the row to probe.
func (s *Scanner) PullRow(row int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.row = row
}

// ProbeColumn reads the contact at the pulled row and the given column.
func (s *Scanner) ProbeColumn(col int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.row < 0 || s.row >= s.rows || col < 0 || col >= s.cols {
		return false
	}
	return s.contacts[s.row*s.cols+col]
}

// ReleaseRows deselects the pulled row.
func (s *Scanner) ReleaseRows() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.row = -1
}
