// Package matrix models the physical key matrix: the electrical scan
// collaborator and the debounce engine that turns raw contact samples into
// clean press/release edges.
package matrix

// Scanner drives the matrix electrically. The scan loop pulls one row at a
// time, probes every column, then releases all rows before the next pass.
type Scanner interface {
	PullRow(row int)
	ProbeColumn(col int) bool
	ReleaseRows()
}
