package matrix

// Edge is a debounced key transition.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgePress
	EdgeRelease
)

const (
	// pressPattern: seven consecutive contact samples.
	pressPattern uint8 = 0b0111_1111
	// releasePattern: one contact sample aged past seven clean zeros.
	releasePattern uint8 = 0b1000_0000
)

// Debouncer keeps a 7-bit rolling contact history per key. The debounce is
// asymmetric: a press needs seven consecutive confirmations while a release
// needs a single confirmation preceded by seven clean zero samples, trading
// release latency for immunity to noisy break contacts.
type Debouncer struct {
	history []uint8
}

// NewDebouncer returns a Debouncer for nkeys keys, all histories zeroed.
func NewDebouncer(nkeys int) *Debouncer {
	return &Debouncer{history: make([]uint8, nkeys)}
}

// Sample folds one raw contact reading for a key into its history and
// reports the resulting edge, if any. pressed is the key's current logical
// state, owned by the caller; gating on it guarantees each boundary pattern
// fires its edge exactly once.
func (d *Debouncer) Sample(key int, contact bool, pressed bool) Edge {
	if contact {
		d.history[key] |= 1
	}

	edge := EdgeNone
	if d.history[key] == pressPattern && !pressed {
		edge = EdgePress
	}
	if d.history[key] == releasePattern && pressed {
		edge = EdgeRelease
	}

	d.history[key] <<= 1
	return edge
}

// NumKeys returns the number of keys tracked.
func (d *Debouncer) NumKeys() int { return len(d.history) }

// Reset zeroes all contact histories.
func (d *Debouncer) Reset() {
	for i := range d.history {
		d.history[i] = 0
	}
}
