package report

// Queue tracks the held non-modifier keys (at most Slots, most recent first)
// and the modifier bitmask. Every mutation synchronously transmits the
// assembled report.
//
// Overflow policy: pressing a 7th distinct key silently evicts the
// least-recently-pressed code from the report. No release is signalled for
// the evicted key; the host simply stops seeing it. This data loss is by
// design and matches the fixed report width.
type Queue struct {
	slots     [Slots]uint8
	modifiers uint8
	tx        Transmitter
}

// NewQueue returns an empty Queue transmitting through tx.
func NewQueue(tx Transmitter) *Queue {
	return &Queue{tx: tx}
}

// Press inserts a normal-key usage code at the front of the report,
// shifting every held code back one slot and dropping the oldest.
func (q *Queue) Press(code uint8) error {
	for i := Slots - 1; i > 0; i-- {
		q.slots[i] = q.slots[i-1]
	}
	q.slots[0] = code
	return q.send()
}

// Release removes a normal-key usage code from the report, shifting later
// codes forward and zero-filling the freed slot. A code not present (for
// example one already evicted by the overflow policy) is a no-op, but the
// report is still retransmitted.
func (q *Queue) Release(code uint8) error {
	i := 0
	for ; i < Slots; i++ {
		if q.slots[i] == code {
			break
		}
	}
	for ; i < Slots; i++ {
		if i+1 < Slots {
			q.slots[i] = q.slots[i+1]
		} else {
			q.slots[i] = 0
		}
	}
	return q.send()
}

// PressModifier ORs a modifier bitmask into the report.
func (q *Queue) PressModifier(mask uint8) error {
	q.modifiers |= mask
	return q.send()
}

// ReleaseModifier clears a modifier bitmask from the report.
func (q *Queue) ReleaseModifier(mask uint8) error {
	q.modifiers &^= mask
	return q.send()
}

// Clear empties all slots and the modifier bitmask and transmits the empty
// report, so no host-side key is left stuck held.
func (q *Queue) Clear() error {
	q.slots = [Slots]uint8{}
	q.modifiers = 0
	return q.send()
}

// Snapshot returns the report as it would be transmitted now.
func (q *Queue) Snapshot() Report {
	return Report{Keys: q.slots, Modifiers: q.modifiers}
}

func (q *Queue) send() error {
	return q.tx.Send(Report{Keys: q.slots, Modifiers: q.modifiers})
}
