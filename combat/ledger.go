package combat

// Ledger is the set of handles already marked for removal during one
// resolution pass. A handle is in the ledger only after its remove command
// has been queued.
type Ledger struct {
	marked map[Handle]struct{}
	order  []Handle
}

// NewLedger returns an empty ledger
func NewLedger() *Ledger {
	return &Ledger{marked: make(map[Handle]struct{}, 16)}
}

// TryMark records h and returns true if it was not already present
func (l *Ledger) TryMark(h Handle) bool {
	if _, ok := l.marked[h]; ok {
		return false
	}
	l.marked[h] = struct{}{}
	l.order = append(l.order, h)
	return true
}

// Contains reports whether h was marked earlier in this pass
func (l *Ledger) Contains(h Handle) bool {
	_, ok := l.marked[h]
	return ok
}

// Len returns the number of marked handles
func (l *Ledger) Len() int {
	return len(l.order)
}

// Handles returns the marked handles in the order they were marked
func (l *Ledger) Handles() []Handle {
	out := make([]Handle, len(l.order))
	copy(out, l.order)
	return out
}
