package purchase

// Partition splits a persisted line set into the visible grid and the
// acknowledgment list. Lines whose variant no longer resolves against the
// catalog are surfaced separately so the user can acknowledge the removal,
// unless stock was already received against them: those represent real
// historical cost and must stay in the main grid.
func Partition(lines []OrderLine) (visible, removed []OrderLine) {
	var kept, removedWithReceipts []OrderLine
	for _, l := range lines {
		switch {
		case !l.IsRemoved:
			kept = append(kept, l)
		case l.QtyReceived > 0:
			removedWithReceipts = append(removedWithReceipts, l)
		default:
			removed = append(removed, l)
		}
	}
	visible = Renumber(append(kept, removedWithReceipts...))
	removed = Renumber(removed)
	return visible, removed
}

// Renumber assigns 1-based positions in slice order. It returns a new slice
// and leaves the input untouched.
func Renumber(lines []OrderLine) []OrderLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]OrderLine, len(lines))
	copy(out, lines)
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}
