package designer

// DefaultHistoryCap bounds the number of snapshots kept for undo.
const DefaultHistoryCap = 50

// History is a bounded list of document snapshots with a cursor. Pushing drops
// everything after the cursor; undo and redo only move the cursor.
type History struct {
	snapshots []Document
	index     int
	cap       int
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	return &History{index: -1, cap: capacity}
}

func (h *History) Push(d Document) {
	h.snapshots = append(h.snapshots[:h.index+1], d.Clone())
	h.index++
	if len(h.snapshots) > h.cap {
		h.snapshots = h.snapshots[1:]
		h.index--
	}
}

// Reset replaces the whole history with a single snapshot.
func (h *History) Reset(d Document) {
	h.snapshots = nil
	h.index = -1
	h.Push(d)
}

func (h *History) CanUndo() bool { return h.index > 0 }

func (h *History) CanRedo() bool { return h.index >= 0 && h.index < len(h.snapshots)-1 }

func (h *History) Undo() (Document, bool) {
	if !h.CanUndo() {
		return Document{}, false
	}
	h.index--
	return h.snapshots[h.index].Clone(), true
}

func (h *History) Redo() (Document, bool) {
	if !h.CanRedo() {
		return Document{}, false
	}
	h.index++
	return h.snapshots[h.index].Clone(), true
}

func (h *History) Len() int { return len(h.snapshots) }
