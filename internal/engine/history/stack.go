package history

// ChangeKind identifies what produced a content change.
type ChangeKind uint8

const (
	// ChangeUpdate is an ordinary edit.
	ChangeUpdate ChangeKind = iota
	// ChangeUndo restored a snapshot from the undo stack.
	ChangeUndo
	// ChangeRedo restored a snapshot from the redo stack.
	ChangeRedo
)

// String returns the change kind name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeUpdate:
		return "update"
	case ChangeUndo:
		return "undo"
	case ChangeRedo:
		return "redo"
	default:
		return "unknown"
	}
}

// Change describes a content change reported to observers.
type Change struct {
	Kind    ChangeKind
	Content string
	Depth   int // undo-stack size after the change
}

// Observer is called after every content change.
type Observer func(Change)

// History manages the buffer content and its undo/redo snapshots.
// It is not safe for concurrent use; the dispatcher is its only writer.
type History struct {
	content   string
	undoStack []string
	redoStack []string

	// Configuration
	maxEntries int // 0 means unbounded
	observer   Observer
}

// Option configures a History.
type Option func(*History)

// WithMaxEntries caps the undo stack. Oldest snapshots are dropped first.
// Zero or a negative value means unbounded.
func WithMaxEntries(max int) Option {
	return func(h *History) {
		if max < 0 {
			max = 0
		}
		h.maxEntries = max
	}
}

// WithObserver registers a change observer.
func WithObserver(fn Observer) Option {
	return func(h *History) {
		h.observer = fn
	}
}

// New creates a history holding the given initial content.
func New(initial string, opts ...Option) *History {
	h := &History{content: initial}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Update replaces the content, recording the previous content for undo.
// Clears the redo stack.
func (h *History) Update(content string) {
	h.undoStack = append(h.undoStack, h.content)
	h.redoStack = nil

	if h.maxEntries > 0 && len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = append([]string(nil), h.undoStack[excess:]...)
	}

	h.content = content
	h.notify(ChangeUpdate)
}

// Undo restores the most recent snapshot.
// Returns false without changing anything if there is nothing to undo.
func (h *History) Undo() bool {
	if len(h.undoStack) == 0 {
		return false
	}

	last := len(h.undoStack) - 1
	previous := h.undoStack[last]
	h.undoStack = h.undoStack[:last]
	h.redoStack = append(h.redoStack, h.content)
	h.content = previous

	h.notify(ChangeUndo)
	return true
}

// Redo re-applies the most recently undone content.
// Returns false without changing anything if there is nothing to redo.
func (h *History) Redo() bool {
	if len(h.redoStack) == 0 {
		return false
	}

	last := len(h.redoStack) - 1
	next := h.redoStack[last]
	h.redoStack = h.redoStack[:last]
	h.undoStack = append(h.undoStack, h.content)
	h.content = next

	h.notify(ChangeRedo)
	return true
}

// Content returns the current content.
func (h *History) Content() string {
	return h.content
}

// Depth returns the number of undo snapshots available.
func (h *History) Depth() int {
	return len(h.undoStack)
}

// RedoDepth returns the number of redo snapshots available.
func (h *History) RedoDepth() int {
	return len(h.redoStack)
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Clear drops all snapshots, keeping the current content.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// MaxEntries returns the undo cap (0 means unbounded).
func (h *History) MaxEntries() int {
	return h.maxEntries
}

func (h *History) notify(kind ChangeKind) {
	if h.observer == nil {
		return
	}
	h.observer(Change{
		Kind:    kind,
		Content: h.content,
		Depth:   len(h.undoStack),
	})
}
