package dispatcher

// Action identifies what a dispatched event did.
type Action uint8

const (
	// ActionNone means no rule matched.
	ActionNone Action = iota
	ActionSave
	ActionUndo
	ActionRedo
	ActionToggleComment
	ActionChordArm
	ActionChordSuccess
	ActionIndent
	ActionOutdent
	ActionNewline
	ActionInput
)

// String returns the action name used in log records.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionSave:
		return "Save"
	case ActionUndo:
		return "Undo"
	case ActionRedo:
		return "Redo"
	case ActionToggleComment:
		return "Toggle Comment"
	case ActionChordArm:
		return "Chord Armed"
	case ActionChordSuccess:
		return "Chord Success"
	case ActionIndent:
		return "Indent"
	case ActionOutdent:
		return "Outdent"
	case ActionNewline:
		return "Newline"
	case ActionInput:
		return "Input"
	default:
		return "Unknown"
	}
}

// Result is the outcome of dispatching one event.
type Result struct {
	// Action is the rule that matched.
	Action Action

	// Handled is true if the caller must suppress the native behavior.
	Handled bool

	// Changed is true if the content changed.
	Changed bool

	// Content is the content after the event.
	Content string

	// SelectionStart and SelectionEnd are the selection to apply.
	SelectionStart int
	SelectionEnd   int
}
