package designer

// Key is a keyboard event as delivered by the host UI.
type Key struct {
	Name string
	// Ctrl is set for both Control and Meta (Cmd) modifiers.
	Ctrl  bool
	Shift bool
}

type Action int

const (
	ActionNone Action = iota
	ActionUndo
	ActionRedo
	ActionDelete
	// ActionSave asks the caller to save; the designer has no store of its own.
	ActionSave
)

// HandleKey runs the shortcut bound to k and reports which action it mapped to.
// Ctrl+Z undoes, Ctrl+Shift+Z redoes, Ctrl+S requests a save, Delete removes the
// selected element.
func (d *Designer) HandleKey(k Key) Action {
	switch {
	case k.Ctrl && (k.Name == "z" || k.Name == "Z"):
		if k.Shift {
			d.Redo()
			return ActionRedo
		}
		d.Undo()
		return ActionUndo
	case k.Ctrl && (k.Name == "s" || k.Name == "S"):
		return ActionSave
	case !k.Ctrl && (k.Name == "Delete" || k.Name == "Backspace"):
		if err := d.Delete(); err != nil {
			return ActionNone
		}
		return ActionDelete
	}
	return ActionNone
}
