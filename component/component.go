package component

// Key identifies a named key a KeyEvent carries, distinct from a
// printable rune (which arrives via KeyChar + Rune).
type Key int

const (
	KeyNone Key = iota
	KeyChar
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyEsc
	KeyTab
)

// KeyEvent is the terminal input event Components handle. Ctrl/Shift/Alt
// mirror the modifier flags every backend (terminal.OS's reader,
// terminal.Mock's scripted input) normalizes raw escape sequences into.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Ctrl  bool
	Shift bool
	Alt   bool
}

// Component is the capability every renderable node in the tree
// implements. Render must be safe to call repeatedly with the same
// width (idempotent absent a mutation), and HandleInput/Invalidate
// default to no-ops via the embeddable Base type below.
type Component interface {
	// Render produces this component's lines at the given column
	// budget. The returned lines' visible width must equal
	// columnBudget whenever the component fills, per package doc.
	Render(columnBudget int) []string
	// HandleInput processes a single key event, typically because this
	// component currently has focus.
	HandleInput(event KeyEvent)
	// Invalidate drops any cached render state, forcing the next
	// Render to recompute from scratch.
	Invalidate()
}

// Base gives a Component default (no-op) HandleInput/Invalidate, so
// leaf components that need neither (Spacer) need not define them.
type Base struct{}

func (Base) HandleInput(KeyEvent) {}
func (Base) Invalidate()          {}
