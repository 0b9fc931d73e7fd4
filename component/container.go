package component

// Container owns an ordered sequence of children and renders by
// concatenating their lines in order. Grounded on
// original_source/crates/tau-tui/src/components/box_component.rs's
// children-vector handling, generalized to a standalone component with
// no padding/background of its own (PaddedBox composes one of these).
type Container struct {
	children []Component
}

// NewContainer returns an empty Container.
func NewContainer() *Container {
	return &Container{}
}

// Add appends child to the container.
func (c *Container) Add(child Component) {
	c.children = append(c.children, child)
}

// Remove deletes the child at index. Out-of-range index is a no-op.
func (c *Container) Remove(index int) {
	if index < 0 || index >= len(c.children) {
		return
	}
	c.children = append(c.children[:index], c.children[index+1:]...)
}

// Clear removes every child.
func (c *Container) Clear() {
	c.children = nil
}

// Len reports the number of children.
func (c *Container) Len() int { return len(c.children) }

// Child returns the child at index, or nil if out of range.
func (c *Container) Child(index int) Component {
	if index < 0 || index >= len(c.children) {
		return nil
	}
	return c.children[index]
}

// Render concatenates every child's lines, in order, each rendered at
// the same columnBudget.
func (c *Container) Render(columnBudget int) []string {
	var lines []string
	for _, child := range c.children {
		lines = append(lines, child.Render(columnBudget)...)
	}
	return lines
}

// HandleInput is a no-op: Container itself has no focus concept — the
// tui engine's focused-child tracking dispatches directly to a leaf.
func (c *Container) HandleInput(KeyEvent) {}

// Invalidate propagates to every child.
func (c *Container) Invalidate() {
	for _, child := range c.children {
		child.Invalidate()
	}
}
