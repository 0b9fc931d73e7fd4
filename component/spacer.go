package component

// Spacer renders a fixed number of empty lines for vertical spacing.
// The column budget is ignored. Grounded on
// original_source/crates/tau-tui/src/components/spacer.rs.
type Spacer struct {
	Base
	lines int
}

// NewSpacer returns a Spacer rendering n empty lines.
func NewSpacer(n int) *Spacer {
	return &Spacer{lines: n}
}

// SetLines updates the number of empty lines rendered.
func (s *Spacer) SetLines(n int) { s.lines = n }

func (s *Spacer) Render(int) []string {
	if s.lines <= 0 {
		return nil
	}
	lines := make([]string, s.lines)
	return lines
}
