package component

import (
	"fmt"
	"strings"

	"github.com/joeycumines/go-asynctui/ansitext"
)

// SelectItem is a single entry in a SelectList.
type SelectItem struct {
	Value       string
	Label       string
	Description string
	HasDesc     bool
}

// NewSelectItem returns an item with no description.
func NewSelectItem(value, label string) SelectItem {
	return SelectItem{Value: value, Label: label}
}

// NewSelectItemWithDescription returns an item rendered with a
// " - description" suffix.
func NewSelectItemWithDescription(value, label, description string) SelectItem {
	return SelectItem{Value: value, Label: label, Description: description, HasDesc: true}
}

// SelectList is a filterable, scrollable, arrow-key-navigable list.
// Grounded on
// original_source/crates/tau-tui/src/components/select_list.rs.
type SelectList struct {
	items       []SelectItem
	maxVisible  int
	selected    int
	scrollOff   int
	filter      string
	filteredIdx []int

	OnSelect func(item SelectItem)
	OnCancel func()
}

// NewSelectList returns a SelectList over items, showing at most
// maxVisible rows at once (clamped to at least 1).
func NewSelectList(items []SelectItem, maxVisible int) *SelectList {
	if maxVisible < 1 {
		maxVisible = 1
	}
	idx := make([]int, len(items))
	for i := range items {
		idx[i] = i
	}
	return &SelectList{items: items, maxVisible: maxVisible, filteredIdx: idx}
}

// SelectedItem returns the currently selected item, if any.
func (s *SelectList) SelectedItem() (SelectItem, bool) {
	if s.selected < 0 || s.selected >= len(s.filteredIdx) {
		return SelectItem{}, false
	}
	return s.items[s.filteredIdx[s.selected]], true
}

// SetFilter keeps items whose label, lowercased, starts with query
// lowercased, and resets selection and scroll to the top.
func (s *SelectList) SetFilter(query string) {
	s.filter = query
	qLower := strings.ToLower(query)
	s.filteredIdx = s.filteredIdx[:0]
	for i, item := range s.items {
		if strings.HasPrefix(strings.ToLower(item.Label), qLower) {
			s.filteredIdx = append(s.filteredIdx, i)
		}
	}
	s.selected = 0
	s.scrollOff = 0
}

func (s *SelectList) moveUp() {
	count := len(s.filteredIdx)
	if count == 0 {
		return
	}
	if s.selected == 0 {
		s.selected = count - 1
	} else {
		s.selected--
	}
	s.ensureVisible()
}

func (s *SelectList) moveDown() {
	count := len(s.filteredIdx)
	if count == 0 {
		return
	}
	s.selected = (s.selected + 1) % count
	s.ensureVisible()
}

func (s *SelectList) ensureVisible() {
	if s.selected < s.scrollOff {
		s.scrollOff = s.selected
	}
	if s.selected >= s.scrollOff+s.maxVisible {
		s.scrollOff = s.selected - s.maxVisible + 1
	}
}

func (s *SelectList) Invalidate() {}

func (s *SelectList) Render(width int) []string {
	count := len(s.filteredIdx)
	if count == 0 {
		msg := "(no items)"
		pad := width - ansitext.VisibleColumns(msg)
		if pad < 0 {
			pad = 0
		}
		return []string{msg + strings.Repeat(" ", pad)}
	}

	visibleCount := count
	if visibleCount > s.maxVisible {
		visibleCount = s.maxVisible
	}
	visibleEnd := s.scrollOff + visibleCount
	if visibleEnd > count {
		visibleEnd = count
	}

	lines := make([]string, 0, visibleCount+1)
	for i := s.scrollOff; i < visibleEnd; i++ {
		item := s.items[s.filteredIdx[i]]
		isSelected := i == s.selected

		var b strings.Builder
		if isSelected {
			b.WriteString("\x1b[1;7m→ ")
		} else {
			b.WriteString("  ")
		}
		b.WriteString(item.Label)
		if item.HasDesc {
			b.WriteString(" - ")
			b.WriteString(item.Description)
		}
		content := b.String()
		pad := width - ansitext.VisibleColumns(content)
		if pad < 0 {
			pad = 0
		}
		if isSelected {
			lines = append(lines, content+strings.Repeat(" ", pad)+sgrReset)
		} else {
			lines = append(lines, content+strings.Repeat(" ", pad))
		}
	}

	if count > s.maxVisible {
		indicator := fmt.Sprintf("(%d/%d)", s.selected+1, count)
		pad := width - ansitext.VisibleColumns(indicator)
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, strings.Repeat(" ", pad)+indicator)
	}

	return lines
}

func (s *SelectList) HandleInput(event KeyEvent) {
	switch event.Key {
	case KeyUp:
		s.moveUp()
	case KeyDown:
		s.moveDown()
	case KeyEnter:
		if item, ok := s.SelectedItem(); ok && s.OnSelect != nil {
			s.OnSelect(item)
		}
	case KeyEsc:
		if s.OnCancel != nil {
			s.OnCancel()
		}
	}
}
