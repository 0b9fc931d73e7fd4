package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpacerRendersNEmptyLines(t *testing.T) {
	s := NewSpacer(3)
	lines := s.Render(80)
	assert.Equal(t, []string{"", "", ""}, lines)
}

func TestSpacerZeroLinesRendersEmpty(t *testing.T) {
	s := NewSpacer(0)
	assert.Empty(t, s.Render(80))
}

func TestSpacerSetLinesUpdatesCount(t *testing.T) {
	s := NewSpacer(1)
	s.SetLines(5)
	lines := s.Render(80)
	assert.Len(t, lines, 5)
	for _, l := range lines {
		assert.Empty(t, l)
	}
}

func TestSpacerWidthIsIgnored(t *testing.T) {
	s := NewSpacer(2)
	assert.Equal(t, s.Render(10), s.Render(200))
}

func TestSpacerIsValidComponent(t *testing.T) {
	var _ Component = NewSpacer(1)
}
