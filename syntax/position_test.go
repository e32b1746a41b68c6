package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineIndex(t *testing.T) {
	li := newLineIndex("a\n  bé c")

	assert.Equal(t, Position{Line: 1, Character: 0, Offset: 0}, li.position(0))
	assert.Equal(t, Position{Line: 2, Character: 2, Offset: 4}, li.position(4))
	// é is two bytes but one column
	assert.Equal(t, Position{Line: 2, Character: 4, Offset: 7}, li.position(7))
	assert.Equal(t, "2:6", li.position(8).String())
	assert.Equal(t, li.position(8), li.at(2, 6))
	assert.Equal(t, 9, li.position(100).Offset)
}

func TestRange_Contains(t *testing.T) {
	r := Range{Start: Position{Offset: 2}, End: Position{Offset: 5}}
	assert.True(t, r.Contains(Position{Offset: 2}))
	assert.True(t, r.Contains(Position{Offset: 4}))
	assert.False(t, r.Contains(Position{Offset: 5}))
	assert.False(t, r.Contains(Position{Offset: 1}))
}
