package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_String(t *testing.T) {
	assert.Equal(t, "ArrowDown", KeyDown.String())
	assert.Equal(t, "Escape", KeyEscape.String())
	assert.Equal(t, "None", Key(99).String())
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 2, Y: 1, Width: 10, Height: 3}

	assert.True(t, r.Contains(2, 1))
	assert.True(t, r.Contains(11, 3))
	assert.False(t, r.Contains(12, 1))
	assert.False(t, r.Contains(2, 4))
	assert.False(t, r.Contains(1, 1))
}

func TestRect_Empty(t *testing.T) {
	assert.True(t, Rect{}.Empty())
	assert.False(t, Rect{Width: 1, Height: 1}.Empty())
}
