package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.Equal(t, "cc", String("cc"))
	assert.Equal(t, "", String(3))
	assert.Equal(t, "", String(nil))
}

func TestInt(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{3, 3},
		{int64(300), 300},
		{float64(2.9), 2},
		{"3", 0},
		{nil, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Int(tt.in), "%#v", tt.in)
	}
}

func TestBool(t *testing.T) {
	assert.True(t, Bool(true))
	assert.False(t, Bool("true"))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Strings([]string{"a", "b"}))
	assert.Equal(t, []string{"a", "c"}, Strings([]any{"a", 1, "c"}))
	assert.Nil(t, Strings("a"))
}
