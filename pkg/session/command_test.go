package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		key  int
		want Command
	}{
		{'q', CommandQuit},
		{'s', CommandSnapshot},
		{'c', CommandCyclePalette},
		{'+', CommandContrastUp},
		{'=', CommandContrastUp},
		{'-', CommandContrastDown},
		{'Q', CommandNone},
		{'x', CommandNone},
		{NoKey, CommandNone},
		{0x100 | 'q', CommandQuit}, // modifier bits above the low byte are ignored
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseKey(tt.key), "key %#x", tt.key)
	}
}

func TestCommand_String(t *testing.T) {
	assert.Equal(t, "contrast-down", CommandContrastDown.String())
	assert.Equal(t, "none", Command(99).String())
}
