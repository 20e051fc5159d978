package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"genrate", "generate"},
		{"generae", "generate"},
		{"descibe", "describe"},
		{"lsit", "list"},
		{"wach", "watch"},
		{"mpc", "mcp"},
		{"versio", "version"},
		{"hep", "help"},

		// Too far, no suggestion
		{"xyz", ""},
		{"foobar", ""},
		{"regenerateall", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, suggestCommand(tt.input))
		})
	}
}

func TestEditDistance(t *testing.T) {
	assert.Equal(t, 0, editDistance("list", "list"))
	assert.Equal(t, 1, editDistance("lst", "list"))
	assert.Equal(t, 4, editDistance("", "list"))
	assert.Equal(t, 3, editDistance("kitten", "sitting"))
}
