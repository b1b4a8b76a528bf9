// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line    string
		ok      bool
		command string
		arg     string
	}{
		{"", false, "", ""},
		{"   \t ", false, "", ""},
		{"ls", true, "ls", ""},
		{"  LS  ", true, "ls", ""},
		{"cd blogs", true, "cd", "blogs"},
		{"cd   blogs/Hello World  ", true, "cd", "blogs/Hello World"},
		{"echo  a   b", true, "echo", "a   b"},
		{"Theme\tDark", true, "theme", "Dark"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := Parse(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.command, got.Command)
			assert.Equal(t, tt.arg, got.Arg)
			assert.Equal(t, tt.line, got.Raw)
		})
	}
}

func TestSplitInput(t *testing.T) {
	name, arg, hasArg := SplitInput("cd")
	assert.Equal(t, "cd", name)
	assert.Empty(t, arg)
	assert.False(t, hasArg)

	name, arg, hasArg = SplitInput("cd ")
	assert.Equal(t, "cd", name)
	assert.Empty(t, arg)
	assert.True(t, hasArg)

	_, arg, _ = SplitInput("cd  blogs/Go ")
	assert.Equal(t, "blogs/Go ", arg)
}

func TestIsPartialCommand(t *testing.T) {
	assert.True(t, IsPartialCommand("pr"))
	assert.False(t, IsPartialCommand(""))
	assert.False(t, IsPartialCommand("cd "))
}
