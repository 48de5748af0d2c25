package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintCommands(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printCommands(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))

	out := buf.String()
	for _, name := range []string{"start", "otp", "password", "2fa", "unknown"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "text command only")
}

func TestCommandsSubcommand(t *testing.T) {
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetArgs([]string{"commands"})
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetArgs(nil)
	})

	require.NoError(t, RootCmd.Execute())
	assert.Contains(t, buf.String(), "password")
}
