package display

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/poet/logger"
)

func TestShouldOutputJSON(t *testing.T) {
	cmd := &cobra.Command{Use: "ls"}
	cmd.Flags().Bool("json", false, "")

	assert.False(t, ShouldOutputJSON(cmd))

	require.NoError(t, cmd.Flags().Set("json", "true"))
	assert.True(t, ShouldOutputJSON(cmd))

	logger.JSONOutput = true
	t.Cleanup(func() { logger.JSONOutput = false })
	assert.True(t, ShouldOutputJSON(nil))
	assert.True(t, ShouldOutputJSON(&cobra.Command{Use: "bare"}))

	require.NoError(t, cmd.Flags().Set("json", "false"))
	assert.False(t, ShouldOutputJSON(cmd), "explicit flag beats JSON logging")
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputJSON(&buf, map[string]int{"count": 2}))
	assert.Equal(t, "{\n  \"count\": 2\n}\n", buf.String())
}
