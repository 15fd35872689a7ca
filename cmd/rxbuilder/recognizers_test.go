package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/praetorian-inc/rxbuilder/pkg/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRecognizersList(t *testing.T) {
	// Create a buffer to capture output
	var buf bytes.Buffer

	// Create a test command with our buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	// Reset flags for test
	recognizersFlags = recognizerFlags{}
	recognizersFormat = "table"

	// Execute recognizers list command (using builtin recognizers)
	err := runRecognizersList(cmd, []string{})
	require.NoError(t, err)

	// Verify output contains table headers and a known recognizer
	output := buf.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Priority")
	assert.Contains(t, output, "net.ipv4")
}

func TestRunRecognizersListJSON(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	recognizersFlags = recognizerFlags{include: `^time\.`}
	recognizersFormat = "json"
	t.Cleanup(func() { recognizersFlags = recognizerFlags{} })

	err := runRecognizersList(cmd, []string{})
	require.NoError(t, err)

	var views []types.RecognizerView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &views))
	require.NotEmpty(t, views)
	for _, v := range views {
		assert.Regexp(t, `^time\.`, v.ID)
	}
}

func TestRunRecognizersListCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recognizers.yml")
	require.NoError(t, os.WriteFile(path, []byte(`recognizers:
  - id: custom.ticket
    name: Ticket
    detect: '\bTCK-[0-9]+\b'
    emit: 'TCK-\d+'
    priority: 70
`), 0o600))

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	recognizersFlags = recognizerFlags{path: path}
	recognizersFormat = "table"
	t.Cleanup(func() { recognizersFlags = recognizerFlags{} })

	require.NoError(t, runRecognizersList(cmd, []string{}))
	assert.Contains(t, buf.String(), "custom.ticket")
	assert.NotContains(t, buf.String(), "net.ipv4")
}

func TestRunRecognizersListUnknownFormat(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	recognizersFlags = recognizerFlags{}
	recognizersFormat = "xml"
	t.Cleanup(func() { recognizersFormat = "table" })

	err := runRecognizersList(cmd, []string{})
	assert.ErrorContains(t, err, "unknown output format")
}
