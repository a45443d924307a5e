package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/memlab/internal/sizefmt"
	"github.com/joshuapare/memlab/lab"
	"github.com/joshuapare/memlab/lab/catalog"
	"github.com/joshuapare/memlab/lab/handle"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every global flag to its default.
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	configPath = ""
	tempDir = ""
	sentinel = 0
	preload = nil
}

// newTestSession returns a session over three heap entries and closes it when
// the test ends.
func newTestSession(t *testing.T) *lab.Session {
	t.Helper()
	c, err := catalog.New(catalog.Table{Entries: []catalog.Entry{
		{Strategy: handle.HeapZeroed, Size: sizefmt.MiB},
		{Strategy: handle.HeapFilled, Size: sizefmt.MiB},
		{Strategy: handle.StackResident, Size: 256 * sizefmt.KiB},
	}})
	require.NoError(t, err)
	s := lab.NewSession(c)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

// writeTable writes a YAML catalog table into a temp dir and returns its path.
func writeTable(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("output is not valid JSON: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, exp := range expected {
		if !strings.Contains(output, exp) {
			t.Errorf("output missing expected string %q\nOutput: %s", exp, output)
		}
	}
}

// assertNotContains checks that output doesn't contain any of the strings
func assertNotContains(t *testing.T, output string, unexpected []string) {
	t.Helper()
	for _, unexp := range unexpected {
		if strings.Contains(output, unexp) {
			t.Errorf("output contains unexpected string %q\nOutput: %s", unexp, output)
		}
	}
}
