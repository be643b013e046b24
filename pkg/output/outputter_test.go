package output

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tongchengbin/portscan/pkg/scanner"
)

func sampleResult() *scanner.Result {
	now := time.Now()
	return &scanner.Result{
		Target: scanner.NewTarget("example.com", "93.184.216.34"),
		Outcomes: []*scanner.Outcome{
			{Port: 22, Status: scanner.StatusOpen, Service: "ssh", Banner: "SSH-2.0-OpenSSH_8.9"},
			{Port: 23, Status: scanner.StatusClosed},
			{Port: 24, Status: scanner.StatusFiltered, Reason: "connect timeout"},
		},
		Open:      1,
		Probed:    3,
		Total:     3,
		Complete:  true,
		StartedAt: now,
		EndedAt:   now.Add(time.Second),
		Duration:  1.0,
	}
}

func TestJSONOuterAppendsNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	outer := NewJSONOuter(path)

	require.NoError(t, outer.Output(sampleResult()))
	require.NoError(t, outer.Output(sampleResult()))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	lines := 0
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &decoded))
		assert.Equal(t, float64(1), decoded["open"])
		lines++
	}
	assert.Equal(t, 2, lines)
}

func TestTextOuter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	outer := NewTextOuter(path)
	require.NoError(t, outer.Output(sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "example.com (93.184.216.34)")
	assert.Contains(t, text, "22/tcp open")
	assert.Contains(t, text, "ssh")
	assert.Contains(t, text, "filtered")
}

func consoleOutput(t *testing.T, verbose, silent bool) string {
	t.Helper()
	var buf bytes.Buffer
	outer := NewConsoleOuter(verbose, silent, true)
	outer.Writer = &buf
	require.NoError(t, outer.Output(sampleResult()))
	return buf.String()
}

func TestConsoleOuterDefaultShowsOpenOnly(t *testing.T) {
	got := consoleOutput(t, false, false)
	assert.Contains(t, got, "22/tcp")
	assert.Contains(t, got, "open")
	assert.Contains(t, got, "ssh")
	assert.Contains(t, got, "SSH-2.0-OpenSSH_8.9")
	assert.NotContains(t, got, "23/tcp")
	assert.NotContains(t, got, "closed")
	assert.NotContains(t, got, "filtered")
}

func TestConsoleOuterVerboseShowsAllStatuses(t *testing.T) {
	got := consoleOutput(t, true, false)
	assert.Contains(t, got, "22/tcp")
	assert.Contains(t, got, "23/tcp")
	assert.Contains(t, got, "24/tcp")
	assert.Contains(t, got, "closed")
	assert.Contains(t, got, "filtered")
}

func TestConsoleOuterSilentPrintsOpenPortsOnly(t *testing.T) {
	got := consoleOutput(t, false, true)
	assert.Equal(t, "22\n", got)
}

func TestConsoleOuterNoColorHasNoEscapes(t *testing.T) {
	got := consoleOutput(t, true, false)
	assert.NotContains(t, got, "\x1b[")
}
