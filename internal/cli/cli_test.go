package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const journeyCSV = "Journey Event Sample\n" +
	"Journey ID,,Event Time Stamp,GPS Date Time,Latitude,Longitude,Horizontal Speed,Road Speed Limit\n" +
	"J1,,03/04/2024,03/04/2024,51.5,-0.12,30,40\n" +
	"J2,,04/04/2024,04/04/2024,52.1,1.5,0,30\n"

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journeys.csv")
	require.NoError(t, os.WriteFile(path, []byte(journeyCSV), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(BuildInfo{Version: "test", Commit: "abc", Date: "today"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHeaderCommand(t *testing.T) {
	out, err := run(t, "header", writeFixture(t))
	require.NoError(t, err)
	assert.Equal(t, "1", strings.TrimSpace(out))
}

func TestIngestCommand(t *testing.T) {
	src := writeFixture(t)
	dst := filepath.Join(t.TempDir(), "tidy.csv")

	out, err := run(t, "ingest", src,
		"--date-col", "Event Time Stamp", "--date-col", "GPS Date Time",
		"--validate", "--out", dst, "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "Header row: 1")
	assert.Contains(t, out, "Rows: 2  Columns: 7")
	assert.Contains(t, out, "Dropped: Unnamed: 1")
	assert.Contains(t, out, "Schema: OK")
	assert.FileExists(t, dst)
}

func TestValidateCommand_Fails(t *testing.T) {
	_, err := run(t, "validate", writeFixture(t), "--log-level", "error")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Event Time Stamp")
}

func TestIngestCommand_BadHeaderFlag(t *testing.T) {
	_, err := run(t, "ingest", writeFixture(t), "--header", "top")
	assert.Error(t, err)
}

func TestDescribeCommand(t *testing.T) {
	out, err := run(t, "describe", writeFixture(t), "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Latitude")
	assert.Contains(t, out, "numeric")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "journeyload test")
}

func TestHeaderCommand_ScanRows(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 42; i++ {
		b.WriteString("7\n")
	}
	b.WriteString("Journey ID,Latitude,Longitude\n")
	b.WriteString("J1,51.5,-0.12\n")
	path := filepath.Join(t.TempDir(), "deep.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	tests := []struct {
		name     string
		scanRows string
		expected string
	}{
		{"Wide window finds deep header", "50", "42"},
		{"Default window", "40", "0"},
		{"Zero uses default", "0", "0"},
		{"Negative uses default", "-3", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "header", path, "--scan-rows="+tt.scanRows)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, strings.TrimSpace(out))
		})
	}
}
