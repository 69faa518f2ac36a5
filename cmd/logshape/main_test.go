package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rugwirobaker/logshape/internal/config"
	"github.com/rugwirobaker/logshape/internal/iostreams"
	"github.com/rugwirobaker/logshape/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "2024/01/01  10:00:00  INFO  /app/main  started\n" +
	"2024/01/01  10:00:01  WARN  disk nearly full\n"

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Run(context.Background(), iostreams.NewStream(nil, &out, &errOut), args...)
	return code, out.String(), errOut.String()
}

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeLog(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRunWritesCSVInWorkingDirectory(t *testing.T) {
	dir := inTempDir(t)
	input := writeLog(t, dir, sample)

	code, out, _ := run(t, input)

	assert.Equal(t, 0, code)
	assert.Equal(t,
		"warning: a row near line 2 has data that could not be comma-separated properly\n"+
			"Processing finished.\n",
		out)

	data, err := os.ReadFile(filepath.Join(dir, "log.csv"))
	require.NoError(t, err)
	assert.Equal(t,
		"timestamp,messageType,path,message\n"+
			"2024/01/01 10:00:00,INFO,/app/main,started\n"+
			"2024/01/01 10:00:01,WARN,disk nearly full\n",
		string(data))
}

func TestRunMissingArgument(t *testing.T) {
	inTempDir(t)

	code, _, errOut := run(t)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "accepts 1 arg(s), received 0")
}

func TestRunMissingInputIsPermissive(t *testing.T) {
	dir := inTempDir(t)

	code, out, errOut := run(t, filepath.Join(dir, "missing.log"))

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Processing finished.")
	assert.Contains(t, errOut, "could not open file (")

	data, err := os.ReadFile(filepath.Join(dir, "log.csv"))
	require.NoError(t, err)
	assert.Equal(t, "timestamp,messageType,path,message\n", string(data))
}

func TestRunStrictFailsOnMissingInput(t *testing.T) {
	dir := inTempDir(t)

	code, out, errOut := run(t, "--strict", filepath.Join(dir, "missing.log"))

	assert.Equal(t, 1, code)
	assert.NotContains(t, out, "Processing finished.")
	assert.Contains(t, errOut, "Error: read ")
}

func TestRunOutputFlags(t *testing.T) {
	dir := inTempDir(t)
	input := writeLog(t, dir, sample)
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0755))

	code, _, _ := run(t, "--dir", outDir, "--output-name", "app.csv", input)

	assert.Equal(t, 0, code)
	assert.FileExists(t, filepath.Join(outDir, "app.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "log.csv"))
}

func TestRunUsesConfigFile(t *testing.T) {
	dir := inTempDir(t)
	input := writeLog(t, dir, sample)
	cfg := config.Default()
	cfg.Output.Name = "from-config.csv"
	f, err := os.Create(filepath.Join(dir, "logshape.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Write(f))
	require.NoError(t, f.Close())

	code, _, _ := run(t, input)

	assert.Equal(t, 0, code)
	assert.FileExists(t, filepath.Join(dir, "from-config.csv"))
}

func TestRunRejectsBadLogFormat(t *testing.T) {
	dir := inTempDir(t)
	input := writeLog(t, dir, sample)

	code, _, errOut := run(t, "--log-format", "xml", input)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid log format")
}

func TestPreviewJSON(t *testing.T) {
	dir := inTempDir(t)
	input := writeLog(t, dir, sample)

	code, out, _ := run(t, "preview", "--json", input)

	require.Equal(t, 0, code)
	var rows []render.PreviewRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.True(t, rows[0].OK)
	assert.False(t, rows[1].OK)
	assert.NoFileExists(t, filepath.Join(dir, "log.csv"))
}

func TestPreviewTable(t *testing.T) {
	dir := inTempDir(t)
	input := writeLog(t, dir, sample)

	code, out, _ := run(t, "preview", input)

	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "ROW"))
	assert.Contains(t, out, "malformed")
}

func TestInitWritesDefaultConfig(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "custom.yaml")

	code, out, _ := run(t, "init", "--path", path)

	require.Equal(t, 0, code)
	assert.Contains(t, out, path)

	cfg, err := config.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestRootHelpExplainsSubcommandNamedLogs(t *testing.T) {
	code, out, _ := run(t, "--help")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "./preview")
}
