package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-testlets/internal/config"
)

const bankDoc = `{
  "items": [
    {"id": "pre-1", "type": "pretest"},
    {"id": "pre-2", "type": "pretest"},
    {"id": "pre-3", "type": "pretest"},
    {"id": "pre-4", "type": "pretest"},
    {"id": "op-1", "type": "operational"},
    {"id": "op-2", "type": "operational"},
    {"id": "op-3", "type": "operational"},
    {"id": "op-4", "type": "operational"},
    {"id": "op-5", "type": "operational"},
    {"id": "op-6", "type": "operational"}, // trailing comma is fine
  ]
}`

func writeBank(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name+".json")
	require.NoError(t, os.WriteFile(path, []byte(bankDoc), 0o600))
	return path
}

func runCtl(t *testing.T, env map[string]string, args ...string) (string, string, int) {
	t.Helper()

	var out, errOut bytes.Buffer
	code := Run(&out, &errOut, append([]string{"testletctl"}, args...), env)
	return out.String(), errOut.String(), code
}

func TestRandomizeFromFileBank(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "math")
	env := map[string]string{"BANK_DIR": dir}

	stdout, stderr, code := runCtl(t, env, "randomize", "math", "--rounds", "5", "--json")
	require.Equal(t, 0, code, stderr)

	var got orderingsOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Equal(t, "math", got.TestletID)
	require.Equal(t, 2, got.Pretest)
	require.Len(t, got.Orderings, 5)
	for _, ordering := range got.Orderings {
		require.Len(t, ordering, 10)
		require.True(t, ordering[0].IsPretest())
		require.True(t, ordering[1].IsPretest())
	}
}

func TestRandomizeSeedIsReproducible(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "math")
	env := map[string]string{"BANK_DIR": dir, "PRETEST_COUNT": "3"}

	first, stderr, code := runCtl(t, env, "randomize", "math", "--seed", "11", "--rounds", "3")
	require.Equal(t, 0, code, stderr)
	second, _, _ := runCtl(t, env, "randomize", "--seed=11", "--rounds=3", "math")
	require.Equal(t, first, second)

	lines := strings.Split(strings.TrimSpace(first), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		fields := strings.Fields(line)
		require.Len(t, fields, 11) // "n:" + 10 items
		for _, f := range fields[1:4] {
			require.True(t, strings.HasPrefix(f, "pre-") && strings.HasSuffix(f, "*"), line)
		}
	}
}

func TestRandomizeErrors(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "math")
	env := map[string]string{"BANK_DIR": dir}

	_, stderr, code := runCtl(t, env, "randomize", "math", "--pretest", "5")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "not enough pretest items")

	_, stderr, code = runCtl(t, env, "randomize", "missing")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "item bank not found")

	_, _, code = runCtl(t, env, "randomize")
	require.Equal(t, 2, code)

	_, _, code = runCtl(t, env, "randomize", "math", "--rounds", "0")
	require.Equal(t, 2, code)

	_, _, code = runCtl(t, env, "shuffle")
	require.Equal(t, 2, code)
}

func TestImportAndInspectSQLite(t *testing.T) {
	dir := t.TempDir()
	src := writeBank(t, dir, "reading")
	env := map[string]string{
		"BANK_DRIVER": "sqlite",
		"DB_DSN":      "file:" + filepath.Join(dir, "bank.db"),
	}

	stdout, stderr, code := runCtl(t, env, "import", "reading", src)
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "imported 10 items into reading")

	stdout, stderr, code = runCtl(t, env, "inspect", "reading")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "bank reading: 10 items (4 pretest, 6 operational)\n", stdout)

	stdout, stderr, code = runCtl(t, env, "randomize", "reading", "--testlet", "T-1", "--fisher-yates")
	require.Equal(t, 0, code, stderr)
	require.True(t, strings.HasPrefix(stdout, "1: pre-"), stdout)
}

func TestImportNeedsSQLDriver(t *testing.T) {
	dir := t.TempDir()
	src := writeBank(t, dir, "reading")

	_, stderr, code := runCtl(t, map[string]string{"BANK_DIR": dir}, "import", "reading", src)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "BANK_DRIVER")
}

func TestInvalidConfig(t *testing.T) {
	_, stderr, code := runCtl(t, map[string]string{"BANK_DRIVER": "redis"}, "inspect", "x")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "unknown BANK_DRIVER")
}

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer
	newLogger(&out, slog.LevelInfo, config.LogFormatJSON).Info("json log test", slog.String("key", "value"))
	require.Contains(t, out.String(), `"msg":"json log test"`)

	out.Reset()
	newLogger(&out, slog.LevelInfo, config.LogFormatText).Debug("hidden")
	require.Empty(t, out.String())
}
