package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotes/internal/auth"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("test", "abc123")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMigrateCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "quotes.db")

	out, err := execute(t, "", "migrate", "status", "--db-path", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No migrations have been applied yet")

	out, err = execute(t, "", "migrate", "up", "--db-path", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated to version: 4")

	out, err = execute(t, "", "migrate", "down", "2", "--db-path", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Rolled back to version: 2")

	out, err = execute(t, "", "migrate", "status", "--db-path", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Current version: 2")

	_, err = execute(t, "", "migrate", "down", "many", "--db-path", dbPath)
	assert.Error(t, err)
}

func TestSeedAndCleanupCommands(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "quotes.db")
	seedPath := filepath.Join(dir, "quotes.json")
	require.NoError(t, os.WriteFile(seedPath, []byte(`[
		{"quote": "Talk is cheap. Show me the code.", "author_name": "Linus Torvalds", "related_tags": ["code"]},
		{"quote": "", "author_name": "nobody"}
	]`), 0o600))

	out, err := execute(t, "", "seed", "--file", seedPath, "--db-path", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 quotes")
	assert.Contains(t, out, "Skipped 1 records")

	out, err = execute(t, "", "cleanup", "--db-path", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 0 dangling associations")

	_, err = execute(t, "", "seed", "--file", filepath.Join(dir, "missing.json"), "--db-path", dbPath)
	assert.Error(t, err)

	exportPath := filepath.Join(dir, "export.yaml")
	out, err = execute(t, "", "export", "--out", exportPath, "--db-path", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 quotes by 1 authors")
	exported, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(exported), "linus torvalds")

	notes := filepath.Join(dir, "notes")
	_, err = execute(t, "", "export", "--markdown", "--out", notes, "--db-path", dbPath)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(notes, "Linus Torvalds.md"))

	_, err = execute(t, "", "export", "--db-path", dbPath)
	assert.Error(t, err, "--out is required")
}

func TestHashPasswordCommand(t *testing.T) {
	out, err := execute(t, "", "hash-password", "--cost", "4", "correct-horse-battery")
	require.NoError(t, err)
	hash := strings.TrimSpace(out)
	assert.NoError(t, auth.CheckPassword("correct-horse-battery", hash))

	out, err = execute(t, "from-stdin-password\n", "hash-password", "--cost", "4")
	require.NoError(t, err)
	assert.NoError(t, auth.CheckPassword("from-stdin-password", strings.TrimSpace(out)))

	_, err = execute(t, "", "hash-password", "short")
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)

	_, err = execute(t, "", "hash-password")
	assert.Error(t, err)
}

func TestRootCommand_Version(t *testing.T) {
	out, err := execute(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test (abc123)")
}
