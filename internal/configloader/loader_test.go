package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/luafmt/pkg/config"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsWhenNoConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	result, err := Load(LoadOptions{WorkingDir: dir})
	require.NoError(t, err)

	assert.Empty(t, result.LoadedFrom)
	assert.Equal(t, config.NewConfig(), result.Config)
}

func TestLoad_TOMLInWorkingDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, "luafmt.toml", "indent_type = \"spaces\"\nindent_width = 2\n")

	result, err := Load(LoadOptions{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, path, result.LoadedFrom)
	assert.Equal(t, config.IndentTypeSpaces, result.Config.IndentType)
	assert.Equal(t, 2, result.Config.IndentWidth)
	// Unset fields keep their defaults.
	assert.Equal(t, config.NewConfig().ColumnWidth, result.Config.ColumnWidth)
}

func TestLoad_YAMLVariant(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".luafmt.yaml", "quote_style: force_single\nline_endings: windows\n")

	result, err := Load(LoadOptions{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, config.QuoteStyleForceSingle, result.Config.QuoteStyle)
	assert.Equal(t, config.LineEndingsWindows, result.Config.LineEndings)
}

func TestLoad_FindsConfigInParent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeConfig(t, root, "luafmt.toml", "column_width = 80\n")
	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(LoadOptions{WorkingDir: nested})
	require.NoError(t, err)

	assert.Equal(t, path, result.LoadedFrom)
	assert.Equal(t, 80, result.Config.ColumnWidth)
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeConfig(t, outer, "luafmt.toml", "column_width = 80\n")

	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	result, err := Load(LoadOptions{WorkingDir: repo})
	require.NoError(t, err)

	// The config above the repository root must not leak in.
	assert.Empty(t, result.LoadedFrom)
	assert.Equal(t, config.NewConfig().ColumnWidth, result.Config.ColumnWidth)
}

func TestLoad_ExplicitPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "luafmt.toml", "indent_width = 2\n")
	explicit := writeConfig(t, dir, "other.toml", "indent_width = 8\n")

	result, err := Load(LoadOptions{WorkingDir: dir, ExplicitPath: explicit})
	require.NoError(t, err)

	assert.Equal(t, explicit, result.LoadedFrom)
	assert.Equal(t, 8, result.Config.IndentWidth)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := Load(LoadOptions{WorkingDir: dir, ExplicitPath: filepath.Join(dir, "nope.toml")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_MalformedTOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, "luafmt.toml", "indent_width = [broken\n")

	_, err := Load(LoadOptions{WorkingDir: dir, ExplicitPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_InvalidValueRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, "luafmt.toml", "quote_style = \"Curly\"\n")

	_, err := Load(LoadOptions{WorkingDir: dir, ExplicitPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, "luafmt.json", "{}")

	_, err := Load(LoadOptions{WorkingDir: dir, ExplicitPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")
}
