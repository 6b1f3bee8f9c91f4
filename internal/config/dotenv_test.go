package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DOCCBUILDER_TEST_A=from-file\nDOCCBUILDER_TEST_B=from-file\n"), 0o600))
	t.Setenv("DOCCBUILDER_TEST_A", "preset")
	// Registers cleanup for a variable the file will set.
	t.Setenv("DOCCBUILDER_TEST_B", "")
	require.NoError(t, os.Unsetenv("DOCCBUILDER_TEST_B"))

	path, err := LoadEnvFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".env"), path)
	assert.Equal(t, "preset", os.Getenv("DOCCBUILDER_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("DOCCBUILDER_TEST_B"))
}

func TestLoadEnvFile_FallsBackToLocal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("DOCCBUILDER_TEST_C=local\n"), 0o600))
	t.Setenv("DOCCBUILDER_TEST_C", "")
	require.NoError(t, os.Unsetenv("DOCCBUILDER_TEST_C"))

	path, err := LoadEnvFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".env.local"), path)
	assert.Equal(t, "local", os.Getenv("DOCCBUILDER_TEST_C"))
}

func TestLoadEnvFile_None(t *testing.T) {
	path, err := LoadEnvFile(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, path)
}
