package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("MEDIA_ROOT", t.TempDir())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_GroupLifecycle(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "migrate")
	require.NoError(t, err)

	out, err := run(t, "group", "create", "--slug", "cats", "--title", "Cats", "--description", "All about cats")
	require.NoError(t, err)
	assert.Contains(t, out, "/group/cats/")

	_, err = run(t, "group", "create", "--slug", "cats", "--title", "Cats again", "--description", "")
	assert.Error(t, err, "slugs are unique")

	out, err = run(t, "group", "delete", "cats")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted group cats")

	_, err = run(t, "group", "delete", "cats")
	assert.Error(t, err)
}

func TestCLI_DeleteMissing(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "migrate")
	require.NoError(t, err)

	_, err = run(t, "user", "delete", "nobody")
	assert.Error(t, err)

	_, err = run(t, "post", "delete", "42")
	assert.Error(t, err)

	_, err = run(t, "post", "delete", "abc")
	assert.ErrorContains(t, err, "invalid post id")
}

func TestCLI_CacheClearMemory(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "memory cache is per process")
}

func TestCLI_MissingConfig(t *testing.T) {
	setupEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := run(t, "migrate")
	assert.ErrorContains(t, err, "JWT_SECRET is not set")
}
