package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolve_EnvTokenWinsOverEverything(t *testing.T) {
	t.Setenv("BOARDSYNC_TOKEN", "primary-token")
	t.Setenv("OPENBOARD_TOKEN", "shared-token")
	path := writeConfigFile(t, "auth:\n  token: file-token\n")

	sess, err := Resolve(Options{AllowConfigToken: true, ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "primary-token", sess.Token)
	assert.Equal(t, TokenSourceEnv, sess.Source)
	assert.True(t, sess.Authenticated())
}

func TestResolve_SharedEnvBeatsConfigFile(t *testing.T) {
	t.Setenv("BOARDSYNC_TOKEN", "")
	t.Setenv("OPENBOARD_TOKEN", "shared-token")
	path := writeConfigFile(t, "auth:\n  token: file-token\n")

	sess, err := Resolve(Options{AllowConfigToken: true, ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "shared-token", sess.Token)
	assert.Equal(t, TokenSourceSharedEnv, sess.Source)
}

func TestResolve_ConfigFileFallback(t *testing.T) {
	t.Setenv("BOARDSYNC_TOKEN", "")
	t.Setenv("OPENBOARD_TOKEN", "")
	path := writeConfigFile(t, "auth:\n  token: \"  file-token  \"\n")

	sess, err := Resolve(Options{AllowConfigToken: true, ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "file-token", sess.Token, "config token is trimmed")
	assert.Equal(t, TokenSourceConfigFile, sess.Source)
}

func TestResolve_ConfigFileIgnoredUnlessAllowed(t *testing.T) {
	t.Setenv("BOARDSYNC_TOKEN", "")
	t.Setenv("OPENBOARD_TOKEN", "")
	path := writeConfigFile(t, "auth:\n  token: file-token\n")

	sess, err := Resolve(Options{AllowConfigToken: false, ConfigPath: path})
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.Source)
}

func TestResolve_MissingConfigFileIsUnauthenticated(t *testing.T) {
	t.Setenv("BOARDSYNC_TOKEN", "")
	t.Setenv("OPENBOARD_TOKEN", "")

	sess, err := Resolve(Options{
		AllowConfigToken: true,
		ConfigPath:       filepath.Join(t.TempDir(), "does-not-exist.yaml"),
	})
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}

func TestResolve_MalformedConfigFile(t *testing.T) {
	t.Setenv("BOARDSYNC_TOKEN", "")
	t.Setenv("OPENBOARD_TOKEN", "")
	path := writeConfigFile(t, "auth: [not a mapping\n")

	_, err := Resolve(Options{AllowConfigToken: true, ConfigPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding session config")
}

func TestResolve_EmptyConfigTokenIsUnauthenticated(t *testing.T) {
	t.Setenv("BOARDSYNC_TOKEN", "")
	t.Setenv("OPENBOARD_TOKEN", "")
	path := writeConfigFile(t, "auth:\n  token: \"\"\n")

	sess, err := Resolve(Options{AllowConfigToken: true, ConfigPath: path})
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}
