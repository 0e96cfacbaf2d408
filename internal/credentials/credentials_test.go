package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threef-labs/threef-cli/internal/testutil"
)

func TestNew_Default(t *testing.T) {
	t.Setenv(ThreefAPIKeyVar, "")
	t.Setenv("HOME", t.TempDir())

	cfg, err := New(testutil.NewTestLogger())
	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, AuthTypeBearer, cfg.AuthType)
	assert.Nil(t, cfg.Tokens, "expected nil Tokens when no session file present")
	assert.False(t, cfg.LoggedIn())

	_, err = cfg.UserID()
	assert.True(t, errors.Is(err, ErrNoSession))
}

func TestNew_WithEnvAPIKey(t *testing.T) {
	t.Setenv(ThreefAPIKeyVar, "env-key")
	t.Setenv("HOME", t.TempDir())

	cfg, err := New(testutil.NewTestLogger())
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, AuthTypeApiKey, cfg.AuthType)
	assert.True(t, cfg.LoggedIn())
}

func TestNew_WithSessionFile(t *testing.T) {
	t.Setenv(ThreefAPIKeyVar, "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ConfigDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := `AccessToken: "file-token"
RefreshToken: "refresh-token"
ExpiresIn: 99
ExpiresAt: 1700000000
TokenType: "bearer"
User:
  ID: "user-1"
  Email: "a@b.c"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0o600))

	cfg, err := New(testutil.NewTestLogger())
	require.NoError(t, err)
	require.NotNil(t, cfg.Tokens)
	assert.Equal(t, "file-token", cfg.Tokens.AccessToken)
	assert.Equal(t, "refresh-token", cfg.Tokens.RefreshToken)
	assert.Equal(t, 99, cfg.Tokens.ExpiresIn)
	assert.Equal(t, int64(1700000000), cfg.Tokens.ExpiresAt)

	id, err := cfg.UserID()
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestSaveAndDeleteCredentials(t *testing.T) {
	t.Setenv(ThreefAPIKeyVar, "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	err := SaveCredentials(&SessionTokenSet{
		AccessToken:  "a",
		RefreshToken: "r",
		User:         &SessionUser{ID: "u", Email: "u@example.com"},
	})
	require.NoError(t, err)

	path := filepath.Join(home, ConfigDir, ConfigFile)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg, err := New(testutil.NewTestLogger())
	require.NoError(t, err)
	assert.True(t, cfg.LoggedIn())
	assert.Equal(t, "u@example.com", cfg.Tokens.User.Email)

	require.NoError(t, DeleteCredentials())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, DeleteCredentials(), "deleting twice is fine")
}

func TestSessionTokenSet_Expired(t *testing.T) {
	now := time.Unix(1000, 0)

	assert.False(t, (&SessionTokenSet{}).Expired(now, time.Minute), "no expiry recorded")
	assert.False(t, (&SessionTokenSet{ExpiresAt: 2000}).Expired(now, time.Minute))
	assert.True(t, (&SessionTokenSet{ExpiresAt: 1030}).Expired(now, time.Minute))
	assert.True(t, (&SessionTokenSet{ExpiresAt: 900}).Expired(now, 0))
}
