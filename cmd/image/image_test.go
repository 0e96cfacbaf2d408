package image

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threef-labs/threef-cli/internal/constants"
	"github.com/threef-labs/threef-cli/internal/profile"
	"github.com/threef-labs/threef-cli/internal/testutil/cmdtest"
	"github.com/threef-labs/threef-cli/internal/wizard"
)

func execute(t *testing.T, env *cmdtest.Env, args ...string) (string, error) {
	t.Helper()
	cmd := New(env.Ctx)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeImage(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0x89}, size), 0600))
	return path
}

func TestUploadProfileImage(t *testing.T) {
	env := cmdtest.New(t, "user-1")
	path := writeImage(t, "logo.png", 128)

	out, err := execute(t, env, "upload", path)
	require.NoError(t, err)

	require.Len(t, env.Uploader.Objects, 1)
	obj := env.Uploader.Objects[0]
	assert.Equal(t, constants.ProfileImageBucket, obj.Bucket)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), cmdtest.CDNPrefix))

	rows := env.Store.Rows(profile.TableProfiles)
	require.Len(t, rows, 1)
	assert.Equal(t, "user-1", rows[0]["id"])
	assert.Equal(t, strings.TrimSpace(out), rows[0]["profile_image_url"])
	assert.Equal(t, []string{"Profile image updated"}, env.Notifier.Successes)
}

func TestUploadCoverRequiresProfile(t *testing.T) {
	env := cmdtest.New(t, "user-1")
	path := writeImage(t, "banner.jpg", 128)

	_, err := execute(t, env, "upload", path, "--kind", "cover")
	require.Error(t, err)
	assert.ErrorIs(t, err, profile.ErrNoProfile)
	assert.Empty(t, env.Uploader.Objects)
	assert.Len(t, env.Notifier.Errors, 1)
}

func TestUploadCoverImage(t *testing.T) {
	env := cmdtest.New(t, "user-1")
	_, err := env.Services(t).Info.Create(context.Background(), wizard.Submission{
		Brand: "Acme", Country: "Nigeria", Category: "Tech", Subcategory: "Software",
		Tags: []string{"ai"}, Details: "We build tools",
	})
	require.NoError(t, err)
	path := writeImage(t, "banner.jpg", 128)

	out, err := execute(t, env, "upload", path, "-k", "cover")
	require.NoError(t, err)

	require.Len(t, env.Uploader.Objects, 1)
	assert.Equal(t, constants.CoverImageBucket, env.Uploader.Objects[0].Bucket)
	rows := env.Store.Rows(profile.TableInfo)
	require.Len(t, rows, 1)
	assert.Equal(t, strings.TrimSpace(out), rows[0]["cover_image_url"])
}

func TestUploadRejectsBadFiles(t *testing.T) {
	env := cmdtest.New(t, "user-1")

	tests := []struct {
		name string
		path string
	}{
		{"wrong extension", writeImage(t, "logo.gif", 16)},
		{"too large", writeImage(t, "huge.png", int(constants.MaxImageSize)+1)},
		{"missing", filepath.Join(t.TempDir(), "nope.png")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, env, "upload", tt.path)
			require.Error(t, err)
		})
	}
	assert.Empty(t, env.Uploader.Objects)
}

func TestUploadUnknownKind(t *testing.T) {
	env := cmdtest.New(t, "user-1")

	_, err := execute(t, env, "upload", writeImage(t, "a.png", 1), "--kind", "banner")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown image kind")
}

func TestUploadStorageFailure(t *testing.T) {
	env := cmdtest.New(t, "user-1")
	env.Uploader.Err = errors.New("bucket unavailable")

	_, err := execute(t, env, "upload", writeImage(t, "a.png", 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket unavailable")
	assert.Empty(t, env.Store.Rows(profile.TableProfiles))
}

func TestUploadWithoutStorageConfigured(t *testing.T) {
	env := cmdtest.New(t, "user-1")
	env.Factory.Uploader = nil

	_, err := execute(t, env, "upload", writeImage(t, "a.png", 1))
	require.Error(t, err)
}
