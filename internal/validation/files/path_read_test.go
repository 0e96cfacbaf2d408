package files_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threef-labs/threef-cli/internal/validation"
)

func TestHasReadAccessToPath(t *testing.T) {
	validator, err := validation.NewValidator()
	require.NoError(t, err, "Expected no error during validator initialization")

	type TestStruct struct {
		Path string `validate:"path_read"`
	}

	t.Run("Valid file with read access", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "testfile.txt")
		require.NoError(t, os.WriteFile(tempFile, nil, 0o600))

		assert.NoError(t, validator.Struct(TestStruct{Path: tempFile}))
	})

	t.Run("Valid directory with read access", func(t *testing.T) {
		assert.NoError(t, validator.Struct(TestStruct{Path: t.TempDir()}))
	})

	t.Run("Fails validation on not existing path", func(t *testing.T) {
		err := validator.Struct(TestStruct{Path: "nonexistent/path"})
		assert.ErrorContains(t, err, "Path must have read access to path: nonexistent/path")
	})

	t.Run("Fails validation on an empty path", func(t *testing.T) {
		assert.Error(t, validator.Struct(TestStruct{Path: ""}))
	})

	t.Run("Fails validation on a non-string argument", func(t *testing.T) {
		type IntStruct struct {
			InvalidField int `validate:"path_read"`
		}
		assert.Error(t, validator.Struct(IntStruct{InvalidField: 42}))
	})
}
