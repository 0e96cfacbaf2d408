package files

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/threef-labs/threef-cli/internal/constants"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png"}

// ImageExtensions lists the accepted upload extensions, lower case.
func ImageExtensions() []string {
	return slices.Clone(imageExtensions)
}

func HasImageExtension(path string) bool {
	return slices.Contains(imageExtensions, strings.ToLower(filepath.Ext(path)))
}

// IsValidImageFile accepts an existing .jpg/.jpeg/.png file within the upload size limit.
func IsValidImageFile(fl validator.FieldLevel) bool {
	path, ok := stringField(fl)
	if !ok || !HasImageExtension(path) {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Size() <= constants.MaxImageSize
}
