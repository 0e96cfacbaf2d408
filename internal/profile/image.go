package profile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/threef-labs/threef-cli/internal/client/objectstore"
	"github.com/threef-labs/threef-cli/internal/client/rowstore"
	"github.com/threef-labs/threef-cli/internal/constants"
	"github.com/threef-labs/threef-cli/internal/validation"
)

// ImageKind selects where an uploaded image is shown.
type ImageKind string

const (
	ImageProfile ImageKind = "profile"
	ImageCover   ImageKind = "cover"
)

func ParseImageKind(s string) (ImageKind, error) {
	switch ImageKind(s) {
	case ImageProfile, ImageCover:
		return ImageKind(s), nil
	default:
		return "", fmt.Errorf("unknown image kind %q: must be %s or %s", s, ImageProfile, ImageCover)
	}
}

func (k ImageKind) Bucket() string {
	if k == ImageCover {
		return constants.CoverImageBucket
	}
	return constants.ProfileImageBucket
}

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, obj objectstore.Object, onProgress objectstore.ProgressFunc) (string, error)
}

type ImageService struct {
	store     rowstore.Store
	identity  Identity
	uploader  Uploader
	info      *InfoService
	validator *validation.Validator
	log       *zerolog.Logger
	now       func() time.Time
}

func NewImageService(store rowstore.Store, identity Identity, uploader Uploader, info *InfoService, v *validation.Validator, log *zerolog.Logger) *ImageService {
	return &ImageService{
		store:     store,
		identity:  identity,
		uploader:  uploader,
		info:      info,
		validator: v,
		log:       log,
		now:       time.Now,
	}
}

// Upload sends the image at path to the bucket of kind and records its
// public URL on the signed-in user's profile.
func (s *ImageService) Upload(ctx context.Context, kind ImageKind, path string, onProgress objectstore.ProgressFunc) (string, error) {
	user, err := requireUser(ctx, s.identity)
	if err != nil {
		return "", err
	}
	if s.uploader == nil {
		return "", errors.New("object storage is not configured")
	}
	if kind == ImageCover {
		// cover images hang off the info row, fail before uploading
		if _, err := s.info.Mine(ctx); err != nil {
			return "", err
		}
	}

	if err := s.validator.Var(path, "image_file"); err != nil {
		return "", fmt.Errorf("%s must be a .jpg, .jpeg or .png file no larger than %s", path, humanSize(constants.MaxImageSize))
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	key := objectstore.ObjectKey(user.ID, s.now(), filepath.Ext(path))
	url, err := s.uploader.Upload(ctx, objectstore.Object{
		Bucket:      kind.Bucket(),
		Key:         key,
		Body:        body,
		ContentType: objectstore.ContentType(path),
	}, onProgress)
	if err != nil {
		return "", err
	}
	s.log.Debug().Str("kind", string(kind)).Str("url", url).Msg("Image uploaded")

	switch kind {
	case ImageCover:
		err = s.info.SetCoverImage(ctx, url)
	default:
		err = s.store.Upsert(ctx, TableProfiles,
			rowstore.Row{"id": user.ID, "profile_image_url": url},
			rowstore.Conflict{Constraint: ProfilesPKey, UpdateColumns: []string{"profile_image_url"}},
		)
	}
	if err != nil {
		return "", fmt.Errorf("image uploaded to %s but saving it failed: %w", url, err)
	}
	return url, nil
}

// ProfileImage returns the profile image URL of userID, empty when unset.
func (s *ImageService) ProfileImage(ctx context.Context, userID string) (string, error) {
	var rows []profileRow
	if err := s.store.Select(ctx, TableProfiles, rowstore.Query{Eq: rowstore.Eq{"id": userID}, Limit: 1}, &rows); err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].ProfileImageURL, nil
}

func humanSize(n int64) string {
	return fmt.Sprintf("%dMB", n/(1024*1024))
}
