package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"

	"github.com/threef-labs/threef-cli/internal/constants"
)

const uploadAttempts = 3

// Options configure a Client built by NewClient.
type Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	// PublicURL is the base that public objects are served from,
	// followed by /<bucket>/<key>.
	PublicURL string
}

type Client struct {
	s3         *s3.Client
	publicURL  string
	log        *zerolog.Logger
	retryDelay time.Duration
}

func NewClient(ctx context.Context, opts Options, log *zerolog.Logger) (*Client, error) {
	if opts.Endpoint == "" {
		return nil, errors.New("object storage endpoint is not configured")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")),
		config.WithRegion(opts.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
		o.UsePathStyle = true
		o.Retryer = aws.NopRetryer{}
	})

	return newWithS3(client, opts.PublicURL, log), nil
}

func newWithS3(client *s3.Client, publicURL string, log *zerolog.Logger) *Client {
	return &Client{
		s3:         client,
		publicURL:  strings.TrimRight(publicURL, "/"),
		log:        log,
		retryDelay: time.Second,
	}
}

// Object is a single upload.
type Object struct {
	Bucket      string
	Key         string
	Body        []byte
	ContentType string
}

// ProgressFunc receives the share of the body sent so far, from 0 to 1.
type ProgressFunc func(ratio float64)

// Upload puts obj, replacing any object stored under the same key, and
// returns its public URL. Server-side failures are retried.
func (c *Client) Upload(ctx context.Context, obj Object, onProgress ProgressFunc) (string, error) {
	if int64(len(obj.Body)) > constants.MaxImageSize {
		return "", fmt.Errorf("%s is larger than %d bytes", obj.Key, constants.MaxImageSize)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultUploadTimeout)
	defer cancel()

	err := retry.Do(
		func() error {
			body := newProgressReader(obj.Body, onProgress)
			_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
				Bucket:        aws.String(obj.Bucket),
				Key:           aws.String(obj.Key),
				Body:          body,
				ContentLength: aws.Int64(int64(len(obj.Body))),
				ContentType:   aws.String(obj.ContentType),
				CacheControl:  aws.String("max-age=3600"),
			})
			return err
		},
		retry.Context(ctx),
		retry.Attempts(uploadAttempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.log.Debug().Str("bucket", obj.Bucket).Str("key", obj.Key).Uint("attempt", n+1).Err(err).Msg("Retrying upload")
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", obj.Key, obj.Bucket, err)
	}

	c.log.Debug().Str("bucket", obj.Bucket).Str("key", obj.Key).Int("bytes", len(obj.Body)).Msg("Uploaded object")
	return c.PublicURL(obj.Bucket, obj.Key), nil
}

// Exists reports whether key is present in bucket.
func (c *Client) Exists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object %s in bucket %s: %w", key, bucket, err)
	}
	return true, nil
}

func (c *Client) Delete(ctx context.Context, bucket, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s from bucket %s: %w", key, bucket, err)
	}
	return nil
}

func (c *Client) PublicURL(bucket, key string) string {
	return c.publicURL + "/" + bucket + "/" + key
}

// ObjectKey names an upload after its owner and time, keeping the
// extension of the source file: <userID>-<unix millis>.<ext>.
func ObjectKey(userID string, now time.Time, ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	return fmt.Sprintf("%s-%d.%s", userID, now.UnixMilli(), ext)
}

// ContentType maps an image file name to its MIME type.
func ContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

// isRetryable rejects errors a repeated request cannot fix.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch",
			"NoSuchBucket", "EntityTooLarge", "InvalidArgument", "InvalidBucketName":
			return false
		}
		return apiErr.ErrorFault() != smithy.FaultClient
	}
	return true
}

func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchKey" || code == "404"
	}

	return false
}

// progressReader reports the read position of the body. Rewinding the body
// rewinds the reported progress.
type progressReader struct {
	r          *bytes.Reader
	total      int64
	onProgress ProgressFunc
}

func newProgressReader(body []byte, onProgress ProgressFunc) *progressReader {
	return &progressReader{r: bytes.NewReader(body), total: int64(len(body)), onProgress: onProgress}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.onProgress != nil && p.total > 0 {
		sent := p.total - int64(p.r.Len())
		p.onProgress(float64(sent) / float64(p.total))
	}
	return n, err
}

func (p *progressReader) Seek(offset int64, whence int) (int64, error) {
	return p.r.Seek(offset, whence)
}

var _ io.ReadSeeker = (*progressReader)(nil)
