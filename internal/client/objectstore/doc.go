// Package objectstore uploads images to an S3-compatible object storage
// and resolves their public URLs.
package objectstore
