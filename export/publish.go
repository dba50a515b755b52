package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/rs/zerolog"
)

// Uploader stores blobs in a bucket.
type Uploader interface {
	CreateBucket(ctx context.Context, bucket string) error
	Upload(ctx context.Context, bucket, key string, body io.Reader) error
}

// Publish creates bucket if needed and uploads fileName to it, keyed by its base name. A failure to create
// the bucket is logged with a description of the cause and returned without attempting the upload.
func Publish(ctx context.Context, up Uploader, bucket, fileName string, log zerolog.Logger) error {
	if e := up.CreateBucket(ctx, bucket); e != nil {
		log.Error().Err(e).Str("bucket", bucket).Msg(Describe(e))
		return fmt.Errorf("creating bucket %s: %w", bucket, e)
	}

	f, e := os.Open(fileName)
	if e != nil {
		return e
	}
	defer func() { _ = f.Close() }()

	key := filepath.Base(fileName)
	if e = up.Upload(ctx, bucket, key, f); e != nil {
		log.Error().Err(e).Str("bucket", bucket).Str("key", key).Msg("upload failed")
		return fmt.Errorf("uploading %s: %w", key, e)
	}

	log.Info().Str("bucket", bucket).Str("key", key).Msg("uploaded")

	return nil
}

// Describe explains an S3 error, singling out bad credentials.
func Describe(e error) string {
	var ae awserr.Error
	if errors.As(e, &ae) {
		switch {
		case strings.Contains(ae.Code(), "InvalidAccessKeyId"):
			return "invalid AWS key id"
		case strings.Contains(ae.Code(), "SignatureDoesNotMatch"):
			return "invalid AWS secret key"
		}
	}

	return "unexpected error: " + e.Error()
}
