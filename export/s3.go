package export

import (
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/invertedv/zclean/config"
)

// the region that takes no location constraint
const defaultRegion = "us-east-1"

// S3 is an Uploader backed by Amazon S3.
type S3 struct {
	client   s3iface.S3API
	uploader *s3manager.Uploader
	region   string
}

// NewS3 returns an S3 Uploader using static credentials in region.
func NewS3(creds config.Credentials, region string) (*S3, error) {
	if region == "" {
		region = defaultRegion
	}

	sess, e := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(creds.AccessKeyID, creds.SecretAccessKey, ""),
	})
	if e != nil {
		return nil, e
	}

	return NewS3WithClient(s3.New(sess), region), nil
}

// NewS3WithClient wraps an existing S3 client.
func NewS3WithClient(client s3iface.S3API, region string) *S3 {
	if region == "" {
		region = defaultRegion
	}

	return &S3{client: client, uploader: s3manager.NewUploaderWithClient(client), region: region}
}

// CreateBucket creates bucket. A bucket the caller already owns is not an error.
func (s *S3) CreateBucket(ctx context.Context, bucket string) error {
	in := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	if s.region != defaultRegion {
		in.CreateBucketConfiguration = &s3.CreateBucketConfiguration{LocationConstraint: aws.String(s.region)}
	}

	_, e := s.client.CreateBucketWithContext(ctx, in)

	var ae awserr.Error
	if errors.As(e, &ae) && ae.Code() == s3.ErrCodeBucketAlreadyOwnedByYou {
		return nil
	}

	return e
}

func (s *S3) Upload(ctx context.Context, bucket, key string, body io.Reader) error {
	_, e := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	})

	return e
}
