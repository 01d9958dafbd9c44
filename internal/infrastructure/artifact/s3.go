package artifact

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultS3Endpoint = "s3.amazonaws.com"

// S3Source reads an artifact from an S3-compatible object store.
type S3Source struct {
	client *minio.Client
	bucket string
	key    string
}

// NewS3Source creates an S3Source. An empty endpoint selects AWS S3; empty
// credentials fall back to the standard AWS environment variables.
func NewS3Source(opts S3Options, bucket, key string) (*S3Source, error) {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = defaultS3Endpoint
	}

	creds := credentials.NewEnvAWS()
	if opts.AccessKey != "" {
		creds = credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, "")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  creds,
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	return &S3Source{client: client, bucket: bucket, key: key}, nil
}

func (s *S3Source) String() string { return "s3://" + s.bucket + "/" + s.key }

// Fetch streams the object to w. A missing bucket or key maps to
// ErrArtifactNotFound.
func (s *S3Source) Fetch(ctx context.Context, w io.Writer) error {
	if _, err := s.client.StatObject(ctx, s.bucket, s.key, minio.StatObjectOptions{}); err != nil {
		switch minio.ToErrorResponse(err).Code {
		case "NoSuchKey", "NoSuchBucket":
			return ErrArtifactNotFound
		}
		return fmt.Errorf("stat %s: %w", s, err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("get %s: %w", s, err)
	}
	defer obj.Close()

	if _, err := io.Copy(w, obj); err != nil {
		return fmt.Errorf("read %s: %w", s, err)
	}
	return nil
}

// ParseS3URL splits s3://bucket/key/path into its bucket and key.
func ParseS3URL(rawURL string) (bucket, key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("parse s3 url: %w", err)
	}
	if !strings.EqualFold(u.Scheme, "s3") {
		return "", "", fmt.Errorf("not an s3 url: %s", rawURL)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 url must name a bucket and key: %s", rawURL)
	}
	return bucket, key, nil
}
