package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	maxIdleConns     = 10
	timeoutInSeconds = 60
	userAgent        = "diapredict-risk/1.0"
)

// ErrArtifactNotFound is returned when the remote source has no artifact.
var ErrArtifactNotFound = errors.New("model artifact not found at source")

// Source fetches a model artifact from a remote location.
type Source interface {
	// Fetch writes the artifact contents to w.
	Fetch(ctx context.Context, w io.Writer) error
	// String describes the source for logs.
	String() string
}

// S3Options holds the credentials used for s3:// sources.
type S3Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// NewSource picks a Source for rawURL: s3:// locations go through the S3
// client, http(s) locations through a plain GET.
func NewSource(rawURL string, s3 S3Options) (Source, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse model source url: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return NewHTTPSource(rawURL, nil), nil
	case "s3":
		bucket, key, err := ParseS3URL(rawURL)
		if err != nil {
			return nil, err
		}
		return NewS3Source(s3, bucket, key)
	default:
		return nil, fmt.Errorf("unsupported model source scheme %q", u.Scheme)
	}
}

// HTTPSource downloads an artifact with a single GET request.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates an HTTPSource. A nil client selects a default with
// bounded timeouts.
func NewHTTPSource(rawURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:          maxIdleConns,
				IdleConnTimeout:       timeoutInSeconds * time.Second,
				ResponseHeaderTimeout: timeoutInSeconds * time.Second,
			},
		}
	}
	return &HTTPSource{url: rawURL, client: client}
}

func (s *HTTPSource) String() string { return s.url }

// Fetch downloads the artifact. A 404 maps to ErrArtifactNotFound.
func (s *HTTPSource) Fetch(ctx context.Context, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("error creating HTTP Get request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error downloading %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrArtifactNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error downloading file (status: %d - %s): %s", resp.StatusCode, resp.Status, s.url)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("error saving downloaded content: %w", err)
	}
	return nil
}
