package artifact_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dasindu02/diapredict-main/internal/infrastructure/artifact"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubSource struct {
	calls int
	body  string
	err   error
}

func (s *stubSource) Fetch(_ context.Context, w io.Writer) error {
	s.calls++
	if s.body != "" {
		if _, err := io.WriteString(w, s.body); err != nil {
			return err
		}
	}
	return s.err
}

func (s *stubSource) String() string { return "stub://model" }

func TestEnsureLocal_ExistingFileIsNotFetched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	src := &stubSource{body: "replacement"}

	fetched, err := artifact.EnsureLocal(context.Background(), path, src, testLogger())

	require.NoError(t, err)
	assert.False(t, fetched)
	assert.Zero(t, src.calls)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestEnsureLocal_FetchesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "model.json")
	src := &stubSource{body: `{"format":"linear"}`}

	fetched, err := artifact.EnsureLocal(context.Background(), path, src, testLogger())

	require.NoError(t, err)
	assert.True(t, fetched)
	assert.Equal(t, 1, src.calls)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"format":"linear"}`, string(data))
}

func TestEnsureLocal_FailedFetchLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	src := &stubSource{body: "partial", err: errors.New("connection reset")}

	_, err := artifact.EnsureLocal(context.Background(), path, src, testLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial or temporary file may remain")
}

func TestEnsureLocal_NoSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	_, err := artifact.EnsureLocal(context.Background(), path, nil, testLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no source is configured")
}

func TestHTTPSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/model.json":
			_, _ = w.Write([]byte(`{"format":"tree_ensemble"}`))
		case "/broken.json":
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	t.Run("ok", func(t *testing.T) {
		var sb strings.Builder
		err := artifact.NewHTTPSource(srv.URL+"/model.json", srv.Client()).Fetch(context.Background(), &sb)
		require.NoError(t, err)
		assert.Equal(t, `{"format":"tree_ensemble"}`, sb.String())
	})

	t.Run("not found", func(t *testing.T) {
		err := artifact.NewHTTPSource(srv.URL+"/missing.json", srv.Client()).Fetch(context.Background(), io.Discard)
		require.ErrorIs(t, err, artifact.ErrArtifactNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		err := artifact.NewHTTPSource(srv.URL+"/broken.json", srv.Client()).Fetch(context.Background(), io.Discard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})
}

func TestEnsureLocal_WithHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("artifact-bytes"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "model.json")
	fetched, err := artifact.EnsureLocal(context.Background(), path, artifact.NewHTTPSource(srv.URL, nil), testLogger())

	require.NoError(t, err)
	assert.True(t, fetched)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "artifact-bytes", string(data))
}

func TestNewSource(t *testing.T) {
	src, err := artifact.NewSource("https://example.com/model.json", artifact.S3Options{})
	require.NoError(t, err)
	assert.IsType(t, &artifact.HTTPSource{}, src)
	assert.Equal(t, "https://example.com/model.json", src.String())

	src, err = artifact.NewSource("s3://models/risk/v1.json", artifact.S3Options{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"})
	require.NoError(t, err)
	assert.IsType(t, &artifact.S3Source{}, src)
	assert.Equal(t, "s3://models/risk/v1.json", src.String())

	_, err = artifact.NewSource("ftp://example.com/model.json", artifact.S3Options{})
	require.Error(t, err)
}

func TestParseS3URL(t *testing.T) {
	tests := []struct {
		raw     string
		bucket  string
		key     string
		wantErr bool
	}{
		{raw: "s3://models/risk.json", bucket: "models", key: "risk.json"},
		{raw: "s3://models/nested/dir/risk.json", bucket: "models", key: "nested/dir/risk.json"},
		{raw: "s3://models", wantErr: true},
		{raw: "s3:///risk.json", wantErr: true},
		{raw: "https://models/risk.json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			bucket, key, err := artifact.ParseS3URL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}
