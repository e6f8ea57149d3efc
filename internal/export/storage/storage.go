// Package storage puts export artifacts somewhere the user can fetch them:
// a local directory or an S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	awsclient "proposal-workers/internal/common/aws"
	"proposal-workers/internal/common/config"
	"proposal-workers/internal/common/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Sink stores one artifact and returns where it can be found.
type Sink interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// NewSink picks the sink named by cfg.Sink.
func NewSink(ctx context.Context, cfg config.ExportConfig) (Sink, error) {
	switch cfg.Sink {
	case config.SinkS3:
		client, err := awsclient.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return NewS3Sink(client, cfg.S3), nil
	case config.SinkLocal, "":
		return NewLocalSink(cfg.OutputDir)
	}
	return nil, fmt.Errorf("unknown export sink %q", cfg.Sink)
}

type LocalSink struct {
	dir string
}

func NewLocalSink(dir string) (*LocalSink, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, errors.NewExportStorageFailedError(abs, err)
	}
	return &LocalSink{dir: abs}, nil
}

func (s *LocalSink) Dir() string { return s.dir }

// Put writes name under the sink directory through a temp file so readers
// never see a partial artifact. Directory parts of name are dropped.
func (s *LocalSink) Put(_ context.Context, name, _ string, data []byte) (string, error) {
	target := filepath.Join(s.dir, filepath.Base(name))

	tmp, err := os.CreateTemp(s.dir, ".export-*")
	if err != nil {
		return "", errors.NewExportStorageFailedError(target, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", errors.NewExportStorageFailedError(target, err)
	}
	if err := tmp.Close(); err != nil {
		return "", errors.NewExportStorageFailedError(target, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", errors.NewExportStorageFailedError(target, err)
	}
	return target, nil
}

// ObjectPutter is the part of the S3 client the sink needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Sink struct {
	client  ObjectPutter
	bucket  string
	prefix  string
	baseURL string
}

func NewS3Sink(client ObjectPutter, cfg config.S3Config) *S3Sink {
	return &S3Sink{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  strings.Trim(cfg.Prefix, "/"),
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
}

// Put uploads the artifact. The location is the public URL when a base URL
// is configured, an s3:// URI otherwise.
func (s *S3Sink) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := path.Join(s.prefix, path.Base(filepath.ToSlash(name)))
	uri := fmt.Sprintf("s3://%s/%s", s.bucket, key)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.NewExportStorageFailedError(uri, err)
	}

	if s.baseURL != "" {
		return s.baseURL + "/" + key, nil
	}
	return uri, nil
}
