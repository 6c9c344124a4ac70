package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dd0wney/cluso-feederdata/pkg/config"
)

// Sink stores named artifacts.
type Sink interface {
	Put(ctx context.Context, name string, r io.Reader) error
}

// FileSink writes artifacts into a directory.
type FileSink struct {
	Dir string
}

// NewFileSink creates dir if needed.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &FileSink{Dir: dir}, nil
}

// Put writes the artifact to a temporary file and renames it into place, so a
// failed build never leaves a truncated artifact behind.
func (s *FileSink) Put(ctx context.Context, name string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(s.Dir, name)
	tmp, err := os.CreateTemp(s.Dir, "."+name+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// PutObjectAPI is the part of the S3 client the sink uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads artifacts under a key prefix.
type S3Sink struct {
	Client PutObjectAPI
	Bucket string
	Prefix string
}

// NewS3Sink builds an S3 client from the output configuration. Static
// credentials are used when both keys are set; otherwise the default chain.
func NewS3Sink(ctx context.Context, cfg *config.S3Config) (*S3Sink, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &S3Sink{Client: client, Bucket: cfg.Bucket, Prefix: cfg.Prefix}, nil
}

// Key returns the object key of an artifact.
func (s *S3Sink) Key(name string) string {
	if s.Prefix == "" {
		return name
	}
	return strings.TrimSuffix(s.Prefix, "/") + "/" + name
}

// Put uploads one artifact. The body is buffered so the SDK can sign and retry it.
func (s *S3Sink) Put(ctx context.Context, name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	_, err = s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(s.Key(name)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType(name)),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.Bucket, s.Key(name), err)
	}
	return nil
}

func contentType(name string) string {
	switch {
	case strings.HasSuffix(name, SnappySuffix):
		return "application/x-snappy-framed"
	case strings.HasSuffix(name, ".csv"):
		return "text/csv"
	default:
		return "text/plain"
	}
}
