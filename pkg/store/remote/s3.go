package remote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
)

type S3Uploader struct {
	uploader *manager.Uploader
}

func NewS3Uploader(cfg awssdk.Config) *S3Uploader {
	return NewS3UploaderWithClient(s3.NewFromConfig(cfg))
}

func NewS3UploaderWithClient(client manager.UploadAPIClient) *S3Uploader {
	return &S3Uploader{uploader: manager.NewUploader(client)}
}

// ParseDestination splits s3://bucket/key. A missing key, or one ending in
// "/", is completed with the base name of file.
func ParseDestination(destination, file string) (bucket, key string, err error) {
	u, err := url.Parse(destination)
	if err != nil {
		return "", "", fmt.Errorf("invalid upload destination %q: %w", destination, err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid upload destination %q: expected s3://bucket/key", destination)
	}

	key = strings.TrimPrefix(u.Path, "/")
	if key == "" || strings.HasSuffix(key, "/") {
		key += filepath.Base(file)
	}
	return u.Host, key, nil
}

// Upload copies the file at path to destination and returns the object
// location.
func (u *S3Uploader) Upload(ctx context.Context, destination, path string) (string, error) {
	bucket, key, err := ParseDestination(destination, path)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open report for upload: %w", err)
	}
	defer f.Close()

	out, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      awssdk.String(bucket),
		Key:         awssdk.String(key),
		Body:        f,
		ContentType: awssdk.String("text/csv"),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("failed to upload report to s3://%s/%s (%s): %w", bucket, key, apiErr.ErrorCode(), err)
		}
		return "", fmt.Errorf("failed to upload report to s3://%s/%s: %w", bucket, key, err)
	}

	location := out.Location
	if location == "" {
		location = fmt.Sprintf("s3://%s/%s", bucket, key)
	}

	zerolog.Ctx(ctx).Info().Str("location", location).Msg("Report uploaded")
	return location, nil
}
