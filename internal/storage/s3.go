// Package storage implements the object storage uploader backing video,
// thumbnail, and avatar uploads.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// UploadResult describes a stored object. Duration is zero for non-video
// uploads; for videos it comes from probing the file, never from the client.
type UploadResult struct {
	URL      string
	Duration float64
}

// Uploader stores local files in object storage and returns their public URL.
type Uploader interface {
	Upload(ctx context.Context, localPath, folder string) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
}

// S3Uploader implements Uploader on top of AWS S3.
type S3Uploader struct {
	client *s3.Client
	bucket string
	region string
	probe  DurationProber
}

// NewS3Uploader builds an S3-backed uploader using the default AWS
// credential chain.
func NewS3Uploader(ctx context.Context, bucket, region string) (*S3Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Uploader{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
		probe:  FFProbe{},
	}, nil
}

// Upload stores the file under folder/<uuid><ext> and returns its URL.
// Video files are probed for duration before uploading.
func (u *S3Uploader) Upload(ctx context.Context, localPath, folder string) (*UploadResult, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload file: %w", err)
	}
	defer f.Close()

	ext := filepath.Ext(localPath)
	key := folder + "/" + uuid.New().String() + ext

	var duration float64
	if isVideoExt(ext) && u.probe != nil {
		// Probe failures are not fatal; the video is stored with zero
		// duration rather than rejecting the upload.
		duration, _ = u.probe.Duration(ctx, localPath)
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return nil, fmt.Errorf("S3 upload failed: %w", err)
	}

	return &UploadResult{
		URL:      fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key),
		Duration: duration,
	}, nil
}

// Delete removes an object by key.
func (u *S3Uploader) Delete(ctx context.Context, key string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	return err
}

func isVideoExt(ext string) bool {
	switch ext {
	case ".mp4", ".mov", ".mkv", ".webm", ".avi":
		return true
	}
	return false
}
