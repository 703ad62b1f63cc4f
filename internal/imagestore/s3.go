package imagestore

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type S3Store struct {
	client  *s3.Client
	bucket  string
	region  string
	baseURL string
	logger  *zap.Logger
}

func NewS3Store(ctx context.Context, bucket, region, baseURL string, log *zap.Logger) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}

	return &S3Store{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  bucket,
		region:  region,
		baseURL: baseURL,
		logger:  log,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, file *multipart.FileHeader, folder, identifier string) (string, error) {
	if err := validateFile(file); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := folder + identifier + "_" + uuid.New().String() + ext

	src, err := file.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer src.Close()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          src,
		ContentType:   aws.String(file.Header.Get("Content-Type")),
		ContentLength: aws.Int64(file.Size),
	})
	if err != nil {
		return "", errors.Wrap(err, "put object")
	}

	url := s.imageURL(key)
	s.logger.Debug("uploaded image", zap.String("url", url))
	return url, nil
}

func (s *S3Store) UploadMany(ctx context.Context, files []*multipart.FileHeader, folder, identifier string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, file := range files {
		if file == nil || file.Size == 0 {
			continue
		}
		url, err := s.Upload(ctx, file, folder, identifier)
		if err != nil {
			// Roll back what already landed, then surface the error.
			s.DeleteMany(ctx, urls)
			return nil, errors.Wrap(err, "batch upload rolled back")
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *S3Store) Delete(ctx context.Context, imageURL string) {
	if imageURL == "" {
		return
	}

	key := s.keyFromURL(imageURL)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		// Deletion failure must not block the operation that triggered it.
		s.logger.Error("failed to delete image", zap.String("key", key), zap.Error(err))
	}
}

func (s *S3Store) DeleteMany(ctx context.Context, imageURLs []string) {
	for _, url := range imageURLs {
		s.Delete(ctx, url)
	}
}

func (s *S3Store) imageURL(key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Store) keyFromURL(imageURL string) string {
	if idx := strings.Index(imageURL, s.bucket); idx >= 0 {
		return imageURL[idx+len(s.bucket)+1:]
	}
	return strings.TrimPrefix(imageURL, s.baseURL+"/")
}
