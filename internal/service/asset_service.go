package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// AssetService hands out presigned URLs for course image assets. Clients
// upload directly to object storage and store the returned key as the
// course's selectedFile reference.
type AssetService interface {
	// CreateUploadURL returns the object key for a new course image and a
	// presigned PUT URL the client uploads to.
	CreateUploadURL(ctx context.Context, userID, filename string) (string, string, error)
	// GetDownloadURL returns a presigned GET URL for a stored object key.
	GetDownloadURL(ctx context.Context, key string) (string, error)
}

type assetService struct {
	presignClient *s3.PresignClient
	bucketName    string
	assetLogger   zerolog.Logger
}

// NewAssetService creates a new AssetService.
func NewAssetService(s3Client *s3.Client, bucketName string, logger zerolog.Logger) AssetService {
	return &assetService{
		presignClient: s3.NewPresignClient(s3Client),
		bucketName:    bucketName,
		assetLogger:   logger.With().Str("service", "AssetService").Logger(),
	}
}

func (s *assetService) CreateUploadURL(ctx context.Context, userID, filename string) (string, string, error) {
	// Key layout keeps one prefix per uploader; the timestamp avoids
	// collisions between same-named files.
	key := fmt.Sprintf("course-images/%s/%d_%s", userID, time.Now().UnixNano(), path.Base(filename))

	request, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		s.assetLogger.Error().Err(err).Str("key", key).Msg("Failed to presign PUT URL")
		return "", "", fmt.Errorf("failed to generate upload URL: %w", err)
	}
	return key, request.URL, nil
}

func (s *assetService) GetDownloadURL(ctx context.Context, key string) (string, error) {
	resp, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		s.assetLogger.Error().Err(err).Str("key", key).Msg("Failed to presign GET URL")
		return "", fmt.Errorf("failed to generate download URL: %w", err)
	}
	return resp.URL, nil
}
