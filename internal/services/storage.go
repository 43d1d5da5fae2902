package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/luxride/admin-backend/internal/config"
	"go.uber.org/zap"
)

var (
	uploader  *s3manager.Uploader
	s3Bucket  string
	useS3     bool
	baseURL   string
	uploadDir string
)

// InitStorage initializes either S3 or local storage for report exports based
// on configuration.
func InitStorage(cfg *config.Config, logger *zap.Logger) error {
	if cfg.AWSRegion != "" && cfg.AWSAccessKey != "" && cfg.AWSSecretKey != "" {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(cfg.AWSRegion),
			Credentials: credentials.NewStaticCredentials(
				cfg.AWSAccessKey,
				cfg.AWSSecretKey,
				"",
			),
		})
		if err != nil {
			return fmt.Errorf("failed to create AWS session: %v", err)
		}

		uploader = s3manager.NewUploader(sess)
		s3Bucket = cfg.AWSBucket
		useS3 = true
		logger.Info("S3 report storage initialized", zap.String("bucket", s3Bucket))
		return nil
	}

	// Fall back to local storage
	useS3 = false
	uploadDir = "/app/exports"
	baseURL = cfg.BaseURL

	if err := os.MkdirAll(filepath.Join(uploadDir, "reports"), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %v", err)
	}

	logger.Warn("AWS S3 not configured, report exports use local file storage")
	return nil
}

// UploadReport stores a generated report and returns its public URL.
func UploadReport(name string, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("reports/%d_%s", time.Now().Unix(), name)

	if useS3 {
		if s3Bucket == "" {
			return "", fmt.Errorf("S3 bucket name not configured")
		}
		result, err := uploader.Upload(&s3manager.UploadInput{
			Bucket:      aws.String(s3Bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
		if err != nil {
			return "", fmt.Errorf("failed to upload report to S3: %v", err)
		}
		return result.Location, nil
	}

	path := filepath.Join(uploadDir, key)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %v", err)
	}
	return fmt.Sprintf("%s/exports/%s", baseURL, key), nil
}
