package utils

import (
	"context"
	"fmt"
	"time"

	"edutok/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var presigner *s3.PresignClient

// UploadKinds maps a declared upload kind to its required content-type prefix
var UploadKinds = map[string]string{
	"video":     "video/",
	"thumbnail": "image/",
	"avatar":    "image/",
}

// InitStorage builds the S3 presign client from application config
func InitStorage() error {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(config.AppConfig.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			config.AppConfig.S3AccessKey, config.AppConfig.S3SecretKey, "")),
	)
	if err != nil {
		return err
	}

	presigner = s3.NewPresignClient(s3.NewFromConfig(cfg))
	return nil
}

// BuildObjectKey namespaces uploads as kind/year/month/day/<suffix>_<name>
func BuildObjectKey(kind, fileName string, now time.Time) string {
	return fmt.Sprintf("%s/%04d/%02d/%02d/%s_%s",
		kind, now.Year(), int(now.Month()), now.Day(), uuid.NewString(), SanitizeFileName(fileName))
}

// PresignUpload issues a time-limited PUT credential for a direct
// client-to-bucket upload. The signature covers content type and length, so
// the store rejects uploads that do not match what was declared here.
func PresignUpload(key, contentType string, contentLength int64) (string, map[string]string, error) {
	if presigner == nil {
		if err := InitStorage(); err != nil {
			return "", nil, err
		}
	}

	req, err := presigner.PresignPutObject(context.Background(), &s3.PutObjectInput{
		Bucket:        aws.String(config.AppConfig.S3Bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(contentLength),
	}, s3.WithPresignExpires(time.Duration(config.AppConfig.PresignExpirySec)*time.Second))
	if err != nil {
		return "", nil, err
	}

	headers := make(map[string]string)
	for name, values := range req.SignedHeader {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}

	return req.URL, headers, nil
}
