package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the AWS endpoint (MinIO, LocalStack).
	Endpoint string
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3BillArchiver stores a JSON snapshot of each generated bill under
// bills/<encounter>.json.
type S3BillArchiver struct {
	client putObjectAPI
	bucket string
}

func NewS3BillArchiver(cfg S3Config) *S3BillArchiver {
	opts := s3.Options{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &S3BillArchiver{
		client: s3.New(opts),
		bucket: cfg.Bucket,
	}
}

func BillKey(encounterID string) string {
	return "bills/" + encounterID + ".json"
}

func (a *S3BillArchiver) Archive(ctx context.Context, encounterID string, snapshot any) error {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal bill %s: %w", encounterID, err)
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(BillKey(encounterID)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put bill %s: %w", encounterID, err)
	}
	return nil
}

// NoopArchiver is used when no bucket is configured.
type NoopArchiver struct{}

func (NoopArchiver) Archive(context.Context, string, any) error { return nil }
