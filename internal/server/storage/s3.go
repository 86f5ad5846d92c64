// Package storage implements the object-storage gateway backed by an
// S3-compatible service. It uploads private blobs and mints time-limited
// presigned download URLs keyed by storage key.
package storage

import (
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	sc "picvault/internal/server/config"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// S3Storage is the concrete gateway to the object store. Blobs are always
// written private; read access happens only through presigned URLs.
type S3Storage struct {
	bucket       string
	region       string
	accessKey    string
	secretKey    string
	baseEndpoint string
}

func NewS3Storage(cfg *sc.Config) *S3Storage {
	return &S3Storage{
		bucket:       cfg.S3Bucket,
		region:       cfg.S3Region,
		accessKey:    cfg.S3AccessKey,
		secretKey:    cfg.S3SecretKey,
		baseEndpoint: cfg.S3BaseEndpoint,
	}
}

// Bucket returns the bucket name, used as the store part of blob locators.
func (s *S3Storage) Bucket() string {
	return s.bucket
}

func (s *S3Storage) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.accessKey,
			s.secretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.baseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.baseEndpoint)
		}
	})

	return client, nil
}

// Put uploads body under key with the given content type and a private ACL.
// Re-uploading an existing key overwrites the object.
func (s *S3Storage) Put(ctx context.Context, key string, contentType string, body io.Reader) error {

	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
		ACL:         types.ObjectCannedACLPrivate,
	})

	return err
}

// PresignGet returns a presigned GET URL for key, valid for the given
// duration.
func (s *S3Storage) PresignGet(ctx context.Context, key string, validity time.Duration) (string, error) {

	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(validity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
