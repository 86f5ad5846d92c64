package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	sc "picvault/internal/server/config"
)

func newTestStorage() *S3Storage {
	cfg := &sc.Config{
		S3Bucket:       "images",
		S3Region:       "us-east-1",
		S3AccessKey:    "minioadmin",
		S3SecretKey:    "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
	}
	return NewS3Storage(cfg)
}

func restoreSeams(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := putObject
	origPresign := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		putObject = origPut
		presignGetObject = origPresign
	})
}

func Test_getClient_AppliesConfig(t *testing.T) {
	restoreSeams(t)
	s := newTestStorage()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		return aws.Config{}, nil
	}

	var capturedBaseEndpoint string
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		if opts.BaseEndpoint == nil {
			t.Fatalf("BaseEndpoint not set")
		}
		capturedBaseEndpoint = *opts.BaseEndpoint
		return &s3.Client{}
	}

	client, err := s.getClient(context.Background())
	if err != nil {
		t.Fatalf("getClient err: %v", err)
	}
	if client == nil {
		t.Fatalf("nil client")
	}
	if capturedBaseEndpoint != "http://127.0.0.1:9000" {
		t.Fatalf("BaseEndpoint mismatch: %q", capturedBaseEndpoint)
	}

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, err = s.getClient(context.Background())
	if err == nil || err.Error() != "load-fail" {
		t.Fatalf("expected load-fail, got %v", err)
	}
}

func Test_Put_SendsPrivateObject(t *testing.T) {
	restoreSeams(t)
	s := newTestStorage()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}

	var captured *s3.PutObjectInput
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		captured = in
		return &s3.PutObjectOutput{}, nil
	}

	err := s.Put(context.Background(), "user_7/photo.png", "image/png", strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("Put err: %v", err)
	}
	if captured == nil {
		t.Fatalf("PutObject not called")
	}
	if *captured.Bucket != "images" || *captured.Key != "user_7/photo.png" {
		t.Fatalf("wrong target: %q %q", *captured.Bucket, *captured.Key)
	}
	if *captured.ContentType != "image/png" {
		t.Fatalf("content type not applied: %q", *captured.ContentType)
	}
	if captured.ACL != types.ObjectCannedACLPrivate {
		t.Fatalf("object not private: %v", captured.ACL)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("put-fail")
	}
	err = s.Put(context.Background(), "user_7/photo.png", "image/png", strings.NewReader("bytes"))
	if err == nil || err.Error() != "put-fail" {
		t.Fatalf("expected put-fail, got %v", err)
	}
}

func Test_PresignGet_ReturnsURL(t *testing.T) {
	restoreSeams(t)
	s := newTestStorage()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}

	var capturedKey string
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		capturedKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: "https://signed.example/" + *in.Key}, nil
	}

	url, err := s.PresignGet(context.Background(), "user_7/cat.jpg", time.Hour)
	if err != nil {
		t.Fatalf("PresignGet err: %v", err)
	}
	if capturedKey != "user_7/cat.jpg" {
		t.Fatalf("key mismatch: %q", capturedKey)
	}
	if url != "https://signed.example/user_7/cat.jpg" {
		t.Fatalf("unexpected url: %q", url)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("sign-fail")
	}
	_, err = s.PresignGet(context.Background(), "user_7/cat.jpg", time.Hour)
	if err == nil || err.Error() != "sign-fail" {
		t.Fatalf("expected sign-fail, got %v", err)
	}
}
