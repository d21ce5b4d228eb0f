package utils

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/princinho/sahoinsure/config"
	"github.com/princinho/sahoinsure/models"
	"google.golang.org/api/option"
)

// ObjectStore keeps uploaded policy documents.
type ObjectStore interface {
	// Put stores body under objectName and returns its public URL.
	Put(ctx context.Context, objectName, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, objectNames ...string) error
}

// NewObjectStore picks the backend named by cfg.Provider. "none" yields a
// nil store; document upload is then unavailable.
func NewObjectStore(ctx context.Context, cfg config.StorageConfig) (ObjectStore, error) {
	switch cfg.Provider {
	case "gcs":
		return NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
	case "r2":
		return NewR2Store(ctx, cfg)
	case "none", "":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
}

type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore(ctx context.Context, bucket, credentialsFile string) (*GCSStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("missing GCS_BUCKET")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithAuthCredentialsFile(option.ServiceAccount, credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (g *GCSStore) Put(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	w := g.client.Bucket(g.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "no-cache"

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload copy: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload close: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, objectName), nil
}

func (g *GCSStore) Delete(ctx context.Context, objectNames ...string) error {
	var firstErr error
	for _, obj := range objectNames {
		if obj == "" {
			continue
		}
		err := g.client.Bucket(g.bucket).Object(obj).Delete(ctx)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("delete %s: %w", obj, err)
		}
	}
	return firstErr
}

// R2Store talks to Cloudflare R2 through its S3-compatible API.
type R2Store struct {
	S3           *s3.Client
	Bucket       string
	PublicDomain string
}

func NewR2Store(ctx context.Context, cfg config.StorageConfig) (*R2Store, error) {
	if cfg.R2Bucket == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretKey == "" || cfg.R2Endpoint == "" {
		return nil, fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretKey, ""),
		),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.R2Endpoint)
		o.UsePathStyle = true // required for R2
	})

	return &R2Store{S3: client, Bucket: cfg.R2Bucket, PublicDomain: cfg.R2PublicDomain}, nil
}

func (r *R2Store) Put(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	_, err := r.S3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(r.Bucket),
		Key:          aws.String(objectName),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}
	return fmt.Sprintf("%s/%s/%s", r.PublicDomain, r.Bucket, objectName), nil
}

func (r *R2Store) Delete(ctx context.Context, objectNames ...string) error {
	var firstErr error
	for _, obj := range objectNames {
		if obj == "" {
			continue
		}
		_, err := r.S3.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(r.Bucket),
			Key:    aws.String(obj),
		})
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("delete %s: %w", obj, err)
		}
	}
	return firstErr
}

// PolicyDocumentObjectName builds a unique object name under
// policies/<policyID>/.
func PolicyDocumentObjectName(policyID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("policies/%s/%d-%s%s", policyID, time.Now().UTC().Unix(), uuid.New().String(), ext)
}

// UploadPolicyDocument streams an already validated upload to store.
func UploadPolicyDocument(
	ctx context.Context,
	store ObjectStore,
	policyID string,
	fileHeader *multipart.FileHeader,
	mimeType string,
) (*models.PolicyDocument, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	objectName := PolicyDocumentObjectName(policyID, fileHeader.Filename)
	url, err := store.Put(ctx, objectName, mimeType, file)
	if err != nil {
		return nil, err
	}

	return &models.PolicyDocument{
		PublicURL:  url,
		ObjectName: objectName,
		MimeType:   mimeType,
		SizeBytes:  fileHeader.Size,
		UploadedAt: time.Now().UTC(),
	}, nil
}
