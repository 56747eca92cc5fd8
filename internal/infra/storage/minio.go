package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/400brands/brand-doctor/internal/domain/brand"
	"github.com/400brands/brand-doctor/internal/infra/report"
)

const prefix = "reports/"

var errNoSuchKey = errors.New("no such key")

// objects is the subset of object storage the archive needs.
type objects interface {
	put(ctx context.Context, key string, data []byte, contentType string) error
	get(ctx context.Context, key string) ([]byte, error)
	url(key string) string
}

// Store archives analyses as JSON plus a rendered HTML report.
type Store struct {
	objects objects
}

// New connects to MinIO and makes sure the bucket exists.
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &Store{objects: &minioObjects{client: cli, bucket: bucket}}, nil
}

// Put stores the analysis under reports/<id>.json and reports/<id>.html and
// returns the URL of the HTML report.
func (s *Store) Put(ctx context.Context, a *brand.Analysis) (string, error) {
	if a.ID == "" {
		return "", errors.New("archive: analysis has no id")
	}
	data, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("archive: encode %s: %w", a.ID, err)
	}
	page, err := report.HTML(a)
	if err != nil {
		return "", err
	}

	if err := s.objects.put(ctx, jsonKey(a.ID), data, "application/json"); err != nil {
		return "", fmt.Errorf("archive: upload %s: %w", a.ID, err)
	}
	htmlKey := prefix + string(a.ID) + ".html"
	if err := s.objects.put(ctx, htmlKey, page, "text/html; charset=utf-8"); err != nil {
		return "", fmt.Errorf("archive: upload %s: %w", htmlKey, err)
	}
	return s.objects.url(htmlKey), nil
}

// Get loads an archived analysis. Unknown ids yield brand.ErrReportNotFound.
func (s *Store) Get(ctx context.Context, id brand.AnalysisID) (*brand.Analysis, error) {
	if id == "" || strings.ContainsAny(string(id), "/\\.") {
		return nil, brand.ErrReportNotFound
	}
	data, err := s.objects.get(ctx, jsonKey(id))
	if errors.Is(err, errNoSuchKey) {
		return nil, brand.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("archive: download %s: %w", id, err)
	}

	var a brand.Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("archive: decode %s: %w", id, err)
	}
	return &a, nil
}

func jsonKey(id brand.AnalysisID) string { return prefix + string(id) + ".json" }

type minioObjects struct {
	client *minio.Client
	bucket string
}

func (m *minioObjects) put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (m *minioObjects) get(ctx context.Context, key string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, notFound(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, notFound(err)
	}
	return data, nil
}

func (m *minioObjects) url(key string) string {
	return fmt.Sprintf("%s/%s/%s", m.client.EndpointURL().String(), m.bucket, key)
}

func notFound(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return errNoSuchKey
	}
	return err
}
