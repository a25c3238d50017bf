package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/tencentyun/cos-go-sdk-v5"
	"go.uber.org/zap"

	"github.com/kvnochieng52/flight-distance/config"
)

// COSStore keeps blobs in a Tencent Cloud COS bucket.
type COSStore struct {
	logger   *zap.Logger
	client   *cos.Client
	prefix   string
	endpoint string
}

// NewCOSStore creates a COSStore from the storage config.
func NewCOSStore(cfg *config.StorageConfig, logger *zap.Logger) (*COSStore, error) {
	region := strings.ToLower(cfg.Region)
	bucketURL, err := url.Parse(fmt.Sprintf("https://%s.cos.%s.myqcloud.com", cfg.Bucket, region))
	if err != nil {
		return nil, err
	}
	serviceURL, err := url.Parse(fmt.Sprintf("https://cos.%s.myqcloud.com", region))
	if err != nil {
		return nil, err
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: bucketURL, ServiceURL: serviceURL}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  cfg.AccessID,
			SecretKey: cfg.AccessKey,
		},
	})

	endpoint := cfg.CDNDomain
	if endpoint == "" {
		endpoint = bucketURL.String()
	}

	return &COSStore{
		logger:   logger,
		client:   client,
		prefix:   strings.Trim(cfg.RemotePrefix, "/"),
		endpoint: endpoint,
	}, nil
}

func (s *COSStore) key(rel string) string {
	return path.Join(s.prefix, rel)
}

func (s *COSStore) Save(ctx context.Context, namespace string, file *multipart.FileHeader) (string, error) {
	rel := objectName(namespace, file)

	body, err := file.Open()
	if err != nil {
		return "", err
	}
	defer body.Close()

	if _, err := s.client.Object.Put(ctx, s.key(rel), body, nil); err != nil {
		s.logger.Error("cos upload failed", zap.String("key", s.key(rel)), zap.Error(err))
		return "", err
	}
	return rel, nil
}

func (s *COSStore) Delete(ctx context.Context, relPath string) error {
	rel, err := cleanRelPath(relPath)
	if err != nil {
		return err
	}
	if _, err := s.client.Object.Delete(ctx, s.key(rel)); err != nil {
		s.logger.Error("cos delete failed", zap.String("key", s.key(rel)), zap.Error(err))
		return err
	}
	return nil
}

func (s *COSStore) URL(relPath string) string {
	return joinURL(s.endpoint, s.key(relPath))
}
