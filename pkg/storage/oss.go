package storage

import (
	"context"
	"mime/multipart"
	"path"
	"strings"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"go.uber.org/zap"

	"github.com/kvnochieng52/flight-distance/config"
)

// OSSStore keeps blobs in an Aliyun OSS bucket.
type OSSStore struct {
	logger   *zap.Logger
	client   *oss.Client
	bucket   string
	prefix   string
	endpoint string
}

// NewOSSStore creates an OSSStore from the storage config.
func NewOSSStore(cfg *config.StorageConfig, logger *zap.Logger) *OSSStore {
	ossCfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessID, cfg.AccessKey)).
		WithRegion(cfg.Region).
		WithUseInternalEndpoint(cfg.UseInternalURL)

	endpoint := cfg.CDNDomain
	if endpoint == "" {
		endpoint = "https://" + cfg.Bucket + ".oss-" + cfg.Region + ".aliyuncs.com"
	}

	return &OSSStore{
		logger:   logger,
		client:   oss.NewClient(ossCfg),
		bucket:   cfg.Bucket,
		prefix:   strings.Trim(cfg.RemotePrefix, "/"),
		endpoint: endpoint,
	}
}

func (s *OSSStore) key(rel string) string {
	return path.Join(s.prefix, rel)
}

func (s *OSSStore) Save(ctx context.Context, namespace string, file *multipart.FileHeader) (string, error) {
	rel := objectName(namespace, file)

	body, err := file.Open()
	if err != nil {
		return "", err
	}
	defer body.Close()

	_, err = s.client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket:       oss.Ptr(s.bucket),
		Key:          oss.Ptr(s.key(rel)),
		StorageClass: oss.StorageClassStandard,
		Body:         body,
	})
	if err != nil {
		s.logger.Error("oss upload failed", zap.String("key", s.key(rel)), zap.Error(err))
		return "", err
	}
	return rel, nil
}

func (s *OSSStore) Delete(ctx context.Context, relPath string) error {
	rel, err := cleanRelPath(relPath)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(s.bucket),
		Key:    oss.Ptr(s.key(rel)),
	})
	if err != nil {
		s.logger.Error("oss delete failed", zap.String("key", s.key(rel)), zap.Error(err))
		return err
	}
	return nil
}

func (s *OSSStore) URL(relPath string) string {
	return joinURL(s.endpoint, s.key(relPath))
}
