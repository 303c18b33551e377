package uploader

import (
	"context"
	"fmt"
	"io"

	"trailblazer/internal/pkg/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type AliyunOSSUploader struct {
	bucket *oss.Bucket
	config config.OSSConfig
}

func NewAliyunOSSUploader(cfg config.OSSConfig) (*AliyunOSSUploader, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, err
	}

	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, err
	}

	return &AliyunOSSUploader{bucket: bucket, config: cfg}, nil
}

func (u *AliyunOSSUploader) Save(ctx context.Context, objectPath string, r io.Reader, contentType string) error {
	opts := []oss.Option{oss.WithContext(ctx)}
	if contentType != "" {
		opts = append(opts, oss.ContentType(contentType))
	}
	return u.bucket.PutObject(objectPath, r, opts...)
}

// URL 假设 bucket 为公共读或挂了 CDN
func (u *AliyunOSSUploader) URL(objectPath string) string {
	return fmt.Sprintf("https://%s.%s/%s", u.config.BucketName, u.config.Endpoint, objectPath)
}
