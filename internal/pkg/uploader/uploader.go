package uploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"trailblazer/internal/pkg/config"
)

// Uploader 存储字节并返回可访问的 URL，objectPath 为以 / 分隔的相对路径
type Uploader interface {
	Save(ctx context.Context, objectPath string, r io.Reader, contentType string) error
	URL(objectPath string) string
}

// New 按配置选择存储后端
func New(cfg *config.Config) (Uploader, error) {
	switch cfg.Upload.Driver {
	case "oss":
		return NewAliyunOSSUploader(cfg.OSS)
	case "local", "":
		return NewLocalUploader(cfg.Upload.MediaDir, "/media"), nil
	default:
		return nil, fmt.Errorf("unsupported upload driver %q", cfg.Upload.Driver)
	}
}

// SanitizeFilename 去掉目录部分，防止路径穿越
func SanitizeFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSpace(base)
	if base == "" || base == "." || base == "/" || base == ".." {
		return "upload"
	}
	return base
}

// TrailPhotoPath 生成 trails/{id}/{unix}_{basename}
func TrailPhotoPath(trailID uint, filename string, now time.Time) string {
	return fmt.Sprintf("trails/%d/%d_%s", trailID, now.Unix(), SanitizeFilename(filename))
}

// LocalUploader 本地磁盘存储，通过静态路由对外提供
type LocalUploader struct {
	root      string
	urlPrefix string
}

func NewLocalUploader(root, urlPrefix string) *LocalUploader {
	return &LocalUploader{root: root, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

// Root 媒体根目录
func (u *LocalUploader) Root() string {
	return u.root
}

func (u *LocalUploader) Save(ctx context.Context, objectPath string, r io.Reader, contentType string) error {
	dest := filepath.Join(u.root, filepath.FromSlash(objectPath))
	if !strings.HasPrefix(dest, filepath.Clean(u.root)+string(os.PathSeparator)) {
		return fmt.Errorf("invalid object path %q", objectPath)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dest)
		return err
	}
	return f.Close()
}

func (u *LocalUploader) URL(objectPath string) string {
	return u.urlPrefix + "/" + objectPath
}
