package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ==================== 配置 ====================

type StorageConfig struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	CDNDomain string // CDN 域名 (可选)
	BasePath  string // 基础路径前缀
}

// ==================== 服务 ====================

// StorageService 商品媒体对象存储 (S3)
type StorageService struct {
	client *s3.Client
	config *StorageConfig
}

// NewStorageService 创建存储服务
func NewStorageService(cfg *StorageConfig) (*StorageService, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("对象存储配置不完整: bucket/region 必填")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("AWS 配置加载失败: %w", err)
	}

	return &StorageService{
		client: s3.NewFromConfig(awsCfg),
		config: cfg,
	}, nil
}

// Upload 上传文件，返回公开访问 URL
func (s *StorageService) Upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	key := s.objectKey(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("S3 上传失败: %w", err)
	}

	return s.publicURL(key), nil
}

// Delete 按公开 URL 删除对象
func (s *StorageService) Delete(ctx context.Context, url string) error {
	key := s.keyFromURL(url)
	if key == "" {
		return fmt.Errorf("无法从 URL 解析对象 Key: %s", url)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("S3 删除失败: %w", err)
	}
	return nil
}

// ==================== 内部辅助 ====================

// objectKey 按月份分目录，文件名用 UUID 防止覆盖
func (s *StorageService) objectKey(filename string) string {
	ext := path.Ext(filename)
	return path.Join(s.config.BasePath, time.Now().Format("2006/01"), uuid.NewString()+ext)
}

func (s *StorageService) publicURL(key string) string {
	if s.config.CDNDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.config.CDNDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.Bucket, s.config.Region, key)
}

func (s *StorageService) keyFromURL(url string) string {
	if s.config.CDNDomain != "" {
		if prefix := fmt.Sprintf("https://%s/", s.config.CDNDomain); strings.HasPrefix(url, prefix) {
			return strings.TrimPrefix(url, prefix)
		}
	}
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.config.Bucket, s.config.Region)
	if strings.HasPrefix(url, prefix) {
		return strings.TrimPrefix(url, prefix)
	}
	return ""
}
