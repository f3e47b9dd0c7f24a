package service

import (
	"Mingle/config"
	"Mingle/pkg/apperr"
	"Mingle/types"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

var _ IMediaStore = (*OssService)(nil)

// IMediaStore 资料图片存储
type IMediaStore interface {
	// Upload 表单上传，返回公网地址和对象 key
	Upload(ctx context.Context, userID int64, header *multipart.FileHeader) (*types.UploadImageResp, error)

	// Delete 删除对象
	Delete(ctx context.Context, key string) error

	// Presign 生成客户端直传的 PUT 地址
	Presign(ctx context.Context, userID int64, req types.PresignRequest) (*types.PresignResp, error)

	// PublicURL 对象 key 对应的访问地址
	PublicURL(key string) string
}

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type OssService struct {
	Client        *oss.Client
	BucketName    string
	Region        string
	PublicBaseURL string
	MaxSize       int64
	PresignExpire time.Duration
}

func NewOssService(cfg *config.OssConfig) *OssService {
	ossCfg := oss.LoadDefaultConfig().
		WithEndpoint(cfg.Endpoint).
		WithRegion(cfg.Region).
		WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.AccessKeySecret,
			),
		)

	return &OssService{
		Client:        oss.NewClient(ossCfg),
		BucketName:    cfg.Bucket,
		Region:        cfg.Region,
		PublicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		MaxSize:       cfg.MaxImageSize,
		PresignExpire: cfg.PresignExpire,
	}
}

func (s *OssService) Upload(ctx context.Context, userID int64, header *multipart.FileHeader) (*types.UploadImageResp, error) {
	if header == nil {
		return nil, apperr.Validation("missing image")
	}
	// header.Size 不可信，但可做第一道拦截
	if header.Size <= 0 || header.Size > s.MaxSize {
		return nil, apperr.Validationf("image size must be between 1 byte and %d bytes", s.MaxSize)
	}

	f, err := header.Open()
	if err != nil {
		return nil, apperr.Validation("unreadable image")
	}
	defer f.Close()

	contentType, cfg, err := SniffImage(f)
	if err != nil {
		return nil, err
	}

	key := objectKey(userID, imageExt[contentType])
	if _, err := s.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket:      oss.Ptr(s.BucketName),
		Key:         oss.Ptr(key),
		ContentType: oss.Ptr(contentType),
		Body:        io.LimitReader(f, s.MaxSize+1),
	}); err != nil {
		return nil, apperr.Store(fmt.Errorf("put object %s: %w", key, err))
	}

	return &types.UploadImageResp{
		URL:         s.PublicURL(key),
		Key:         key,
		ContentType: contentType,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}

// Delete 删除对象
func (s *OssService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(key),
	})
	return err
}

func (s *OssService) Presign(ctx context.Context, userID int64, req types.PresignRequest) (*types.PresignResp, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	ext := strings.ToLower(path.Ext(req.FileName))
	if ext == "" || ext == ".jpeg" {
		ext = imageExt[req.FileType]
	}
	if ext != imageExt[req.FileType] {
		return nil, apperr.Validation("file extension does not match fileType")
	}

	key := objectKey(userID, ext)
	result, err := s.Client.Presign(ctx, &oss.PutObjectRequest{
		Bucket:      oss.Ptr(s.BucketName),
		Key:         oss.Ptr(key),
		ContentType: oss.Ptr(req.FileType),
	}, oss.PresignExpires(s.PresignExpire))
	if err != nil {
		return nil, apperr.Store(fmt.Errorf("presign %s: %w", key, err))
	}

	return &types.PresignResp{
		UploadURL: result.URL,
		Key:       key,
		URL:       s.PublicURL(key),
		ExpiresAt: result.Expiration,
	}, nil
}

func (s *OssService) PublicURL(key string) string {
	if s.PublicBaseURL != "" {
		return s.PublicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.oss-%s.aliyuncs.com/%s", s.BucketName, s.Region, key)
}

// SniffImage 按文件头判断类型并读取尺寸，读完后把流重置到开头
func SniffImage(r io.ReadSeeker) (string, image.Config, error) {
	head := make([]byte, 512)
	n, _ := io.ReadFull(r, head)
	contentType := http.DetectContentType(head[:n])
	if _, ok := imageExt[contentType]; !ok {
		return "", image.Config{}, apperr.Validationf("unsupported image type: %s", contentType)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", image.Config{}, apperr.Validation("unreadable image")
	}

	// 只解析头部，不解码全图
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return "", image.Config{}, apperr.Validation("invalid image")
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", image.Config{}, apperr.Validation("unreadable image")
	}
	return contentType, cfg, nil
}

// ProfileImagePrefix 用户图片的 key 前缀，只允许引用和删除自己前缀下的对象
func ProfileImagePrefix(userID int64) string {
	return fmt.Sprintf("profiles/%d/", userID)
}

// OwnsImageKey key 是否位于该用户的前缀下
func OwnsImageKey(userID int64, key string) bool {
	rest, ok := strings.CutPrefix(key, ProfileImagePrefix(userID))
	return ok && rest != "" && !strings.Contains(rest, "/") && !strings.Contains(rest, "..")
}

func objectKey(userID int64, ext string) string {
	return ProfileImagePrefix(userID) + uuid.NewString() + ext
}
