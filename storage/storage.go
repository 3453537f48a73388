package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"trustyhands-server/config"
)

// Store accepts an uploaded file and returns a stable path or URL reference.
type Store interface {
	Save(ctx context.Context, header *multipart.FileHeader, folder string) (string, error)
}

// Extension whitelists mirrored from the original upload rules.
var (
	ImageExts    = []string{".jpg", ".jpeg", ".png"}
	DocumentExts = []string{".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png"}
	IDProofExts  = []string{".pdf", ".jpg", ".jpeg", ".png"}
)

// ValidateUpload checks extension and size before a file is stored.
func ValidateUpload(header *multipart.FileHeader, allowed []string, maxSizeMB int64) error {
	if header == nil || header.Size <= 0 {
		return fmt.Errorf("empty upload")
	}
	if header.Size > maxSizeMB*1024*1024 {
		return fmt.Errorf("file too large (max %dMB)", maxSizeMB)
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return fmt.Errorf("invalid file type. Allowed types: %s", strings.Join(allowed, ", "))
}

// LocalStore writes uploads under a directory on disk and returns
// "/uploads/..." paths served statically.
type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{Dir: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, header *multipart.FileHeader, folder string) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + "_" + filepath.Base(header.Filename)
	dir := s.Dir
	if folder != "" {
		dir = filepath.Join(s.Dir, folder)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	if folder != "" {
		return "/uploads/" + folder + "/" + name, nil
	}
	return "/uploads/" + name, nil
}

// CloudinaryStore uploads files to Cloudinary and returns secure URLs.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cfg config.CloudinaryConfig) (*CloudinaryStore, error) {
	url := fmt.Sprintf("cloudinary://%s:%s@%s", cfg.APIKey, cfg.APISecret, cfg.CloudName)
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Save(ctx context.Context, header *multipart.FileHeader, folder string) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	overwrite := true
	unique := true
	up, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:         "trustyhands/" + folder,
		PublicID:       strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)),
		Overwrite:      &overwrite,
		UniqueFilename: &unique,
	})
	if err != nil {
		return "", err
	}
	return up.SecureURL, nil
}

// New picks the Cloudinary store when credentials are configured, otherwise
// falls back to local disk.
func New() (Store, error) {
	cfg := config.AppConfig
	if cfg.Cloudinary.CloudName != "" && cfg.Cloudinary.APIKey != "" && cfg.Cloudinary.APISecret != "" {
		return NewCloudinaryStore(cfg.Cloudinary)
	}
	return NewLocalStore(cfg.Upload.Dir)
}
