package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/model"
	"github.com/unclebandit/marketing-ops-backend/internal/repository"
	"github.com/unclebandit/marketing-ops-backend/internal/storage"
)

// MaxImageSize is the per-file upload limit (10 MiB).
const MaxImageSize = 10 * 1024 * 1024

// Per-file error messages returned to the client.
const (
	ErrMsgNotImage   = "File must be an image"
	ErrMsgTooLarge   = "File size must be less than 10MB"
	ErrMsgUpload     = "Failed to upload image"
	ErrMsgSaveRecord = "Failed to save image information"
	ErrMsgInternal   = "Internal server error"
)

// UploadFile is one file of a multipart upload. Open may be called more
// than once.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type UploadError struct {
	FileName string `json:"fileName"`
	Error    string `json:"error"`
}

type UploadSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

type UploadResult struct {
	Success  bool           `json:"success"`
	Uploaded []*model.Image `json:"uploaded"`
	Errors   []UploadError  `json:"errors"`
	Summary  UploadSummary  `json:"summary"`
}

type ImageService struct {
	Images repository.ImageRepositoryInterface
	Store  storage.ObjectStore
	Now    func() time.Time
}

func (s *ImageService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *ImageService) List(ctx context.Context, brand string) ([]*model.Image, error) {
	return s.Images.List(ctx, strings.TrimSpace(brand))
}

// UpdateBrand retags an image. An empty brand clears the tag.
func (s *ImageService) UpdateBrand(ctx context.Context, id, brand string) (*model.Image, error) {
	return s.Images.UpdateBrand(ctx, id, trimmedOrNil(brand))
}

// Upload runs every file through validate, store, record. Files are
// processed sequentially and one failure never stops the batch.
func (s *ImageService) Upload(ctx context.Context, files []UploadFile, brandName string) *UploadResult {
	res := &UploadResult{
		Success:  true,
		Uploaded: []*model.Image{},
		Errors:   []UploadError{},
	}
	brand := trimmedOrNil(brandName)

	for i, f := range files {
		img, msg := s.uploadOne(ctx, i, f, brand)
		if msg != "" {
			res.Errors = append(res.Errors, UploadError{FileName: f.Name, Error: msg})
			continue
		}
		res.Uploaded = append(res.Uploaded, img)
	}

	res.Summary = UploadSummary{
		Total:      len(files),
		Successful: len(res.Uploaded),
		Failed:     len(res.Errors),
	}
	return res
}

func (s *ImageService) uploadOne(ctx context.Context, index int, f UploadFile, brand *string) (img *model.Image, msg string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("image upload panicked", "file", f.Name, "panic", r)
			img, msg = nil, ErrMsgInternal
		}
	}()

	contentType, err := s.contentType(f)
	if err != nil {
		slog.Error("read upload failed", "file", f.Name, "error", err)
		return nil, ErrMsgInternal
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrMsgNotImage
	}
	if f.Size > MaxImageSize {
		return nil, ErrMsgTooLarge
	}

	key := GenerateKey(s.now(), randomBase36(11), index, f.Name)

	rc, err := f.Open()
	if err != nil {
		slog.Error("open upload failed", "file", f.Name, "error", err)
		return nil, ErrMsgInternal
	}
	defer rc.Close()

	if err := s.Store.Put(ctx, key, rc, f.Size, contentType); err != nil {
		slog.Error("storage upload failed", "file", f.Name, "key", key, "error", err)
		return nil, ErrMsgUpload
	}

	img = &model.Image{
		ImageURL:  s.Store.PublicURL(key),
		BrandName: brand,
		FileName:  f.Name,
		FileSize:  f.Size,
		MimeType:  contentType,
	}
	if err := s.Images.Create(ctx, img); err != nil {
		slog.Error("image insert failed", "file", f.Name, "error", err)
		return nil, ErrMsgSaveRecord
	}
	return img, ""
}

// contentType trusts the declared part type unless it is missing or
// generic, in which case the bytes are sniffed.
func (s *ImageService) contentType(f UploadFile) (string, error) {
	ct := strings.TrimSpace(f.ContentType)
	if ct != "" && ct != "application/octet-stream" {
		return ct, nil
	}
	if f.Open == nil {
		return ct, nil
	}
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	m, err := mimetype.DetectReader(rc)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

// GenerateKey builds "{unixMillis}-{random}-{index}.{ext}". The extension is
// whatever follows the last "." of the original name, or the whole name if
// there is none.
func GenerateKey(now time.Time, random string, index int, fileName string) string {
	ext := fileName
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		ext = fileName[i+1:]
	}
	return fmt.Sprintf("%d-%s-%d.%s", now.UnixMilli(), random, index, ext)
}

// Delete removes the metadata row and, best effort, the stored object. It
// succeeds whenever the row is gone, even if the object is orphaned.
func (s *ImageService) Delete(ctx context.Context, id string) error {
	img, err := s.Images.GetByID(ctx, id)
	if err != nil {
		return err
	}

	path := storage.PathFromURL(img.ImageURL)
	if err := s.Store.Delete(ctx, path); err != nil {
		slog.Warn("storage delete failed, removing record anyway", "image_id", id, "path", path, "error", err)
	}

	if err := s.Images.Delete(ctx, id); err != nil {
		var nf *appErrors.NotFoundError
		if errors.As(err, &nf) {
			// Deleted concurrently; the row is gone either way.
			return nil
		}
		return err
	}
	return nil
}

func trimmedOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
