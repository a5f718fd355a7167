package service_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/model"
	"github.com/unclebandit/marketing-ops-backend/internal/service"
	"github.com/unclebandit/marketing-ops-backend/internal/storage"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func newImageService() (*service.ImageService, *MockImageRepo, *MockStore) {
	repo := newMockImageRepo()
	store := &MockStore{}
	svc := &service.ImageService{
		Images: repo,
		Store:  store,
		Now:    func() time.Time { return time.UnixMilli(1700000000000) },
	}
	return svc, repo, store
}

func TestUploadBatchContinuesPastFailures(t *testing.T) {
	svc, repo, store := newImageService()

	files := []service.UploadFile{
		{Name: "a.png", ContentType: "image/png", Size: 100, Open: readerOf(pngHeader)},
		{Name: "notes.txt", ContentType: "text/plain", Size: 10, Open: readerOf([]byte("hello"))},
		{Name: "huge.jpg", ContentType: "image/jpeg", Size: 15 * 1024 * 1024, Open: readerOf(nil)},
		{Name: "b.gif", ContentType: "image/gif", Size: 200, Open: readerOf([]byte("GIF89a"))},
	}

	res := svc.Upload(context.Background(), files, "  Acme  ")

	assert.True(t, res.Success)
	assert.Equal(t, service.UploadSummary{Total: 4, Successful: 2, Failed: 2}, res.Summary)
	assert.Len(t, res.Uploaded, 2)
	assert.Equal(t, []service.UploadError{
		{FileName: "notes.txt", Error: "File must be an image"},
		{FileName: "huge.jpg", Error: "File size must be less than 10MB"},
	}, res.Errors)

	assert.Len(t, store.puts, 2)
	assert.Len(t, repo.images, 2)
	require.NotNil(t, res.Uploaded[0].BrandName)
	assert.Equal(t, "Acme", *res.Uploaded[0].BrandName)
	assert.Equal(t, "image/png", res.Uploaded[0].MimeType)
	assert.Contains(t, res.Uploaded[0].ImageURL, "/images/1700000000000-")
}

func TestUploadTooLargeNeverTouchesStorage(t *testing.T) {
	svc, _, store := newImageService()

	res := svc.Upload(context.Background(), []service.UploadFile{
		{Name: "big.png", ContentType: "image/png", Size: 15 * 1000 * 1000, Open: readerOf(pngHeader)},
	}, "")

	require.Len(t, res.Errors, 1)
	assert.Equal(t, "File size must be less than 10MB", res.Errors[0].Error)
	assert.Empty(t, store.puts)
}

func TestUploadTypeCheckedBeforeSize(t *testing.T) {
	svc, _, _ := newImageService()

	res := svc.Upload(context.Background(), []service.UploadFile{
		{Name: "big.zip", ContentType: "application/zip", Size: 50 * 1024 * 1024, Open: readerOf(nil)},
	}, "")
	assert.Equal(t, "File must be an image", res.Errors[0].Error)
}

func TestUploadSniffsGenericContentType(t *testing.T) {
	svc, _, store := newImageService()

	res := svc.Upload(context.Background(), []service.UploadFile{
		{Name: "photo", ContentType: "application/octet-stream", Size: int64(len(pngHeader)), Open: readerOf(pngHeader)},
	}, "")

	require.Len(t, res.Uploaded, 1)
	assert.Equal(t, "image/png", res.Uploaded[0].MimeType)
	require.Len(t, store.puts, 1)
	assert.Regexp(t, `^1700000000000-[0-9a-z]{11}-0\.photo$`, store.puts[0])
}

func TestUploadStorageAndDatabaseFailures(t *testing.T) {
	svc, repo, store := newImageService()
	store.putErr = storage.ErrObjectExists

	res := svc.Upload(context.Background(), []service.UploadFile{
		{Name: "a.png", ContentType: "image/png", Size: 1, Open: readerOf(pngHeader)},
	}, "")
	assert.Equal(t, "Failed to upload image", res.Errors[0].Error)

	store.putErr = nil
	repo.createErr = errBoom
	res = svc.Upload(context.Background(), []service.UploadFile{
		{Name: "a.png", ContentType: "image/png", Size: 1, Open: readerOf(pngHeader)},
	}, "")
	assert.Equal(t, "Failed to save image information", res.Errors[0].Error)
	assert.Equal(t, 1, res.Summary.Failed)
}

func TestUploadEmptyBrandIsNull(t *testing.T) {
	svc, _, _ := newImageService()
	res := svc.Upload(context.Background(), []service.UploadFile{
		{Name: "a.png", ContentType: "image/png", Size: 1, Open: readerOf(pngHeader)},
	}, "   ")
	require.Len(t, res.Uploaded, 1)
	assert.Nil(t, res.Uploaded[0].BrandName)
}

func TestGenerateKey(t *testing.T) {
	now := time.UnixMilli(1712345678901)
	assert.Equal(t, "1712345678901-abc123-2.png", service.GenerateKey(now, "abc123", 2, "cat.photo.png"))
	assert.Equal(t, "1712345678901-abc123-0.README", service.GenerateKey(now, "abc123", 0, "README"))

	keys := map[string]bool{}
	svc, _, store := newImageService()
	for i := 0; i < 5; i++ {
		svc.Upload(context.Background(), []service.UploadFile{
			{Name: "a.png", ContentType: "image/png", Size: 1, Open: readerOf(pngHeader)},
		}, "")
	}
	for _, k := range store.puts {
		assert.Regexp(t, regexp.MustCompile(`^\d{13}-[0-9a-z]+-0\.png$`), k)
		keys[k] = true
	}
	assert.Len(t, keys, 5)
}

func TestDeleteDerivesPathFromURL(t *testing.T) {
	svc, repo, store := newImageService()
	repo.images["img-1"] = &model.Image{ID: "img-1", ImageURL: "https://proj.supabase.co/storage/v1/object/public/images/1700000000000-abc-0.png"}

	require.NoError(t, svc.Delete(context.Background(), "img-1"))
	assert.Equal(t, []string{"images/1700000000000-abc-0.png"}, store.deletes)
	assert.Empty(t, repo.images)
}

func TestDeleteSucceedsWhenStorageFails(t *testing.T) {
	svc, repo, store := newImageService()
	store.deleteErr = errBoom
	repo.images["img-1"] = &model.Image{ID: "img-1", ImageURL: "https://x/images/k.png"}

	require.NoError(t, svc.Delete(context.Background(), "img-1"))
	assert.Empty(t, repo.images)
}

func TestDeleteMissingImage(t *testing.T) {
	svc, _, store := newImageService()

	err := svc.Delete(context.Background(), "nope")
	var nf *appErrors.NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Empty(t, store.deletes)
}

func TestDeleteDatabaseFailure(t *testing.T) {
	svc, repo, _ := newImageService()
	repo.images["img-1"] = &model.Image{ID: "img-1", ImageURL: "https://x/images/k.png"}
	repo.deleteErr = errBoom

	assert.ErrorIs(t, svc.Delete(context.Background(), "img-1"), errBoom)
}
