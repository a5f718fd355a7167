// internal/handler/image_handler.go
package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/httputil"
	"github.com/unclebandit/marketing-ops-backend/internal/service"
)

// ImageHandler holds the image library endpoints, including the multipart
// upload route.
type ImageHandler struct {
	Service        *service.ImageService
	MaxUploadBytes int64
}

func (h *ImageHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.Service.List(r.Context(), r.URL.Query().Get("brand"))
	if err != nil {
		httputil.WriteError(w, err, "Failed to fetch images")
		return
	}
	httputil.OK(w, images)
}

func (h *ImageHandler) UpdateImageBrand(w http.ResponseWriter, r *http.Request) {
	var body struct {
		BrandName string `json:"brand_name"`
	}
	if !httputil.Decode(w, r, &body) {
		return
	}
	img, err := h.Service.UpdateBrand(r.Context(), chi.URLParam(r, "id"), body.BrandName)
	if err != nil {
		httputil.WriteError(w, err, "Failed to update image")
		return
	}
	httputil.OK(w, img)
}

// UploadImages accepts files under "files[<n>]" (also "files" and "file")
// and an optional "brandName" field.
func (h *ImageHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	if h.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.Error(w, http.StatusRequestEntityTooLarge, "Upload too large")
			return
		}
		httputil.BadRequest(w, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := collectFiles(r.MultipartForm)
	if len(files) == 0 {
		httputil.BadRequest(w, "No files provided")
		return
	}

	result := h.Service.Upload(r.Context(), files, r.FormValue("brandName"))
	slog.Info("images uploaded",
		"total", result.Summary.Total,
		"successful", result.Summary.Successful,
		"failed", result.Summary.Failed,
		"request_id", requestID(r))
	httputil.OK(w, result)
}

// DeleteImage removes an image by ?id=. The response is a success as long
// as the metadata row is gone.
func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		httputil.BadRequest(w, "Image ID is required")
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		var nf *appErrors.NotFoundError
		if errors.As(err, &nf) {
			httputil.NotFound(w, "Image not found")
			return
		}
		slog.Error("image delete failed", "image_id", id, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to delete image")
		return
	}
	httputil.OK(w, map[string]any{
		"success": true,
		"message": "Image deleted successfully",
	})
}

type filePart struct {
	key    string
	header *multipart.FileHeader
}

// collectFiles returns the uploaded files in field order: files[0],
// files[1], ... by numeric index, then any plain "files"/"file" parts.
func collectFiles(form *multipart.Form) []service.UploadFile {
	var parts []filePart
	for key, headers := range form.File {
		if !strings.HasPrefix(key, "files[") && key != "files" && key != "file" {
			continue
		}
		for _, fh := range headers {
			parts = append(parts, filePart{key: key, header: fh})
		}
	}
	sort.SliceStable(parts, func(i, j int) bool {
		return lessKey(parts[i].key, parts[j].key)
	})

	files := make([]service.UploadFile, 0, len(parts))
	for _, p := range parts {
		fh := p.header
		files = append(files, service.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				f, err := fh.Open()
				if err != nil {
					return nil, err
				}
				return f, nil
			},
		})
	}
	return files
}

func lessKey(a, b string) bool {
	ai, aok := keyIndex(a)
	bi, bok := keyIndex(b)
	switch {
	case aok && bok:
		return ai < bi
	case aok != bok:
		return aok
	}
	return a < b
}

func keyIndex(key string) (int, bool) {
	if !strings.HasPrefix(key, "files[") || !strings.HasSuffix(key, "]") {
		return 0, false
	}
	n, err := strconv.Atoi(key[len("files[") : len(key)-1])
	return n, err == nil
}
