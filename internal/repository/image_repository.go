package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/model"
)

type ImageRepositoryInterface interface {
	List(ctx context.Context, brand string) ([]*model.Image, error)
	GetByID(ctx context.Context, id string) (*model.Image, error)
	Create(ctx context.Context, img *model.Image) error
	UpdateBrand(ctx context.Context, id string, brand *string) (*model.Image, error)
	Delete(ctx context.Context, id string) error
}

var _ ImageRepositoryInterface = (*ImageRepository)(nil)

type ImageRepository struct {
	DB *sqlx.DB
}

const imageColumns = `id, image_url, brand_name, file_name, file_size, mime_type, created_at, updated_at`

// List returns images newest first, optionally only those tagged with brand.
func (r *ImageRepository) List(ctx context.Context, brand string) ([]*model.Image, error) {
	images := []*model.Image{}
	if brand != "" {
		err := r.DB.SelectContext(ctx, &images,
			`SELECT `+imageColumns+` FROM images WHERE brand_name = $1 ORDER BY created_at DESC`, brand)
		return images, err
	}
	err := r.DB.SelectContext(ctx, &images, `SELECT `+imageColumns+` FROM images ORDER BY created_at DESC`)
	return images, err
}

// validImageID reports ids that cannot match the uuid primary key as not
// found instead of letting Postgres reject the cast.
func validImageID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return appErrors.NewNotFound("image", id)
	}
	return nil
}

func (r *ImageRepository) GetByID(ctx context.Context, id string) (*model.Image, error) {
	if err := validImageID(id); err != nil {
		return nil, err
	}
	var img model.Image
	err := r.DB.GetContext(ctx, &img, `SELECT `+imageColumns+` FROM images WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.NewNotFound("image", id)
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// Create inserts the metadata row and fills img with the stored values.
func (r *ImageRepository) Create(ctx context.Context, img *model.Image) error {
	query := `
		INSERT INTO images (image_url, brand_name, file_name, file_size, mime_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + imageColumns
	return r.DB.QueryRowxContext(ctx, query, img.ImageURL, img.BrandName, img.FileName, img.FileSize, img.MimeType).
		StructScan(img)
}

func (r *ImageRepository) UpdateBrand(ctx context.Context, id string, brand *string) (*model.Image, error) {
	if err := validImageID(id); err != nil {
		return nil, err
	}
	var img model.Image
	err := r.DB.QueryRowxContext(ctx,
		`UPDATE images SET brand_name = $1, updated_at = $2 WHERE id = $3 RETURNING `+imageColumns,
		brand, time.Now(), id).StructScan(&img)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.NewNotFound("image", id)
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	if err := validImageID(id); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "image", id)
}
