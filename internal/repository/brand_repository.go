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

type BrandRepositoryInterface interface {
	List(ctx context.Context, byName bool) ([]*model.Brand, error)
	GetByID(ctx context.Context, id int64) (*model.Brand, error)
	Create(ctx context.Context, b *model.Brand) error
	Update(ctx context.Context, b *model.Brand) error
	Delete(ctx context.Context, id int64) error
}

var _ BrandRepositoryInterface = (*BrandRepository)(nil)

type BrandRepository struct {
	DB *sqlx.DB
}

const brandColumns = `id, brand_name, brand_content, brand_uuid, product_link, product_images, created_at, updated_at`

// List returns brands newest first, or alphabetically when byName is set.
func (r *BrandRepository) List(ctx context.Context, byName bool) ([]*model.Brand, error) {
	order := "created_at DESC"
	if byName {
		order = "brand_name ASC"
	}
	brands := []*model.Brand{}
	err := r.DB.SelectContext(ctx, &brands, `SELECT `+brandColumns+` FROM brands ORDER BY `+order)
	return brands, err
}

func (r *BrandRepository) GetByID(ctx context.Context, id int64) (*model.Brand, error) {
	var b model.Brand
	err := r.DB.GetContext(ctx, &b, `SELECT `+brandColumns+` FROM brands WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.NewNotFound("brand", id)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BrandRepository) Create(ctx context.Context, b *model.Brand) error {
	if b.UUID == "" {
		b.UUID = uuid.NewString()
	}
	query := `
		INSERT INTO brands (brand_name, brand_content, brand_uuid, product_link, product_images)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	return r.DB.QueryRowxContext(ctx, query, b.Name, b.Content, b.UUID, b.ProductLink, b.ProductImages).
		Scan(&b.ID, &b.CreatedAt)
}

func (r *BrandRepository) Update(ctx context.Context, b *model.Brand) error {
	now := time.Now()
	res, err := r.DB.ExecContext(ctx, `
		UPDATE brands SET brand_name = $1, brand_content = $2, product_link = $3, product_images = $4, updated_at = $5
		WHERE id = $6`,
		b.Name, b.Content, b.ProductLink, b.ProductImages, now, b.ID)
	if err != nil {
		return err
	}
	b.UpdatedAt = &now
	return requireAffected(res, "brand", b.ID)
}

// Delete removes the brand row only. Campaigns keep their copy of the name.
func (r *BrandRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "brand", id)
}
