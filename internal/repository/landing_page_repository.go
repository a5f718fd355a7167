package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/model"
)

type LandingPageRepositoryInterface interface {
	List(ctx context.Context) ([]*model.LandingPage, error)
	GetByID(ctx context.Context, id int64) (*model.LandingPage, error)
	GetBySessionID(ctx context.Context, sessionID string) (*model.LandingPage, error)
	Create(ctx context.Context, p *model.LandingPage) error
	UpdateHeaderCode(ctx context.Context, id int64, headerCode string) error
	Delete(ctx context.Context, id int64) error
}

var _ LandingPageRepositoryInterface = (*LandingPageRepository)(nil)

type LandingPageRepository struct {
	DB *sqlx.DB
}

const landingPageColumns = `id, name, brand, session_id, html_code, header_code, images, purchase_link, created_at`

func (r *LandingPageRepository) List(ctx context.Context) ([]*model.LandingPage, error) {
	pages := []*model.LandingPage{}
	err := r.DB.SelectContext(ctx, &pages, `SELECT `+landingPageColumns+` FROM landingpages ORDER BY created_at DESC`)
	return pages, err
}

func (r *LandingPageRepository) GetByID(ctx context.Context, id int64) (*model.LandingPage, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *LandingPageRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.LandingPage, error) {
	return r.getOne(ctx, `WHERE session_id = $1`, sessionID)
}

func (r *LandingPageRepository) getOne(ctx context.Context, where string, arg any) (*model.LandingPage, error) {
	var p model.LandingPage
	err := r.DB.GetContext(ctx, &p, `SELECT `+landingPageColumns+` FROM landingpages `+where+` LIMIT 1`, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.NewNotFound("landing page", arg)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *LandingPageRepository) Create(ctx context.Context, p *model.LandingPage) error {
	query := `
		INSERT INTO landingpages (name, brand, session_id, html_code, images, purchase_link)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	return r.DB.QueryRowxContext(ctx, query, p.Name, p.Brand, p.SessionID, p.HTMLCode, p.Images, p.PurchaseLink).
		Scan(&p.ID, &p.CreatedAt)
}

func (r *LandingPageRepository) UpdateHeaderCode(ctx context.Context, id int64, headerCode string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE landingpages SET header_code = $1 WHERE id = $2`, headerCode, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "landing page", id)
}

func (r *LandingPageRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM landingpages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "landing page", id)
}
