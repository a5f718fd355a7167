package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/model"
)

// CampaignFilter narrows List. Zero values mean no filter.
type CampaignFilter struct {
	Search string
	Status model.CampaignStatus
	Type   model.CampaignType
}

type CampaignRepositoryInterface interface {
	List(ctx context.Context, f CampaignFilter) ([]*model.Campaign, error)
	GetByID(ctx context.Context, id string) (*model.Campaign, error)
	Create(ctx context.Context, c *model.Campaign) error
	Update(ctx context.Context, c *model.Campaign) error
	UpdateStatusFrom(ctx context.Context, id string, from, to model.CampaignStatus) error
	Delete(ctx context.Context, id string) error
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)

type CampaignRepository struct {
	DB *sqlx.DB
}

const campaignColumns = `id, campaign_name, campaign_description, campaign_type, status,
	brand_id, brand_name, landing_page_id, landing_page_name, landing_page_url,
	email_subject, email_body, send_email_as_image, email_image_url, email_landing_page_url,
	mms_text_content, mms_image_url, selected_campaign_filter, lead_campaign_id,
	total_recipients, created_by, tags,
	emails_sent, emails_delivered, emails_opened, emails_clicked, emails_failed, emails_pending,
	mms_sent, mms_delivered, mms_failed, mms_pending,
	created_at, updated_at`

func (r *CampaignRepository) List(ctx context.Context, f CampaignFilter) ([]*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if s := strings.TrimSpace(f.Search); s != "" {
		query += fmt.Sprintf(" AND (campaign_name ILIKE $%d OR brand_name ILIKE $%d OR email_subject ILIKE $%d)", argPos, argPos, argPos)
		args = append(args, "%"+s+"%")
		argPos++
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, f.Status)
		argPos++
	}
	if f.Type != "" {
		query += fmt.Sprintf(" AND campaign_type = $%d", argPos)
		args = append(args, f.Type)
	}
	query += " ORDER BY created_at DESC"

	campaigns := []*model.Campaign{}
	if err := r.DB.SelectContext(ctx, &campaigns, query, args...); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	var c model.Campaign
	err := r.DB.GetContext(ctx, &c, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewNotFound("campaign", id)
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a new draft. Delivery counters always start at zero.
func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Status = model.StatusDraft
	c.CreatedAt = time.Now()
	c.EmailsSent, c.EmailsDelivered, c.EmailsOpened, c.EmailsClicked, c.EmailsFailed, c.EmailsPending = 0, 0, 0, 0, 0, 0
	c.MMSSent, c.MMSDelivered, c.MMSFailed, c.MMSPending = 0, 0, 0, 0

	query := `
		INSERT INTO campaigns (
			id, campaign_name, campaign_description, campaign_type, status,
			brand_id, brand_name, landing_page_id, landing_page_name, landing_page_url,
			email_subject, email_body, send_email_as_image, email_image_url, email_landing_page_url,
			mms_text_content, mms_image_url, selected_campaign_filter, lead_campaign_id,
			total_recipients, created_by, tags,
			emails_sent, emails_delivered, emails_opened, emails_clicked, emails_failed, emails_pending,
			mms_sent, mms_delivered, mms_failed, mms_pending, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22,
			0, 0, 0, 0, 0, 0, 0, 0, 0, 0, $23
		)`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Name, c.Description, c.Type, c.Status,
		c.BrandID, c.BrandName, c.LandingPageID, c.LandingPageName, c.LandingPageURL,
		c.EmailSubject, c.EmailBody, c.SendEmailAsImage, c.EmailImageURL, c.EmailLandingPageURL,
		c.MMSTextContent, c.MMSImageURL, c.SelectedCampaignFilter, c.LeadCampaignID,
		c.TotalRecipients, c.CreatedBy, c.Tags, c.CreatedAt,
	)
	return err
}

// Update rewrites the editable content of a campaign. Status and counters
// are left alone.
func (r *CampaignRepository) Update(ctx context.Context, c *model.Campaign) error {
	query := `
		UPDATE campaigns SET
			campaign_name = $1, campaign_description = $2, campaign_type = $3,
			brand_id = $4, brand_name = $5, landing_page_id = $6, landing_page_name = $7, landing_page_url = $8,
			email_subject = $9, email_body = $10, send_email_as_image = $11, email_image_url = $12,
			email_landing_page_url = $13, mms_text_content = $14, mms_image_url = $15,
			selected_campaign_filter = $16, lead_campaign_id = $17, total_recipients = $18, tags = $19,
			updated_at = $20
		WHERE id = $21`
	now := time.Now()
	res, err := r.DB.ExecContext(ctx, query,
		c.Name, c.Description, c.Type,
		c.BrandID, c.BrandName, c.LandingPageID, c.LandingPageName, c.LandingPageURL,
		c.EmailSubject, c.EmailBody, c.SendEmailAsImage, c.EmailImageURL,
		c.EmailLandingPageURL, c.MMSTextContent, c.MMSImageURL,
		c.SelectedCampaignFilter, c.LeadCampaignID, c.TotalRecipients, c.Tags,
		now, c.ID,
	)
	if err != nil {
		return err
	}
	c.UpdatedAt = &now
	return requireAffected(res, "campaign", c.ID)
}

// UpdateStatusFrom moves a campaign from one status to another in a single
// guarded write. It returns a ConflictError when the row is missing or no
// longer in status from, so concurrent transitions cannot both succeed.
func (r *CampaignRepository) UpdateStatusFrom(ctx context.Context, id string, from, to model.CampaignStatus) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE campaigns SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, time.Now(), id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewConflict("campaign %s is no longer %s", id, from)
	}
	return nil
}

func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "campaign", id)
}

// requireAffected turns a zero-row write into a NotFoundError.
func requireAffected(res sql.Result, entity string, id any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewNotFound(entity, id)
	}
	return nil
}
