package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/novamind/content-pipeline-api/infrastructure/database/postgres"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/novamind/content-pipeline-api/pkg/utils"
)

const (
	campaignsTable = "campaigns"
)

type CampaignRepository interface {
	CreateCampaign(campaign *domain.Campaign) (*domain.Campaign, error)
	GetCampaignByID(campaignID string) (*domain.Campaign, error)
	ListCampaigns(status *domain.CampaignStatus) ([]*domain.Campaign, error)
	UpdateCampaignStatus(campaignID string, status domain.CampaignStatus, sendDate *time.Time) error
	MarkCampaignSent(campaignID string, sendDate time.Time, externalRef string) error
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) CreateCampaign(campaign *domain.Campaign) (*domain.Campaign, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar o id: %w", err)
	}

	query, args, err := squirrel.
		Insert(campaignsTable).
		Columns("id", "content_id", "name", "status").
		Values(id, campaign.ContentID, campaign.Name, domain.CampaignStatusDraft).
		Suffix("RETURNING id, status, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&campaign.ID, &campaign.Status, &campaign.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) GetCampaignByID(campaignID string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select("id, content_id, name, send_date, status, external_campaign_ref, created_at").
		From(campaignsTable).
		Where(squirrel.Eq{"id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	campaign, err := r.scanCampaign(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear a campanha: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) ListCampaigns(status *domain.CampaignStatus) ([]*domain.Campaign, error) {
	queryBuilder := squirrel.
		Select("id, content_id, name, send_date, status, external_campaign_ref, created_at").
		From(campaignsTable).
		OrderBy("created_at DESC")

	if status != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign, err := r.scanCampaignRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear a campanha: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	return campaigns, nil
}

func (r *campaignRepository) UpdateCampaignStatus(campaignID string, status domain.CampaignStatus, sendDate *time.Time) error {
	queryBuilder := squirrel.
		Update(campaignsTable).
		Set("status", status).
		Where(squirrel.Eq{"id": campaignID})

	if sendDate != nil {
		queryBuilder = queryBuilder.Set("send_date", *sendDate)
	}

	query, args, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar as linhas afetadas: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// MarkCampaignSent grava status, data de envio e referência externa em um
// único UPDATE, condicionado ao rascunho: a transição é atômica mesmo sob
// requisições concorrentes
func (r *campaignRepository) MarkCampaignSent(campaignID string, sendDate time.Time, externalRef string) error {
	query, args, err := squirrel.
		Update(campaignsTable).
		Set("status", domain.CampaignStatusSent).
		Set("send_date", sendDate).
		Set("external_campaign_ref", externalRef).
		Where(squirrel.Eq{"id": campaignID, "status": domain.CampaignStatusDraft}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar as linhas afetadas: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *campaignRepository) scanCampaign(row *sql.Row) (*domain.Campaign, error) {
	var campaign domain.Campaign

	err := row.Scan(
		&campaign.ID,
		&campaign.ContentID,
		&campaign.Name,
		&campaign.SendDate,
		&campaign.Status,
		&campaign.ExternalCampaignRef,
		&campaign.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &campaign, nil
}

func (r *campaignRepository) scanCampaignRows(rows *sql.Rows) (*domain.Campaign, error) {
	var campaign domain.Campaign

	err := rows.Scan(
		&campaign.ID,
		&campaign.ContentID,
		&campaign.Name,
		&campaign.SendDate,
		&campaign.Status,
		&campaign.ExternalCampaignRef,
		&campaign.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &campaign, nil
}
