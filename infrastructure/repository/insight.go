package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/novamind/content-pipeline-api/infrastructure/database/postgres"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/novamind/content-pipeline-api/pkg/utils"
)

const (
	insightsTable = "performance_insights"
)

type InsightRepository interface {
	SaveInsight(insight *domain.InsightRecord) (*domain.InsightRecord, error)
	GetLatestInsightByCampaign(campaignID string) (*domain.InsightRecord, error)
	ListInsightsByCampaign(campaignID string) ([]*domain.InsightRecord, error)
}

type insightRepository struct {
	conn *postgres.Connection
}

func NewInsightRepository(conn *postgres.Connection) InsightRepository {
	return &insightRepository{
		conn: conn,
	}
}

// SaveInsight insere um novo registro de insight. Registros são append-only:
// gerações subsequentes criam novas linhas.
func (r *insightRepository) SaveInsight(insight *domain.InsightRecord) (*domain.InsightRecord, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar o id: %w", err)
	}

	query, args, err := squirrel.
		Insert(insightsTable).
		Columns("id", "campaign_id", "insight_text", "recommendations", "fallback").
		Values(id, insight.CampaignID, insight.InsightText, pq.Array(insight.Recommendations), insight.Fallback).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&insight.ID, &insight.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return insight, nil
}

func (r *insightRepository) GetLatestInsightByCampaign(campaignID string) (*domain.InsightRecord, error) {
	query, args, err := squirrel.
		Select("id, campaign_id, insight_text, recommendations, fallback, created_at").
		From(insightsTable).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	insight, err := r.scanInsight(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear o insight: %w", err)
	}

	return insight, nil
}

func (r *insightRepository) ListInsightsByCampaign(campaignID string) ([]*domain.InsightRecord, error) {
	query, args, err := squirrel.
		Select("id, campaign_id, insight_text, recommendations, fallback, created_at").
		From(insightsTable).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	insights := make([]*domain.InsightRecord, 0)
	for rows.Next() {
		insight, err := r.scanInsightRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear o insight: %w", err)
		}
		insights = append(insights, insight)
	}

	return insights, nil
}

func (r *insightRepository) scanInsight(row *sql.Row) (*domain.InsightRecord, error) {
	var insight domain.InsightRecord

	err := row.Scan(
		&insight.ID,
		&insight.CampaignID,
		&insight.InsightText,
		pq.Array(&insight.Recommendations),
		&insight.Fallback,
		&insight.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &insight, nil
}

func (r *insightRepository) scanInsightRows(rows *sql.Rows) (*domain.InsightRecord, error) {
	var insight domain.InsightRecord

	err := rows.Scan(
		&insight.ID,
		&insight.CampaignID,
		&insight.InsightText,
		pq.Array(&insight.Recommendations),
		&insight.Fallback,
		&insight.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &insight, nil
}
