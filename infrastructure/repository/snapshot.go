package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/novamind/content-pipeline-api/infrastructure/database/postgres"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/novamind/content-pipeline-api/pkg/utils"
)

const (
	snapshotsTable = "campaign_performance"
)

type SnapshotRepository interface {
	SaveSnapshot(snapshot *domain.PerformanceSnapshot) (*domain.PerformanceSnapshot, error)
	ListSnapshotsByCampaign(campaignID string) ([]*domain.PerformanceSnapshot, error)
	ListSnapshotsByCampaignAndPersona(campaignID string, persona domain.Persona) ([]*domain.PerformanceSnapshot, error)
	ListRecentSnapshotsByPersona(persona domain.Persona, limit int) ([]*domain.PerformanceSnapshot, error)
	CountSnapshotsByCampaign(campaignID string) (int, error)
}

type snapshotRepository struct {
	conn *postgres.Connection
}

func NewSnapshotRepository(conn *postgres.Connection) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

// SaveSnapshot insere uma nova medição. O histórico é append-only: correções
// entram como novas linhas, nunca como updates.
func (r *snapshotRepository) SaveSnapshot(snapshot *domain.PerformanceSnapshot) (*domain.PerformanceSnapshot, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar o id: %w", err)
	}

	query, args, err := squirrel.
		Insert(snapshotsTable).
		Columns(
			"id", "campaign_id", "persona", "contacts_sent", "opens", "clicks", "unsubscribes",
			"open_rate", "click_rate", "unsubscribe_rate",
		).
		Values(
			id, snapshot.CampaignID, snapshot.Persona, snapshot.ContactsSent, snapshot.Opens,
			snapshot.Clicks, snapshot.Unsubscribes, snapshot.OpenRate, snapshot.ClickRate,
			snapshot.UnsubscribeRate,
		).
		Suffix("RETURNING id, recorded_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&snapshot.ID, &snapshot.RecordedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return snapshot, nil
}

func (r *snapshotRepository) ListSnapshotsByCampaign(campaignID string) ([]*domain.PerformanceSnapshot, error) {
	queryBuilder := squirrel.
		Select(snapshotColumns).
		From(snapshotsTable).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("recorded_at ASC")

	return r.listSnapshots(queryBuilder)
}

func (r *snapshotRepository) ListSnapshotsByCampaignAndPersona(campaignID string, persona domain.Persona) ([]*domain.PerformanceSnapshot, error) {
	queryBuilder := squirrel.
		Select(snapshotColumns).
		From(snapshotsTable).
		Where(squirrel.Eq{"campaign_id": campaignID, "persona": persona}).
		OrderBy("recorded_at ASC")

	return r.listSnapshots(queryBuilder)
}

// ListRecentSnapshotsByPersona retorna até limit medições da persona em ordem
// cronológica crescente, considerando apenas as mais recentes.
func (r *snapshotRepository) ListRecentSnapshotsByPersona(persona domain.Persona, limit int) ([]*domain.PerformanceSnapshot, error) {
	queryBuilder := squirrel.
		Select(snapshotColumns).
		From(snapshotsTable).
		Where(squirrel.Eq{"persona": persona}).
		OrderBy("recorded_at DESC").
		Limit(uint64(limit))

	snapshots, err := r.listSnapshots(queryBuilder)
	if err != nil {
		return nil, err
	}

	// Reverte para ordem cronológica crescente
	for i, j := 0, len(snapshots)-1; i < j; i, j = i+1, j-1 {
		snapshots[i], snapshots[j] = snapshots[j], snapshots[i]
	}

	return snapshots, nil
}

func (r *snapshotRepository) CountSnapshotsByCampaign(campaignID string) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(snapshotsTable).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	err = r.conn.QueryRow(query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return count, nil
}

const snapshotColumns = "id, campaign_id, persona, contacts_sent, opens, clicks, unsubscribes, open_rate, click_rate, unsubscribe_rate, recorded_at"

func (r *snapshotRepository) listSnapshots(queryBuilder squirrel.SelectBuilder) ([]*domain.PerformanceSnapshot, error) {
	query, args, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.PerformanceSnapshot, 0)
	for rows.Next() {
		snapshot, err := r.scanSnapshotRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear o snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

func (r *snapshotRepository) scanSnapshotRows(rows *sql.Rows) (*domain.PerformanceSnapshot, error) {
	var snapshot domain.PerformanceSnapshot

	err := rows.Scan(
		&snapshot.ID,
		&snapshot.CampaignID,
		&snapshot.Persona,
		&snapshot.ContactsSent,
		&snapshot.Opens,
		&snapshot.Clicks,
		&snapshot.Unsubscribes,
		&snapshot.OpenRate,
		&snapshot.ClickRate,
		&snapshot.UnsubscribeRate,
		&snapshot.RecordedAt,
	)
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}
