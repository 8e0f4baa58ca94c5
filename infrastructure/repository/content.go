package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/novamind/content-pipeline-api/infrastructure/database/postgres"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/novamind/content-pipeline-api/pkg/utils"
)

const (
	contentTable = "content_items"
)

type ContentRepository interface {
	CreateContent(content *domain.ContentItem) (*domain.ContentItem, error)
	GetContentByID(contentID string) (*domain.ContentItem, error)
	ListContent() ([]*domain.ContentItem, error)
}

type contentRepository struct {
	conn *postgres.Connection
}

func NewContentRepository(conn *postgres.Connection) ContentRepository {
	return &contentRepository{
		conn: conn,
	}
}

func (r *contentRepository) CreateContent(content *domain.ContentItem) (*domain.ContentItem, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar o id: %w", err)
	}

	query, args, err := squirrel.
		Insert(contentTable).
		Columns("id", "topic", "title", "body", "word_count").
		Values(id, content.Topic, content.Title, content.Body, content.WordCount).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&content.ID, &content.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return content, nil
}

func (r *contentRepository) GetContentByID(contentID string) (*domain.ContentItem, error) {
	query, args, err := squirrel.
		Select("id, topic, title, body, word_count, created_at").
		From(contentTable).
		Where(squirrel.Eq{"id": contentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	content, err := r.scanContent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear o conteúdo: %w", err)
	}

	return content, nil
}

func (r *contentRepository) scanContent(row *sql.Row) (*domain.ContentItem, error) {
	var content domain.ContentItem

	err := row.Scan(
		&content.ID,
		&content.Topic,
		&content.Title,
		&content.Body,
		&content.WordCount,
		&content.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &content, nil
}

func (r *contentRepository) ListContent() ([]*domain.ContentItem, error) {
	query, args, err := squirrel.
		Select("id, topic, title, body, word_count, created_at").
		From(contentTable).
		OrderBy("created_at DESC").
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

	contents := make([]*domain.ContentItem, 0)
	for rows.Next() {
		content, err := r.scanContentRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear o conteúdo: %w", err)
		}
		contents = append(contents, content)
	}

	return contents, nil
}

func (r *contentRepository) scanContentRows(rows *sql.Rows) (*domain.ContentItem, error) {
	var content domain.ContentItem

	err := rows.Scan(
		&content.ID,
		&content.Topic,
		&content.Title,
		&content.Body,
		&content.WordCount,
		&content.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &content, nil
}
