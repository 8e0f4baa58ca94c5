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
	newslettersTable = "newsletters"
)

type NewsletterRepository interface {
	CreateNewsletter(newsletter *domain.Newsletter) (*domain.Newsletter, error)
	GetNewsletterByID(newsletterID string) (*domain.Newsletter, error)
	GetNewsletterByContentAndPersona(contentID string, persona domain.Persona) (*domain.Newsletter, error)
	ListNewslettersByContentID(contentID string) ([]*domain.Newsletter, error)
}

type newsletterRepository struct {
	conn *postgres.Connection
}

func NewNewsletterRepository(conn *postgres.Connection) NewsletterRepository {
	return &newsletterRepository{
		conn: conn,
	}
}

func (r *newsletterRepository) CreateNewsletter(newsletter *domain.Newsletter) (*domain.Newsletter, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar o id: %w", err)
	}

	query, args, err := squirrel.
		Insert(newslettersTable).
		Columns("id", "content_id", "persona", "subject_line", "body", "word_count").
		Values(id, newsletter.ContentID, newsletter.Persona, newsletter.SubjectLine, newsletter.Body, newsletter.WordCount).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&newsletter.ID, &newsletter.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return newsletter, nil
}

func (r *newsletterRepository) GetNewsletterByID(newsletterID string) (*domain.Newsletter, error) {
	query, args, err := squirrel.
		Select("id, content_id, persona, subject_line, body, word_count, created_at").
		From(newslettersTable).
		Where(squirrel.Eq{"id": newsletterID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	newsletter, err := r.scanNewsletter(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear a newsletter: %w", err)
	}

	return newsletter, nil
}

func (r *newsletterRepository) GetNewsletterByContentAndPersona(contentID string, persona domain.Persona) (*domain.Newsletter, error) {
	query, args, err := squirrel.
		Select("id, content_id, persona, subject_line, body, word_count, created_at").
		From(newslettersTable).
		Where(squirrel.Eq{"content_id": contentID, "persona": persona}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	newsletter, err := r.scanNewsletter(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear a newsletter: %w", err)
	}

	return newsletter, nil
}

func (r *newsletterRepository) ListNewslettersByContentID(contentID string) ([]*domain.Newsletter, error) {
	query, args, err := squirrel.
		Select("id, content_id, persona, subject_line, body, word_count, created_at").
		From(newslettersTable).
		Where(squirrel.Eq{"content_id": contentID}).
		OrderBy("persona ASC").
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

	newsletters := make([]*domain.Newsletter, 0)
	for rows.Next() {
		newsletter, err := r.scanNewsletterRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear a newsletter: %w", err)
		}
		newsletters = append(newsletters, newsletter)
	}

	return newsletters, nil
}

func (r *newsletterRepository) scanNewsletter(row *sql.Row) (*domain.Newsletter, error) {
	var newsletter domain.Newsletter

	err := row.Scan(
		&newsletter.ID,
		&newsletter.ContentID,
		&newsletter.Persona,
		&newsletter.SubjectLine,
		&newsletter.Body,
		&newsletter.WordCount,
		&newsletter.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &newsletter, nil
}

func (r *newsletterRepository) scanNewsletterRows(rows *sql.Rows) (*domain.Newsletter, error) {
	var newsletter domain.Newsletter

	err := rows.Scan(
		&newsletter.ID,
		&newsletter.ContentID,
		&newsletter.Persona,
		&newsletter.SubjectLine,
		&newsletter.Body,
		&newsletter.WordCount,
		&newsletter.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &newsletter, nil
}
