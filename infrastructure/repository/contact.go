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
	contactsTable = "contacts"
)

type ContactRepository interface {
	UpsertContact(contact *domain.Contact) (*domain.Contact, error)
	GetContactByID(contactID string) (*domain.Contact, error)
	ListContactsByPersona(persona domain.Persona) ([]*domain.Contact, error)
	CountContactsByPersona(persona domain.Persona) (int, error)
}

type contactRepository struct {
	conn *postgres.Connection
}

func NewContactRepository(conn *postgres.Connection) ContactRepository {
	return &contactRepository{
		conn: conn,
	}
}

// UpsertContact insere o contato ou atualiza o registro existente com o mesmo
// e-mail. O id original é preservado em caso de conflito.
func (r *contactRepository) UpsertContact(contact *domain.Contact) (*domain.Contact, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar o id: %w", err)
	}

	query, args, err := squirrel.
		Insert(contactsTable).
		Columns("id", "email", "first_name", "last_name", "persona", "company", "external_contact_ref").
		Values(id, contact.Email, contact.FirstName, contact.LastName, contact.Persona, contact.Company, contact.ExternalContactRef).
		Suffix(`ON CONFLICT (email) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			persona = EXCLUDED.persona,
			company = EXCLUDED.company,
			external_contact_ref = EXCLUDED.external_contact_ref,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return contact, nil
}

func (r *contactRepository) GetContactByID(contactID string) (*domain.Contact, error) {
	query, args, err := squirrel.
		Select("id, email, first_name, last_name, persona, company, external_contact_ref, created_at, updated_at").
		From(contactsTable).
		Where(squirrel.Eq{"id": contactID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	contact, err := r.scanContact(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear o contato: %w", err)
	}

	return contact, nil
}

func (r *contactRepository) ListContactsByPersona(persona domain.Persona) ([]*domain.Contact, error) {
	query, args, err := squirrel.
		Select("id, email, first_name, last_name, persona, company, external_contact_ref, created_at, updated_at").
		From(contactsTable).
		Where(squirrel.Eq{"persona": persona}).
		OrderBy("email ASC").
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

	contacts := make([]*domain.Contact, 0)
	for rows.Next() {
		contact, err := r.scanContactRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear o contato: %w", err)
		}
		contacts = append(contacts, contact)
	}

	return contacts, nil
}

func (r *contactRepository) CountContactsByPersona(persona domain.Persona) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(contactsTable).
		Where(squirrel.Eq{"persona": persona}).
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

func (r *contactRepository) scanContact(row *sql.Row) (*domain.Contact, error) {
	var contact domain.Contact

	err := row.Scan(
		&contact.ID,
		&contact.Email,
		&contact.FirstName,
		&contact.LastName,
		&contact.Persona,
		&contact.Company,
		&contact.ExternalContactRef,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

func (r *contactRepository) scanContactRows(rows *sql.Rows) (*domain.Contact, error) {
	var contact domain.Contact

	err := rows.Scan(
		&contact.ID,
		&contact.Email,
		&contact.FirstName,
		&contact.LastName,
		&contact.Persona,
		&contact.Company,
		&contact.ExternalContactRef,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &contact, nil
}
