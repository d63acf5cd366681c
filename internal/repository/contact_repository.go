package repository

import (
	"context"
	"errors"
	"fmt"

	"psytech/internal/domain/models"
	"psytech/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const contactsTable = "contact_submissions"

var contactColumns = []string{
	"id", "name", "email", "company", "company_type", "message", "phone", "created_at", "status",
}

type ContactRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewContactRepository(db *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ContactRepo) SaveContact(ctx context.Context, contact models.ContactSubmission) error {
	const op = "repository.contact_repository.SaveContact"

	query, args, err := r.sb.Insert(contactsTable).
		Columns(contactColumns...).
		Values(
			contact.ID,
			contact.Name,
			contact.Email,
			contact.Company,
			contact.CompanyType,
			contact.Message,
			contact.Phone,
			contact.CreatedAt,
			contact.Status,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *ContactRepo) ListContacts(ctx context.Context) ([]models.ContactSubmission, error) {
	const op = "repository.contact_repository.ListContacts"

	query, args, err := r.sb.Select(contactColumns...).
		From(contactsTable).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	contacts := make([]models.ContactSubmission, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		contacts = append(contacts, *contact)
	}

	return contacts, rows.Err()
}

func (r *ContactRepo) GetContact(ctx context.Context, contactID uuid.UUID) (*models.ContactSubmission, error) {
	const op = "repository.contact_repository.GetContact"

	query, args, err := r.sb.Select(contactColumns...).
		From(contactsTable).
		Where(sq.Eq{"id": contactID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	contact, err := scanContact(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrContactNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return contact, nil
}

func scanContact(row pgx.Row) (*models.ContactSubmission, error) {
	var c models.ContactSubmission

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Company,
		&c.CompanyType,
		&c.Message,
		&c.Phone,
		&c.CreatedAt,
		&c.Status,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}
