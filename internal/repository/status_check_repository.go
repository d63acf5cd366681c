package repository

import (
	"context"
	"fmt"

	"psytech/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
)

const statusChecksTable = "status_checks"

type StatusCheckRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewStatusCheckRepository(db *pgxpool.Pool) *StatusCheckRepo {
	return &StatusCheckRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *StatusCheckRepo) SaveStatusCheck(ctx context.Context, check models.StatusCheck) error {
	const op = "repository.status_check_repository.SaveStatusCheck"

	query, args, err := r.sb.Insert(statusChecksTable).
		Columns("id", "client_name", "timestamp").
		Values(check.ID, check.ClientName, check.Timestamp).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *StatusCheckRepo) ListStatusChecks(ctx context.Context, limit int) ([]models.StatusCheck, error) {
	const op = "repository.status_check_repository.ListStatusChecks"

	query, args, err := r.sb.Select("id", "client_name", "timestamp").
		From(statusChecksTable).
		OrderBy("timestamp DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	checks := make([]models.StatusCheck, 0)
	for rows.Next() {
		var check models.StatusCheck
		if err := rows.Scan(&check.ID, &check.ClientName, &check.Timestamp); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		checks = append(checks, check)
	}

	return checks, rows.Err()
}
