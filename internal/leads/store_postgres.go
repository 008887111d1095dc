package leads

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modonevolutio/modon/internal/platform/database/schema"
	"github.com/modonevolutio/modon/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, lead *Lead) error {
	s := schema.Lead
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s, %s
	`,
		s.Table, s.ID, s.PropertyID, s.Name, s.Email, s.Phone, s.Message,
		s.Locale, s.Status, s.CreatedAt, s.UpdatedAt,
		s.CreatedAt, s.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		lead.ID, lead.PropertyID, lead.Name, lead.Email, lead.Phone,
		lead.Message, lead.Locale, lead.Status,
	).Scan(&lead.CreatedAt, &lead.UpdatedAt)

	return dberr.Wrap(err, "create_lead")
}

func (repository *PostgresRepository) List(context context.Context, status string, limit, offset int) ([]*Lead, int, error) {
	s := schema.Lead

	where := "TRUE"
	args := []any{}
	if status != "" {
		where = fmt.Sprintf("%s = $1", s.Status)
		args = append(args, status)
	}

	countQuery := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", s.Table, where)
	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_leads")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s
		ORDER BY %s DESC
		LIMIT $%d OFFSET $%d
	`,
		s.ID, s.PropertyID, s.Name, s.Email, s.Phone, s.Message,
		s.Locale, s.Status, s.CreatedAt, s.UpdatedAt,
		s.Table, where, s.CreatedAt, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_leads")
	}
	defer rows.Close()

	var result []*Lead
	for rows.Next() {
		lead := &Lead{}
		if err := rows.Scan(
			&lead.ID, &lead.PropertyID, &lead.Name, &lead.Email, &lead.Phone,
			&lead.Message, &lead.Locale, &lead.Status, &lead.CreatedAt, &lead.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_lead")
		}
		result = append(result, lead)
	}

	return result, total, rows.Err()
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Lead, error) {
	s := schema.Lead
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		s.ID, s.PropertyID, s.Name, s.Email, s.Phone, s.Message,
		s.Locale, s.Status, s.CreatedAt, s.UpdatedAt,
		s.Table, s.ID,
	)

	lead := &Lead{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&lead.ID, &lead.PropertyID, &lead.Name, &lead.Email, &lead.Phone,
		&lead.Message, &lead.Locale, &lead.Status, &lead.CreatedAt, &lead.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "get_lead")
	}
	return lead, nil
}

func (repository *PostgresRepository) UpdateStatus(context context.Context, id, status string) error {
	s := schema.Lead
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		s.Table, s.Status, s.UpdatedAt, s.ID,
	)

	cmd, err := repository.db.Exec(context, query, id, status)
	if err != nil {
		return dberr.Wrap(err, "update_lead_status")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
