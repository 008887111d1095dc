package favorites

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

func (repository *PostgresRepository) Add(context context.Context, favorite *Favorite) error {
	s := schema.Favorite

	// Re-favoriting is a no-op thanks to the (userid, propertyid) unique
	// constraint.
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (%s, %s) DO NOTHING
	`,
		s.Table, s.ID, s.UserID, s.PropertyID, s.CreatedAt,
		s.UserID, s.PropertyID,
	)

	_, err := repository.db.Exec(context, query, favorite.ID, favorite.UserID, favorite.PropertyID)
	return dberr.Wrap(err, "add_favorite")
}

func (repository *PostgresRepository) Remove(context context.Context, userID, propertyID string) error {
	s := schema.Favorite
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		s.Table, s.UserID, s.PropertyID,
	)

	cmd, err := repository.db.Exec(context, query, userID, propertyID)
	if err != nil {
		return dberr.Wrap(err, "remove_favorite")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID string, limit, offset int) ([]*Favorite, int, error) {
	s := schema.Favorite

	countQuery := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s = $1", s.Table, s.UserID)
	var total int
	if err := repository.db.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_favorites")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3
	`,
		s.ID, s.UserID, s.PropertyID, s.CreatedAt,
		s.Table, s.UserID, s.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_favorites")
	}
	defer rows.Close()

	var result []*Favorite
	for rows.Next() {
		favorite := &Favorite{}
		if err := rows.Scan(&favorite.ID, &favorite.UserID, &favorite.PropertyID, &favorite.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_favorite")
		}
		result = append(result, favorite)
	}

	return result, total, rows.Err()
}
