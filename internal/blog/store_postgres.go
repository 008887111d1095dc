package blog

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

func postColumns() string {
	s := schema.BlogPost
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		s.ID, s.Slug, s.TitleEn, s.TitleAr, s.ExcerptEn, s.ExcerptAr,
		s.BodyEn, s.BodyAr, s.CoverURL, s.AuthorID, s.IsPublished,
		s.PublishedAt, s.CreatedAt, s.UpdatedAt,
	)
}

func scanPost(row interface{ Scan(...any) error }, post *Post) error {
	return row.Scan(
		&post.ID, &post.Slug, &post.TitleEn, &post.TitleAr, &post.ExcerptEn, &post.ExcerptAr,
		&post.BodyEn, &post.BodyAr, &post.CoverURL, &post.AuthorID, &post.IsPublished,
		&post.PublishedAt, &post.CreatedAt, &post.UpdatedAt,
	)
}

func (repository *PostgresRepository) list(context context.Context, publishedOnly bool, limit, offset int) ([]*Post, int, error) {
	s := schema.BlogPost

	where := fmt.Sprintf("%s IS NULL", s.DeletedAt)
	orderBy := s.CreatedAt
	if publishedOnly {
		where += fmt.Sprintf(" AND %s = TRUE", s.IsPublished)
		orderBy = s.PublishedAt
	}

	countQuery := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", s.Table, where)
	var total int
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_posts")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2
	`, postColumns(), s.Table, where, orderBy)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_posts")
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		post := &Post{}
		if err := scanPost(rows, post); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_post")
		}
		posts = append(posts, post)
	}

	return posts, total, rows.Err()
}

func (repository *PostgresRepository) ListPublished(context context.Context, limit, offset int) ([]*Post, int, error) {
	return repository.list(context, true, limit, offset)
}

func (repository *PostgresRepository) ListAll(context context.Context, limit, offset int) ([]*Post, int, error) {
	return repository.list(context, false, limit, offset)
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Post, error) {
	s := schema.BlogPost
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`, postColumns(), s.Table, s.Slug, s.DeletedAt)

	post := &Post{}
	if err := scanPost(repository.db.QueryRow(context, query, slug), post); err != nil {
		return nil, dberr.Wrap(err, "get_post_by_slug")
	}
	return post, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Post, error) {
	s := schema.BlogPost
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`, postColumns(), s.Table, s.ID, s.DeletedAt)

	post := &Post{}
	if err := scanPost(repository.db.QueryRow(context, query, id), post); err != nil {
		return nil, dberr.Wrap(err, "get_post_by_id")
	}
	return post, nil
}

func (repository *PostgresRepository) Create(context context.Context, post *Post) error {
	s := schema.BlogPost
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING %s, %s
	`,
		s.Table, s.ID, s.Slug, s.TitleEn, s.TitleAr, s.ExcerptEn, s.ExcerptAr,
		s.BodyEn, s.BodyAr, s.CoverURL, s.AuthorID, s.IsPublished, s.PublishedAt,
		s.CreatedAt, s.UpdatedAt,
		s.CreatedAt, s.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		post.ID, post.Slug, post.TitleEn, post.TitleAr, post.ExcerptEn, post.ExcerptAr,
		post.BodyEn, post.BodyAr, post.CoverURL, post.AuthorID, post.IsPublished, post.PublishedAt,
	).Scan(&post.CreatedAt, &post.UpdatedAt)

	return dberr.Wrap(err, "create_post")
}

func (repository *PostgresRepository) Update(context context.Context, post *Post) error {
	s := schema.BlogPost
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		s.Table, s.Slug, s.TitleEn, s.TitleAr, s.ExcerptEn, s.ExcerptAr,
		s.BodyEn, s.BodyAr, s.CoverURL, s.UpdatedAt,
		s.ID, s.DeletedAt, s.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		post.ID, post.Slug, post.TitleEn, post.TitleAr, post.ExcerptEn, post.ExcerptAr,
		post.BodyEn, post.BodyAr, post.CoverURL,
	).Scan(&post.UpdatedAt)

	return dberr.Wrap(err, "update_post")
}

func (repository *PostgresRepository) SetPublished(context context.Context, id string, published bool) error {
	s := schema.BlogPost

	// Publishing stamps publishedat once; unpublishing keeps the original
	// date for a later re-publish.
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2,
		    %s = CASE WHEN $2 AND %s IS NULL THEN NOW() ELSE %s END,
		    %s = NOW()
		WHERE %s = $1 AND %s IS NULL
	`,
		s.Table, s.IsPublished, s.PublishedAt, s.PublishedAt, s.PublishedAt,
		s.UpdatedAt, s.ID, s.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id, published)
	if err != nil {
		return dberr.Wrap(err, "publish_post")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	s := schema.BlogPost
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		s.Table, s.DeletedAt, s.ID, s.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_post")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
