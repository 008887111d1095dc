package property

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

// propertyColumns is the SELECT list shared by every listing query.
func propertyColumns() string {
	s := schema.Property
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		s.ID, s.Slug, s.TitleEn, s.TitleAr, s.DescriptionEn, s.DescriptionAr,
		s.LocationEn, s.LocationAr, s.Price, s.Currency, s.Bedrooms, s.Bathrooms,
		s.AreaSqm, s.PropertyType, s.Status, s.IsPublished, s.CreatedAt, s.UpdatedAt,
	)
}

func scanProperty(row interface{ Scan(...any) error }, p *Property) error {
	return row.Scan(
		&p.ID, &p.Slug, &p.TitleEn, &p.TitleAr, &p.DescriptionEn, &p.DescriptionAr,
		&p.LocationEn, &p.LocationAr, &p.Price, &p.Currency, &p.Bedrooms, &p.Bathrooms,
		&p.AreaSqm, &p.PropertyType, &p.Status, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (repository *PostgresRepository) list(context context.Context, publishedOnly bool, limit, offset int) ([]*Property, int, error) {
	s := schema.Property

	where := fmt.Sprintf("%s IS NULL", s.DeletedAt)
	if publishedOnly {
		where += fmt.Sprintf(" AND %s = TRUE", s.IsPublished)
	}

	countQuery := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", s.Table, where)
	var total int
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_properties")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2
	`, propertyColumns(), s.Table, where, s.CreatedAt)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_properties")
	}
	defer rows.Close()

	var properties []*Property
	for rows.Next() {
		p := &Property{}
		if err := scanProperty(rows, p); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_property")
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_properties")
	}

	return properties, total, nil
}

func (repository *PostgresRepository) ListPublished(context context.Context, limit, offset int) ([]*Property, int, error) {
	return repository.list(context, true, limit, offset)
}

func (repository *PostgresRepository) ListAll(context context.Context, limit, offset int) ([]*Property, int, error) {
	return repository.list(context, false, limit, offset)
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Property, error) {
	s := schema.Property
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`, propertyColumns(), s.Table, s.Slug, s.DeletedAt)

	p := &Property{}
	if err := scanProperty(repository.db.QueryRow(context, query, slug), p); err != nil {
		return nil, dberr.Wrap(err, "get_property_by_slug")
	}

	images, err := repository.ListImages(context, p.ID)
	if err != nil {
		return nil, err
	}
	p.Images = images

	return p, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Property, error) {
	s := schema.Property
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`, propertyColumns(), s.Table, s.ID, s.DeletedAt)

	p := &Property{}
	if err := scanProperty(repository.db.QueryRow(context, query, id), p); err != nil {
		return nil, dberr.Wrap(err, "get_property_by_id")
	}

	images, err := repository.ListImages(context, p.ID)
	if err != nil {
		return nil, err
	}
	p.Images = images

	return p, nil
}

func (repository *PostgresRepository) Create(context context.Context, p *Property) error {
	s := schema.Property
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		RETURNING %s, %s
	`,
		s.Table, s.ID, s.Slug, s.TitleEn, s.TitleAr, s.DescriptionEn, s.DescriptionAr,
		s.LocationEn, s.LocationAr, s.Price, s.Currency, s.Bedrooms, s.Bathrooms,
		s.AreaSqm, s.PropertyType, s.Status, s.IsPublished, s.CreatedAt, s.UpdatedAt,
		s.CreatedAt, s.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		p.ID, p.Slug, p.TitleEn, p.TitleAr, p.DescriptionEn, p.DescriptionAr,
		p.LocationEn, p.LocationAr, p.Price, p.Currency, p.Bedrooms, p.Bathrooms,
		p.AreaSqm, p.PropertyType, p.Status, p.IsPublished,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	return dberr.Wrap(err, "create_property")
}

func (repository *PostgresRepository) Update(context context.Context, p *Property) error {
	s := schema.Property
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
		    %s = $9, %s = $10, %s = $11, %s = $12, %s = $13, %s = $14, %s = $15,
		    %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		s.Table, s.TitleEn, s.TitleAr, s.DescriptionEn, s.DescriptionAr,
		s.LocationEn, s.LocationAr, s.Price, s.Currency, s.Bedrooms, s.Bathrooms,
		s.AreaSqm, s.PropertyType, s.Status, s.Slug,
		s.UpdatedAt, s.ID, s.DeletedAt, s.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		p.ID, p.TitleEn, p.TitleAr, p.DescriptionEn, p.DescriptionAr,
		p.LocationEn, p.LocationAr, p.Price, p.Currency, p.Bedrooms, p.Bathrooms,
		p.AreaSqm, p.PropertyType, p.Status, p.Slug,
	).Scan(&p.UpdatedAt)

	return dberr.Wrap(err, "update_property")
}

func (repository *PostgresRepository) SetPublished(context context.Context, id string, published bool) error {
	s := schema.Property
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		s.Table, s.IsPublished, s.UpdatedAt, s.ID, s.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id, published)
	if err != nil {
		return dberr.Wrap(err, "publish_property")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	s := schema.Property
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		s.Table, s.DeletedAt, s.ID, s.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_property")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Gallery

func (repository *PostgresRepository) ListImages(context context.Context, propertyID string) ([]Image, error) {
	s := schema.PropertyImage
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		s.ID, s.PropertyID, s.URL, s.AltEn, s.AltAr, s.SortOrder, s.CreatedAt,
		s.Table, s.PropertyID, s.SortOrder,
	)

	rows, err := repository.db.Query(context, query, propertyID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_property_images")
	}
	defer rows.Close()

	images := []Image{}
	for rows.Next() {
		var image Image
		if err := rows.Scan(&image.ID, &image.PropertyID, &image.URL, &image.AltEn, &image.AltAr, &image.SortOrder, &image.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_property_image")
		}
		images = append(images, image)
	}

	return images, rows.Err()
}

func (repository *PostgresRepository) AddImage(context context.Context, image *Image) error {
	err := repository.db.QueryRow(context, addImageQuery(),
		image.ID, image.PropertyID, image.URL, image.AltEn, image.AltAr, image.SortOrder,
	).Scan(&image.CreatedAt)

	return dberr.Wrap(err, "add_property_image")
}

// addImageQuery renders the gallery insert. The database stamps createdat.
func addImageQuery() string {
	s := schema.PropertyImage
	return fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING %s
	`,
		s.Table, s.ID, s.PropertyID, s.URL, s.AltEn, s.AltAr, s.SortOrder, s.CreatedAt,
		s.CreatedAt,
	)
}

func (repository *PostgresRepository) RemoveImage(context context.Context, propertyID, imageID string) error {
	s := schema.PropertyImage
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		s.Table, s.ID, s.PropertyID,
	)

	cmd, err := repository.db.Exec(context, query, imageID, propertyID)
	if err != nil {
		return dberr.Wrap(err, "remove_property_image")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
