package blog

import (
	"context"
	"log/slog"

	"github.com/modonevolutio/modon/internal/platform/validate"
	"github.com/modonevolutio/modon/pkg/slug"
	"github.com/modonevolutio/modon/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListPublished(context context.Context, limit, offset int) ([]*Post, int, error) {
	return service.repo.ListPublished(context, limit, offset)
}

func (service *Service) GetBySlug(context context.Context, slug string) (*Post, error) {
	return service.repo.GetBySlug(context, slug)
}

func (service *Service) ListAll(context context.Context, limit, offset int) ([]*Post, int, error) {
	return service.repo.ListAll(context, limit, offset)
}

func (service *Service) GetByID(context context.Context, id string) (*Post, error) {
	return service.repo.GetByID(context, id)
}

func (service *Service) Create(context context.Context, post *Post, authorID string) error {
	if err := validatePost(post); err != nil {
		return err
	}

	post.ID = uuid.New()
	post.AuthorID = authorID
	post.Slug = buildSlug(post)
	post.IsPublished = false
	post.PublishedAt = nil

	if err := service.repo.Create(context, post); err != nil {
		return err
	}

	service.logger.Info("blog_post_created",
		slog.String("post_id", post.ID),
		slog.String("slug", post.Slug),
	)
	return nil
}

func (service *Service) Update(context context.Context, id string, post *Post) error {
	post.ID = id

	if err := validatePost(post); err != nil {
		return err
	}

	existing, err := service.repo.GetByID(context, id)
	if err != nil {
		return err
	}

	post.Slug = existing.Slug
	if post.TitleEn != existing.TitleEn {
		post.Slug = buildSlug(post)
	}

	if err := service.repo.Update(context, post); err != nil {
		return err
	}

	service.logger.Info("blog_post_updated", slog.String("post_id", id))
	return nil
}

func (service *Service) SetPublished(context context.Context, id string, published bool) error {
	if err := service.repo.SetPublished(context, id, published); err != nil {
		return err
	}

	service.logger.Info("blog_post_publish_toggled",
		slog.String("post_id", id),
		slog.Bool("published", published),
	)
	return nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("blog_post_deleted", slog.String("post_id", id))
	return nil
}

func buildSlug(post *Post) string {
	base := slug.From(post.TitleEn)
	tail := post.ID
	if len(tail) > 8 {
		tail = tail[len(tail)-8:]
	}
	if base == "" {
		return tail
	}
	return base + "-" + tail
}

func validatePost(post *Post) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitleEn, post.TitleEn).MaxLen(FieldTitleEn, post.TitleEn, 300)
	validator.Required(FieldTitleAr, post.TitleAr).MaxLen(FieldTitleAr, post.TitleAr, 300)
	validator.MaxLen(FieldExcerptEn, post.ExcerptEn, 1000)
	validator.MaxLen(FieldExcerptAr, post.ExcerptAr, 1000)
	validator.Required(FieldBodyEn, post.BodyEn)
	validator.Required(FieldBodyAr, post.BodyAr)
	validator.MaxLen(FieldCoverURL, post.CoverURL, 2048)

	return validator.Err()
}
