package property

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

// # Public Catalogue

func (service *Service) ListPublished(context context.Context, limit, offset int) ([]*Property, int, error) {
	return service.repo.ListPublished(context, limit, offset)
}

func (service *Service) GetBySlug(context context.Context, slug string) (*Property, error) {
	return service.repo.GetBySlug(context, slug)
}

// # Back-office Management

func (service *Service) ListAll(context context.Context, limit, offset int) ([]*Property, int, error) {
	return service.repo.ListAll(context, limit, offset)
}

func (service *Service) GetByID(context context.Context, id string) (*Property, error) {
	return service.repo.GetByID(context, id)
}

func (service *Service) Create(context context.Context, p *Property) error {
	if err := validateProperty(p); err != nil {
		return err
	}

	p.ID = uuid.New()
	p.Slug = service.buildSlug(p)
	if p.Status == "" {
		p.Status = StatusAvailable
	}

	if err := service.repo.Create(context, p); err != nil {
		return err
	}

	service.logger.Info("property_created",
		slog.String("property_id", p.ID),
		slog.String("slug", p.Slug),
	)
	return nil
}

func (service *Service) Update(context context.Context, id string, p *Property) error {
	p.ID = id

	if err := validateProperty(p); err != nil {
		return err
	}

	existing, err := service.repo.GetByID(context, id)
	if err != nil {
		return err
	}

	// The slug tracks the English title; a retitle changes the URL.
	p.Slug = existing.Slug
	if p.TitleEn != existing.TitleEn {
		p.Slug = service.buildSlug(p)
	}

	if err := service.repo.Update(context, p); err != nil {
		return err
	}

	service.logger.Info("property_updated", slog.String("property_id", id))
	return nil
}

func (service *Service) SetPublished(context context.Context, id string, published bool) error {
	if err := service.repo.SetPublished(context, id, published); err != nil {
		return err
	}

	service.logger.Info("property_publish_toggled",
		slog.String("property_id", id),
		slog.Bool("published", published),
	)
	return nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("property_deleted", slog.String("property_id", id))
	return nil
}

// # Gallery

func (service *Service) AddImage(context context.Context, image *Image) error {
	validator := &validate.Validator{}
	validator.Required(FieldImageURL, image.URL).MaxLen(FieldImageURL, image.URL, 2048)
	if err := validator.Err(); err != nil {
		return err
	}

	image.ID = uuid.New()
	return service.repo.AddImage(context, image)
}

func (service *Service) RemoveImage(context context.Context, propertyID, imageID string) error {
	return service.repo.RemoveImage(context, propertyID, imageID)
}

// buildSlug derives the URL slug from the English title. Arabic-only titles
// reduce to nothing after ASCII folding, so the ID tail keeps the slug
// non-empty and unique.
func (service *Service) buildSlug(p *Property) string {
	base := slug.From(p.TitleEn)
	tail := p.ID
	if len(tail) > 8 {
		tail = tail[len(tail)-8:]
	}
	if base == "" {
		return tail
	}
	return base + "-" + tail
}

func validateProperty(p *Property) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitleEn, p.TitleEn).MaxLen(FieldTitleEn, p.TitleEn, 300)
	validator.Required(FieldTitleAr, p.TitleAr).MaxLen(FieldTitleAr, p.TitleAr, 300)
	validator.MaxLen(FieldDescriptionEn, p.DescriptionEn, 10000)
	validator.MaxLen(FieldDescriptionAr, p.DescriptionAr, 10000)
	validator.Required(FieldLocationEn, p.LocationEn).MaxLen(FieldLocationEn, p.LocationEn, 300)
	validator.Required(FieldLocationAr, p.LocationAr).MaxLen(FieldLocationAr, p.LocationAr, 300)
	validator.Required(FieldCurrency, p.Currency).OneOf(FieldCurrency, p.Currency, "AED", "SAR", "USD", "EUR")
	validator.OneOf(FieldPropertyType, p.PropertyType,
		TypeApartment, TypeVilla, TypeTownhouse, TypeOffice, TypeLand)
	if p.Status != "" {
		validator.OneOf(FieldStatus, p.Status,
			StatusAvailable, StatusReserved, StatusSold, StatusRented)
	}
	validator.Custom(FieldPrice, p.Price < 0, "must not be negative")

	return validator.Err()
}
