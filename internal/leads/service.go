package leads

import (
	"context"
	"log/slog"

	"github.com/modonevolutio/modon/internal/platform/constants"
	"github.com/modonevolutio/modon/internal/platform/validate"
	"github.com/modonevolutio/modon/pkg/pointer"
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

// SubmitInput is the public inquiry payload.
type SubmitInput struct {
	PropertyID *string
	Name       string
	Email      string
	Phone      string
	Message    string
	Locale     string
}

// Submit captures a public inquiry. The rate limiter and CSRF guard have
// already run by the time this is called.
func (service *Service) Submit(context context.Context, input SubmitInput) (*Lead, error) {
	// Treat an empty property reference the same as an omitted one.
	if pointer.Val(input.PropertyID) == "" {
		input.PropertyID = nil
	}

	validator := &validate.Validator{}

	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 200)
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.MaxLen(FieldPhone, input.Phone, 40)
	validator.Required(FieldMessage, input.Message).MaxLen(FieldMessage, input.Message, 5000)
	if input.PropertyID != nil {
		validator.UUID(FieldPropertyID, *input.PropertyID)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	locale := input.Locale
	if locale != constants.LocaleEnglish && locale != constants.LocaleArabic {
		locale = constants.DefaultLocale
	}

	lead := &Lead{
		ID:         uuid.New(),
		PropertyID: input.PropertyID,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Message:    input.Message,
		Locale:     locale,
		Status:     StatusNew,
	}

	if err := service.repo.Create(context, lead); err != nil {
		return nil, err
	}

	service.logger.Info("lead_submitted",
		slog.String("lead_id", lead.ID),
		slog.String("locale", lead.Locale),
	)
	return lead, nil
}

// # Back-office

func (service *Service) List(context context.Context, status string, limit, offset int) ([]*Lead, int, error) {
	if status != "" {
		validator := &validate.Validator{}
		validator.OneOf(FieldStatus, status, StatusNew, StatusContacted, StatusQualified, StatusClosed)
		if err := validator.Err(); err != nil {
			return nil, 0, err
		}
	}
	return service.repo.List(context, status, limit, offset)
}

func (service *Service) GetByID(context context.Context, id string) (*Lead, error) {
	return service.repo.GetByID(context, id)
}

func (service *Service) UpdateStatus(context context.Context, id, status string) error {
	validator := &validate.Validator{}
	validator.OneOf(FieldStatus, status, StatusNew, StatusContacted, StatusQualified, StatusClosed)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateStatus(context, id, status); err != nil {
		return err
	}

	service.logger.Info("lead_status_updated",
		slog.String("lead_id", id),
		slog.String("status", status),
	)
	return nil
}
