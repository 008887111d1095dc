package favorites

import (
	"context"
	"log/slog"

	"github.com/modonevolutio/modon/internal/platform/validate"
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

func (service *Service) Add(context context.Context, userID, propertyID string) (*Favorite, error) {
	validator := &validate.Validator{}
	validator.Required(FieldPropertyID, propertyID).UUID(FieldPropertyID, propertyID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	favorite := &Favorite{
		ID:         uuid.New(),
		UserID:     userID,
		PropertyID: propertyID,
	}

	if err := service.repo.Add(context, favorite); err != nil {
		return nil, err
	}

	service.logger.Info("favorite_added",
		slog.String("user_id", userID),
		slog.String("property_id", propertyID),
	)
	return favorite, nil
}

func (service *Service) Remove(context context.Context, userID, propertyID string) error {
	return service.repo.Remove(context, userID, propertyID)
}

func (service *Service) ListByUser(context context.Context, userID string, limit, offset int) ([]*Favorite, int, error) {
	return service.repo.ListByUser(context, userID, limit, offset)
}
