package property

import "context"

type Repository interface {
	ListPublished(context context.Context, limit, offset int) ([]*Property, int, error)
	ListAll(context context.Context, limit, offset int) ([]*Property, int, error)
	GetBySlug(context context.Context, slug string) (*Property, error)
	GetByID(context context.Context, id string) (*Property, error)
	Create(context context.Context, p *Property) error
	Update(context context.Context, p *Property) error
	SetPublished(context context.Context, id string, published bool) error
	Delete(context context.Context, id string) error

	ListImages(context context.Context, propertyID string) ([]Image, error)
	AddImage(context context.Context, image *Image) error
	RemoveImage(context context.Context, propertyID, imageID string) error
}
