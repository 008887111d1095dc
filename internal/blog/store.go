package blog

import "context"

type Repository interface {
	ListPublished(context context.Context, limit, offset int) ([]*Post, int, error)
	ListAll(context context.Context, limit, offset int) ([]*Post, int, error)
	GetBySlug(context context.Context, slug string) (*Post, error)
	GetByID(context context.Context, id string) (*Post, error)
	Create(context context.Context, post *Post) error
	Update(context context.Context, post *Post) error
	SetPublished(context context.Context, id string, published bool) error
	Delete(context context.Context, id string) error
}
