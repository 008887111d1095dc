package leads

import "context"

type Repository interface {
	Create(context context.Context, lead *Lead) error
	List(context context.Context, status string, limit, offset int) ([]*Lead, int, error)
	GetByID(context context.Context, id string) (*Lead, error)
	UpdateStatus(context context.Context, id, status string) error
}
