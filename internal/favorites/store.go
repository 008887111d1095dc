package favorites

import "context"

type Repository interface {
	Add(context context.Context, favorite *Favorite) error
	Remove(context context.Context, userID, propertyID string) error
	ListByUser(context context.Context, userID string, limit, offset int) ([]*Favorite, int, error)
}
