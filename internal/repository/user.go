package repository

import (
	"context"
	"errors"

	"github.com/dayoung-lee/taskboard/internal/model"
)

// ErrNotFound is returned when a record is absent from its collection.
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	GetByID(ctx context.Context, id string) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	// Create assigns an id and appends the user to the table.
	Create(ctx context.Context, user model.User) (model.User, error)
}
