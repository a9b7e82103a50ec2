// Package store holds user and task records behind interfaces so handlers
// can run against process memory or a SQL database.
package store

import (
	"context"
	"errors"

	"github.com/vaughan-dsouza/betasks/internal/models"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotFound       = errors.New("not found")
)

type Users interface {
	// Create assigns the id. Email uniqueness is checked atomically with the
	// insert and is case-sensitive.
	Create(ctx context.Context, u models.User) (models.User, error)
	ByEmail(ctx context.Context, email string) (models.User, error)
	ByID(ctx context.Context, id int64) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type Tasks interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Task, error)
	ListAll(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, ownerID int64, title, description string) (models.Task, error)
	// DeleteOwned reports ErrNotFound both when the id does not exist and
	// when it belongs to another owner.
	DeleteOwned(ctx context.Context, id, ownerID int64) (models.Task, error)
}
