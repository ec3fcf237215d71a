package repository

import (
	"app/internal/domain/model"
	"context"
)

// BookRepository is read-only: the catalog belongs to another part of the
// system and this core never writes to it.
type BookRepository interface {
	FindByID(ctx context.Context, bookID string) (model.Book, error)
}
