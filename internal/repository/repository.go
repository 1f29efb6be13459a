// Package repository is the gorm-backed persistence layer. A transaction
// started with RunInTransaction travels in the context; every method picks
// it up so services stay unaware of gorm.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/xelth-com/eckshipgo/internal/apperror"
	"github.com/xelth-com/eckshipgo/internal/database"
	"gorm.io/gorm"
)

type txKey struct{}

// Repository implements the stores consumed by the services
type Repository struct {
	db *gorm.DB
}

// New creates a repository on top of an open database
func New(db *database.DB) *Repository {
	return &Repository{db: db.DB}
}

// NewFromGorm wraps a raw gorm handle
func NewFromGorm(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// conn returns the transaction carried by ctx or the pool
func (r *Repository) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// RunInTransaction executes fn in a transaction. Nested calls reuse the
// transaction already in ctx. Any error rolls everything back.
func (r *Repository) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// notFound maps gorm's sentinel to a user error
func notFound(err error, entity string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NewNotFound(entity, id)
	}
	return fmt.Errorf("load %s %v: %w", entity, id, err)
}
