// Package repository maps table rows to in-memory records. One generic
// repository carries the whole CRUD contract; per-entity wrappers in
// inventory.go give callers typed constructors.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound reports that no row matches the requested id.
	ErrNotFound = errors.New("not found")

	// ErrStorageUnavailable reports a relational store connection or query
	// failure.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Repository is a generic table repository. It performs straight persistence:
// no caching, no locking, every operation is one round trip. Concurrent
// updates to the same row are last-writer-wins.
type Repository[T any] struct {
	db   *gorm.DB
	name string
}

// New builds a repository over the given table. name is only used in error
// messages.
func New[T any](db *gorm.DB, name string) *Repository[T] {
	return &Repository[T]{db: db, name: name}
}

// List returns all rows in storage order.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	out := make([]T, 0)
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w: %w", r.name, ErrStorageUnavailable, err)
	}

	return out, nil
}

// GetByID returns the row with the given id.
func (r *Repository[T]) GetByID(ctx context.Context, id int32) (*T, error) {
	var out T

	err := r.db.WithContext(ctx).First(&out, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get %s id %d: %w", r.name, id, ErrNotFound)
		}

		return nil, fmt.Errorf("get %s id %d: %w: %w", r.name, id, ErrStorageUnavailable, err)
	}

	return &out, nil
}

// Create inserts a new row. The store assigns the id and writes it back into
// the entity.
func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create %s: %w: %w", r.name, ErrStorageUnavailable, err)
	}

	return nil
}

// Update replaces all mutable fields of the row matching the entity's id.
// A missing row surfaces as ErrNotFound instead of a silent zero-row update.
// Select("*") keeps this a plain update; Save would insert the row instead
// when nothing matches.
func (r *Repository[T]) Update(ctx context.Context, entity *T) error {
	tx := r.db.WithContext(ctx).Model(entity).Select("*").Updates(entity)
	if tx.Error != nil {
		return fmt.Errorf("update %s: %w: %w", r.name, ErrStorageUnavailable, tx.Error)
	}

	if tx.RowsAffected == 0 {
		return fmt.Errorf("update %s: %w", r.name, ErrNotFound)
	}

	return nil
}

// Delete removes the row with the given id. Deleting an absent row is not an
// error; a subsequent GetByID yields ErrNotFound either way.
func (r *Repository[T]) Delete(ctx context.Context, id int32) error {
	if err := r.db.WithContext(ctx).Delete(new(T), id).Error; err != nil {
		return fmt.Errorf("delete %s id %d: %w: %w", r.name, id, ErrStorageUnavailable, err)
	}

	return nil
}
