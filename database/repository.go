package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/agency-site-backend/errs"
	"gorm.io/gorm"
)

// Repository is the storage contract shared by every catalog entity.
//
// Get and Update return (nil, nil) when no row has the id; ids that are not valid UUIDs are
// treated the same way. List returns rows in insertion order. Update applies only the given
// columns in a single statement and returns the merged row.
type Repository[T any] interface {
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, id string, columns map[string]any) (*T, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// TableRepo implements Repository for one gorm model.
type TableRepo[T any] struct {
	db     *gorm.DB
	entity string
}

func NewTableRepo[T any](db *gorm.DB, entity string) *TableRepo[T] {
	return &TableRepo[T]{db: db, entity: entity}
}

var _ Repository[struct{}] = (*TableRepo[struct{}])(nil)

func (r *TableRepo[T]) Get(ctx context.Context, id string) (*T, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	var row T
	err := r.db.WithContext(ctx).Where("id = ?", uid).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewDatabaseError("get", r.entity, err)
	}
	return &row, nil
}

func (r *TableRepo[T]) List(ctx context.Context) ([]T, error) {
	rows := []T{}
	err := r.db.WithContext(ctx).Order("created_at ASC").Order("rowid ASC").Find(&rows).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", r.entity, err)
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

func (r *TableRepo[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExists(r.entity)
		}
		return errs.NewDatabaseError("create", r.entity, err)
	}
	return nil
}

func (r *TableRepo[T]) Update(ctx context.Context, id string, columns map[string]any) (*T, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	if len(columns) == 0 {
		return r.Get(ctx, id)
	}

	res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", uid).Updates(columns)
	if res.Error != nil {
		return nil, errs.NewDatabaseError("update", r.entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.Get(ctx, id)
}

func (r *TableRepo[T]) Delete(ctx context.Context, id string) (bool, error) {
	uid, ok := parseID(id)
	if !ok {
		return false, nil
	}

	res := r.db.WithContext(ctx).Where("id = ?", uid).Delete(new(T))
	if res.Error != nil {
		return false, errs.NewDatabaseError("delete", r.entity, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func parseID(id string) (uuid.UUID, bool) {
	uid, err := uuid.Parse(id)
	if err != nil || uid == uuid.Nil {
		return uuid.Nil, false
	}
	return uid, true
}
