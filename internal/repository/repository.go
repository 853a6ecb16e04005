package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/oops"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Filter is an equality predicate on columns, e.g. Filter{"role": "admin"}.
// An empty filter matches every row.
type Filter map[string]any

// Repository is the generic data-access contract shared by every entity.
// Add, Update and Delete only stage a change; it is written when the owning
// UnitOfWork completes.
type Repository[T any] interface {
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	Find(ctx context.Context, filter Filter) ([]T, error)
	Add(entity *T)
	Update(entity *T)
	Delete(entity *T)
}

type changeKind int

const (
	changeCreate changeKind = iota
	changeUpdate
	changeDelete
)

type change struct {
	kind   changeKind
	entity any
}

// ChangeSet holds the writes staged by all repositories of one unit of work,
// in the order they were staged.
type ChangeSet struct {
	mu      sync.Mutex
	changes []change
}

func (c *ChangeSet) stage(kind changeKind, entity any) {
	c.mu.Lock()
	c.changes = append(c.changes, change{kind: kind, entity: entity})
	c.mu.Unlock()
}

func (c *ChangeSet) drain() []change {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.changes
	c.changes = nil
	return out
}

// Len returns the number of staged changes.
func (c *ChangeSet) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.changes)
}

type gormRepository[T any] struct {
	db      *gorm.DB
	changes *ChangeSet
}

func newGormRepository[T any](db *gorm.DB, changes *ChangeSet) *gormRepository[T] {
	return &gormRepository[T]{db: db, changes: changes}
}

func (r *gormRepository[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *gormRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *gormRepository[T]) Find(ctx context.Context, filter Filter) ([]T, error) {
	q := r.db.WithContext(ctx)
	if len(filter) > 0 {
		q = q.Where(map[string]any(filter))
	}
	return r.list(q)
}

func (r *gormRepository[T]) Add(entity *T)    { r.changes.stage(changeCreate, entity) }
func (r *gormRepository[T]) Update(entity *T) { r.changes.stage(changeUpdate, entity) }
func (r *gormRepository[T]) Delete(entity *T) { r.changes.stage(changeDelete, entity) }

func (r *gormRepository[T]) first(q *gorm.DB) (*T, error) {
	var entity T
	if err := q.First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, oops.Code("STORE_QUERY_FAILED").Wrap(err)
	}
	return &entity, nil
}

func (r *gormRepository[T]) list(q *gorm.DB) ([]T, error) {
	out := make([]T, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, oops.Code("STORE_QUERY_FAILED").Wrap(err)
	}
	return out, nil
}
