// Package repotest provides an in-memory implementation of the repository
// package with the same staging semantics as the GORM-backed unit of work.
package repotest

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/samber/oops"
	"gorm.io/gorm/schema"
)

// Store holds committed rows for every entity. Units of work opened from the
// same Store see each other's completed changes.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	tables   map[reflect.Type]map[uuid.UUID]any
	failNext error
}

func NewStore() *Store {
	return &Store{
		now:    time.Now,
		tables: make(map[reflect.Type]map[uuid.UUID]any),
	}
}

// SetClock overrides the clock used for CreatedAt/UpdatedAt stamping.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// FailNextComplete makes the next Complete on any unit of work return err
// without writing anything.
func (s *Store) FailNextComplete(err error) {
	s.mu.Lock()
	s.failNext = err
	s.mu.Unlock()
}

// Factory returns a repository.Factory that opens units of work on s.
func (s *Store) Factory() repository.Factory {
	return func() repository.UnitOfWork { return s.UnitOfWork() }
}

// Seed writes entities directly, bypassing staging. Each argument must be a
// pointer to a model.
func (s *Store) Seed(entities ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entities {
		ensureID(e)
		s.put(e)
	}
}

// Count returns the number of committed rows of the model type of sample.
func (s *Store) Count(sample any) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[reflect.TypeOf(sample).Elem()])
}

func (s *Store) put(entity any) {
	v := reflect.ValueOf(entity).Elem()
	t := v.Type()
	if s.tables[t] == nil {
		s.tables[t] = make(map[uuid.UUID]any)
	}
	s.tables[t][idOf(entity)] = v.Interface()
}

func (s *Store) apply(staged []stagedChange) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return 0, oops.Code("STORE_FLUSH_FAILED").Wrap(err)
	}

	for _, c := range staged {
		if c.kind == "create" && s.exists(c.entity) {
			return 0, oops.Code("STORE_DUPLICATE").Wrap(repository.ErrDuplicate)
		}
	}

	now := s.now()
	var affected int64
	for _, c := range staged {
		switch c.kind {
		case "create":
			ensureID(c.entity)
			stampTime(c.entity, "CreatedAt", now, false)
			stampTime(c.entity, "UpdatedAt", now, false)
			s.put(c.entity)
			affected++
		case "update":
			stampTime(c.entity, "UpdatedAt", now, true)
			s.put(c.entity)
			affected++
		case "delete":
			if s.exists(c.entity) {
				delete(s.tables[reflect.TypeOf(c.entity).Elem()], idOf(c.entity))
				affected++
			}
		}
	}
	return affected, nil
}

func (s *Store) exists(entity any) bool {
	rows := s.tables[reflect.TypeOf(entity).Elem()]
	if rows == nil {
		return false
	}
	_, ok := rows[idOf(entity)]
	return ok
}

func rowsOf[T any](s *Store) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var zero T
	rows := s.tables[reflect.TypeOf(zero)]
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.(T))
	}
	return out
}

func idOf(entity any) uuid.UUID {
	return reflect.ValueOf(entity).Elem().FieldByName("ID").Interface().(uuid.UUID)
}

func ensureID(entity any) {
	f := reflect.ValueOf(entity).Elem().FieldByName("ID")
	if f.Interface().(uuid.UUID) == uuid.Nil {
		f.Set(reflect.ValueOf(uuid.New()))
	}
}

func stampTime(entity any, field string, now time.Time, overwrite bool) {
	f := reflect.ValueOf(entity).Elem().FieldByName(field)
	if !f.IsValid() || f.Type() != reflect.TypeOf(time.Time{}) {
		return
	}
	if overwrite || f.Interface().(time.Time).IsZero() {
		f.Set(reflect.ValueOf(now))
	}
}

var naming = schema.NamingStrategy{}

// matches evaluates a repository.Filter against a model value using GORM's
// default column naming.
func matches(row any, filter repository.Filter) bool {
	v := reflect.ValueOf(row)
	t := v.Type()
	for col, want := range filter {
		found := false
		for i := 0; i < t.NumField(); i++ {
			if naming.ColumnName("", t.Field(i).Name) != col {
				continue
			}
			found = true
			if !reflect.DeepEqual(v.Field(i).Interface(), want) {
				return false
			}
		}
		if !found {
			panic(fmt.Sprintf("repotest: unknown column %q on %s", col, t.Name()))
		}
	}
	return true
}

type stagedChange struct {
	kind   string
	entity any
}

type changes struct {
	mu     sync.Mutex
	staged []stagedChange
}

func (c *changes) stage(kind string, entity any) {
	c.mu.Lock()
	c.staged = append(c.staged, stagedChange{kind: kind, entity: entity})
	c.mu.Unlock()
}

func (c *changes) drain() []stagedChange {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.staged
	c.staged = nil
	return out
}

type memRepository[T any] struct {
	store   *Store
	changes *changes
}

func (r memRepository[T]) Get(_ context.Context, id uuid.UUID) (*T, error) {
	for _, row := range rowsOf[T](r.store) {
		row := row
		if idOf(&row) == id {
			return &row, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memRepository[T]) GetAll(_ context.Context) ([]T, error) {
	return rowsOf[T](r.store), nil
}

func (r memRepository[T]) Find(_ context.Context, filter repository.Filter) ([]T, error) {
	return r.where(func(row *T) bool { return matches(*row, filter) }), nil
}

func (r memRepository[T]) Add(entity *T)    { r.changes.stage("create", entity) }
func (r memRepository[T]) Update(entity *T) { r.changes.stage("update", entity) }
func (r memRepository[T]) Delete(entity *T) { r.changes.stage("delete", entity) }

func (r memRepository[T]) where(pred func(*T) bool) []T {
	out := make([]T, 0)
	for _, row := range rowsOf[T](r.store) {
		row := row
		if pred(&row) {
			out = append(out, row)
		}
	}
	return out
}

func (r memRepository[T]) firstWhere(pred func(*T) bool, less func(a, b *T) bool) (*T, error) {
	rows := r.where(pred)
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	if less != nil {
		sort.Slice(rows, func(i, j int) bool { return less(&rows[i], &rows[j]) })
	}
	return &rows[0], nil
}
