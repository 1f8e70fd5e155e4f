// Package history хранит список сохранённых расчётов поверх удалённого хранилища.
//
// Локальный список служит кэшем со сквозным чтением: успешные изменения применяются к нему сразу,
// а после любой неудачной операции список помечается устаревшим и перечитывается при следующем запросе.
package history

import (
	"context"
	"sync"
)

// Record описывает сохранённую запись истории с идентификатором, назначенным хранилищем.
type Record interface {
	RecordID() int64
}

// Backend описывает операции удалённого хранилища для одного вида истории.
type Backend[T Record] interface {
	List(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, rec T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Store хранит список записей истории, упорядоченный от новых к старым.
type Store[T Record] struct {
	backend Backend[T]

	mu      sync.Mutex
	records []T
	loaded  bool
	stale   bool
}

// NewStore создаёт хранилище истории поверх backend.
func NewStore[T Record](backend Backend[T]) *Store[T] {
	return &Store[T]{backend: backend}
}

// Load перечитывает записи из хранилища и заменяет локальный список.
func (s *Store[T]) Load(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reloadLocked(ctx); err != nil {
		return nil, err
	}
	return s.snapshotLocked(), nil
}

// List возвращает локальный список, предварительно перечитав его, если он не загружен или устарел.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded || s.stale {
		if err := s.reloadLocked(ctx); err != nil {
			return nil, err
		}
	}
	return s.snapshotLocked(), nil
}

// Records возвращает текущий локальный список без обращения к хранилищу.
func (s *Store[T]) Records() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Stale сообщает, помечен ли локальный список как устаревший.
func (s *Store[T]) Stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale
}

// Save сохраняет запись и добавляет в начало локального списка запись, возвращённую хранилищем.
func (s *Store[T]) Save(ctx context.Context, rec T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.backend.Insert(ctx, rec)
	if err != nil {
		s.stale = true
		var zero T
		return zero, err
	}

	s.records = append([]T{saved}, s.records...)
	return saved, nil
}

// Delete удаляет запись. При ошибке хранилища локальный список не меняется.
func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx, id); err != nil {
		s.stale = true
		return err
	}

	kept := make([]T, 0, len(s.records))
	for _, r := range s.records {
		if r.RecordID() != id {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return nil
}

func (s *Store[T]) reloadLocked(ctx context.Context) error {
	records, err := s.backend.List(ctx)
	if err != nil {
		return err
	}
	s.records = records
	s.loaded = true
	s.stale = false
	return nil
}

func (s *Store[T]) snapshotLocked() []T {
	res := make([]T, len(s.records))
	copy(res, s.records)
	return res
}

// Funcs адаптирует набор функций к интерфейсу Backend.
type Funcs[T Record] struct {
	ListFunc   func(ctx context.Context) ([]T, error)
	InsertFunc func(ctx context.Context, rec T) (T, error)
	DeleteFunc func(ctx context.Context, id int64) error
}

// List вызывает ListFunc.
func (f Funcs[T]) List(ctx context.Context) ([]T, error) { return f.ListFunc(ctx) }

// Insert вызывает InsertFunc.
func (f Funcs[T]) Insert(ctx context.Context, rec T) (T, error) { return f.InsertFunc(ctx, rec) }

// Delete вызывает DeleteFunc.
func (f Funcs[T]) Delete(ctx context.Context, id int64) error { return f.DeleteFunc(ctx, id) }
