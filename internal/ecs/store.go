package ecs

import (
	"sort"

	"github.com/todo-knk/xibalba/internal/core/types"
)

// AnyStore — нетипизированный доступ к хранилищу, нужен реестру для DestroyEntity.
type AnyStore interface {
	Kind() Kind
	Len() int
	removeEntity(id types.EntityID)
}

// Store — разреженное хранилище компонентов одного вида.
// Значения хранятся по указателю, Get возвращает изменяемую ссылку.
type Store[T any] struct {
	reg   *Registry
	kind  Kind
	items map[types.EntityID]*T
}

// NewStore создаёт хранилище и регистрирует его в реестре.
// Повторная регистрация того же вида — ошибка программиста, паникуем.
func NewStore[T any](r *Registry, kind Kind) *Store[T] {
	s := &Store[T]{
		reg:   r,
		kind:  kind,
		items: make(map[types.EntityID]*T),
	}
	r.register(s)
	return s
}

func (s *Store[T]) Kind() Kind {
	return s.kind
}

func (s *Store[T]) Len() int {
	return len(s.items)
}

// Add добавляет или заменяет компонент. Для мёртвой сущности возвращает false.
func (s *Store[T]) Add(id types.EntityID, value T) bool {
	if !s.reg.Alive(id) {
		return false
	}
	v := value
	s.items[id] = &v
	s.reg.setBit(id, s.kind)
	return true
}

// Get возвращает (nil, false), если компонента нет.
func (s *Store[T]) Get(id types.EntityID) (*T, bool) {
	v, ok := s.items[id]
	return v, ok
}

func (s *Store[T]) Has(id types.EntityID) bool {
	_, ok := s.items[id]
	return ok
}

// Remove снимает компонент. false, если его не было.
func (s *Store[T]) Remove(id types.EntityID) bool {
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	s.reg.clearBit(id, s.kind)
	return true
}

// Entities — снимок владельцев компонента в порядке создания.
func (s *Store[T]) Entities() []types.EntityID {
	out := make([]types.EntityID, 0, len(s.items))
	for id := range s.items {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (s *Store[T]) removeEntity(id types.EntityID) {
	delete(s.items, id)
}
