package ecs

import (
	"fmt"
	"sort"

	"github.com/todo-knk/xibalba/internal/core/types"
	"github.com/todo-knk/xibalba/internal/core/types/enums"
)

// Registry выдаёт идентификаторы, хранит маски компонентов живых сущностей
// и знает обо всех хранилищах.
type Registry struct {
	next   uint64
	masks  map[types.EntityID]Mask
	order  []types.EntityID // живые сущности, по возрастанию Index
	stores [MaxKinds]AnyStore
}

func NewRegistry() *Registry {
	return &Registry{
		masks: make(map[types.EntityID]Mask),
	}
}

func (r *Registry) register(s AnyStore) {
	k := s.Kind()
	if int(k) >= MaxKinds {
		panic(fmt.Sprintf("ecs: kind %d out of range", k))
	}
	if r.stores[k] != nil {
		panic(fmt.Sprintf("ecs: kind %d registered twice", k))
	}
	r.stores[k] = s
}

// Create выдаёт новую сущность без компонентов.
func (r *Registry) Create(t enums.EntityType) types.EntityID {
	r.next++
	id := types.PackEntityID(uint8(t), r.next)
	r.masks[id] = 0
	r.order = append(r.order, id)
	return id
}

// Destroy удаляет сущность из всех хранилищ. false, если сущности уже нет.
func (r *Registry) Destroy(id types.EntityID) bool {
	mask, ok := r.masks[id]
	if !ok {
		return false
	}
	for _, k := range mask.Kinds() {
		if s := r.stores[k]; s != nil {
			s.removeEntity(id)
		}
	}
	delete(r.masks, id)

	i := sort.Search(len(r.order), func(i int) bool { return !r.order[i].Less(id) })
	if i < len(r.order) && r.order[i] == id {
		r.order = append(r.order[:i], r.order[i+1:]...)
	}
	return true
}

func (r *Registry) Alive(id types.EntityID) bool {
	_, ok := r.masks[id]
	return ok
}

// Mask возвращает набор компонентов сущности; для мёртвой — пустой.
func (r *Registry) Mask(id types.EntityID) Mask {
	return r.masks[id]
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Query возвращает снимок сущностей, у которых есть все виды из all.
// Снимок не меняется, если во время обхода компоненты добавляются или снимаются.
func (r *Registry) Query(all Mask) []types.EntityID {
	out := make([]types.EntityID, 0)
	for _, id := range r.order {
		if r.masks[id].All(all) {
			out = append(out, id)
		}
	}
	return out
}

// QueryAny возвращает сущности, у которых есть хотя бы один вид из some.
func (r *Registry) QueryAny(some Mask) []types.EntityID {
	out := make([]types.EntityID, 0)
	for _, id := range r.order {
		if r.masks[id].Any(some) {
			out = append(out, id)
		}
	}
	return out
}

func (r *Registry) setBit(id types.EntityID, k Kind) {
	r.masks[id] = r.masks[id].With(k)
}

func (r *Registry) clearBit(id types.EntityID, k Kind) {
	if m, ok := r.masks[id]; ok {
		r.masks[id] = m.Without(k)
	}
}
