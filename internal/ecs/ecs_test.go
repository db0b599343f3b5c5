package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todo-knk/xibalba/internal/core/types"
	"github.com/todo-knk/xibalba/internal/core/types/enums"
	"github.com/todo-knk/xibalba/internal/ecs"
)

const (
	kindPos ecs.Kind = iota
	kindHP
	kindTag
)

type pos struct{ X, Y int }
type hp struct{ Value int }
type tag struct{}

type fixture struct {
	reg  *ecs.Registry
	pos  *ecs.Store[pos]
	hp   *ecs.Store[hp]
	tags *ecs.Store[tag]
}

func newFixture() fixture {
	r := ecs.NewRegistry()
	return fixture{
		reg:  r,
		pos:  ecs.NewStore[pos](r, kindPos),
		hp:   ecs.NewStore[hp](r, kindHP),
		tags: ecs.NewStore[tag](r, kindTag),
	}
}

func TestMask(t *testing.T) {
	m := ecs.MaskOf(kindPos, kindTag)

	assert.True(t, m.Has(kindPos))
	assert.False(t, m.Has(kindHP))
	assert.True(t, m.All(ecs.MaskOf(kindPos)))
	assert.False(t, m.All(ecs.MaskOf(kindPos, kindHP)))
	assert.True(t, m.Any(ecs.MaskOf(kindHP, kindTag)))
	assert.False(t, m.Any(0))
	assert.Equal(t, []ecs.Kind{kindPos, kindTag}, m.Kinds())
	assert.Equal(t, "{0,2}", m.String())
	assert.Equal(t, ecs.MaskOf(kindTag), m.Without(kindPos))
}

func TestStore_AddGetRemove(t *testing.T) {
	f := newFixture()
	id := f.reg.Create(enums.EntityTypeEnemy)

	require.True(t, f.pos.Add(id, pos{1, 2}))
	p, ok := f.pos.Get(id)
	require.True(t, ok)
	assert.Equal(t, pos{1, 2}, *p)

	p.X = 10
	again, _ := f.pos.Get(id)
	assert.Equal(t, 10, again.X, "Get must return a mutable reference")

	assert.True(t, f.reg.Mask(id).Has(kindPos))
	assert.True(t, f.pos.Remove(id))
	assert.False(t, f.pos.Remove(id))
	assert.False(t, f.reg.Mask(id).Has(kindPos))

	missing, ok := f.pos.Get(id)
	assert.False(t, ok)
	assert.Nil(t, missing)
}

func TestStore_AddToDeadEntity(t *testing.T) {
	f := newFixture()
	id := f.reg.Create(enums.EntityTypeItem)
	require.True(t, f.reg.Destroy(id))

	assert.False(t, f.hp.Add(id, hp{5}))
	assert.Equal(t, 0, f.hp.Len())
	assert.False(t, f.hp.Add(types.NilEntityID, hp{1}))
}

func TestRegistry_QueryCreationOrder(t *testing.T) {
	f := newFixture()
	var ids []types.EntityID
	for i := 0; i < 5; i++ {
		id := f.reg.Create(enums.EntityType(1 + i%3))
		f.pos.Add(id, pos{X: i})
		ids = append(ids, id)
	}
	// только у нечётных есть HP
	f.hp.Add(ids[3], hp{1})
	f.hp.Add(ids[1], hp{1})

	assert.Equal(t, ids, f.reg.Query(ecs.MaskOf(kindPos)))
	assert.Equal(t, []types.EntityID{ids[1], ids[3]}, f.reg.Query(ecs.MaskOf(kindPos, kindHP)))
	assert.Equal(t, []types.EntityID{ids[1], ids[3]}, f.hp.Entities())
}

func TestRegistry_QuerySnapshot(t *testing.T) {
	f := newFixture()
	a := f.reg.Create(enums.EntityTypeEnemy)
	b := f.reg.Create(enums.EntityTypeEnemy)
	f.tags.Add(a, tag{})

	seen := 0
	for _, id := range f.reg.Query(ecs.MaskOf(kindTag)) {
		seen++
		// добавление во время обхода не должно попасть в текущий обход
		f.tags.Add(b, tag{})
		f.tags.Remove(id)
	}

	assert.Equal(t, 1, seen)
	assert.Equal(t, []types.EntityID{b}, f.reg.Query(ecs.MaskOf(kindTag)))
}

func TestRegistry_QueryAny(t *testing.T) {
	f := newFixture()
	a := f.reg.Create(enums.EntityTypeEnemy)
	b := f.reg.Create(enums.EntityTypeEnemy)
	f.reg.Create(enums.EntityTypeEnemy)
	f.pos.Add(a, pos{})
	f.hp.Add(b, hp{})

	assert.Equal(t, []types.EntityID{a, b}, f.reg.QueryAny(ecs.MaskOf(kindPos, kindHP)))
}

func TestRegistry_Destroy(t *testing.T) {
	f := newFixture()
	a := f.reg.Create(enums.EntityTypeEnemy)
	b := f.reg.Create(enums.EntityTypePlayer)
	c := f.reg.Create(enums.EntityTypeItem)
	for _, id := range []types.EntityID{a, b, c} {
		f.pos.Add(id, pos{})
		f.hp.Add(id, hp{})
	}

	require.True(t, f.reg.Destroy(b))
	assert.False(t, f.reg.Destroy(b))
	assert.False(t, f.reg.Alive(b))
	assert.False(t, f.pos.Has(b))
	assert.False(t, f.hp.Has(b))
	assert.Equal(t, 2, f.reg.Len())
	assert.Equal(t, []types.EntityID{a, c}, f.reg.Query(ecs.MaskOf(kindPos)))

	d := f.reg.Create(enums.EntityTypeEnemy)
	assert.True(t, c.Less(d), "indexes are never reused")
}

func TestNewStore_DuplicateKindPanics(t *testing.T) {
	r := ecs.NewRegistry()
	ecs.NewStore[pos](r, kindPos)

	assert.Panics(t, func() { ecs.NewStore[hp](r, kindPos) })
}
