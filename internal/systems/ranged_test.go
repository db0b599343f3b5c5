package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todo-knk/xibalba/internal/domain"
)

func TestRangedSystem_LandsOnEmptyCell(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	player := addPlayer(t, w, domain.Position{X: 2, Y: 2})
	stone := giveItem(t, w, player, "Камень")
	cell := domain.Position{X: 6, Y: 2}
	w.Ranged.Add(player, domain.Ranged{Cell: &cell, Item: stone})

	NewRangedSystem(DefaultRules(), &countingResolver{}).Update(w)

	it, ok := w.Items.Get(stone)
	require.True(t, ok)
	assert.True(t, it.Throwing, "in flight until effects are applied")
	assert.Equal(t, domain.Position{X: 2, Y: 2}, position(t, w, stone))
	assert.Equal(t, 0, energy(t, w, player))
	assert.False(t, w.Ranged.Has(player))
	inv, _ := w.Inventories.Get(player)
	assert.Empty(t, inv.Items)

	NewEffectsSystem().Update(w)

	require.True(t, w.Registry.Alive(stone))
	assert.Equal(t, cell, position(t, w, stone))
	assert.False(t, it.Throwing)
	assert.True(t, it.Owner.IsNil())
	assert.Zero(t, w.Effects.Len())
}

func TestRangedSystem_HitDestroysItem(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	player := addPlayer(t, w, domain.Position{X: 2, Y: 2})
	enemy := addEnemy(t, w, domain.Position{X: 6, Y: 2}, vision)
	stone := giveItem(t, w, player, "Камень")
	cell := domain.Position{X: 6, Y: 2}
	w.Ranged.Add(player, domain.Ranged{Cell: &cell, Item: stone})

	res := &countingResolver{hit: true, damage: 2}
	NewRangedSystem(DefaultRules(), res).Update(w)
	NewEffectsSystem().Update(w)

	assert.Equal(t, 1, res.ranged)
	assert.Zero(t, res.melee)
	assert.False(t, w.Registry.Alive(stone))
	assert.True(t, w.Registry.Alive(enemy))
}

func TestRangedSystem_MissStillDestroysItem(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	player := addPlayer(t, w, domain.Position{X: 2, Y: 2})
	enemy := addEnemy(t, w, domain.Position{X: 6, Y: 2}, vision)
	stone := giveItem(t, w, player, "Камень")
	cell := domain.Position{X: 6, Y: 2}
	w.Ranged.Add(player, domain.Ranged{Cell: &cell, Item: stone})

	res := &countingResolver{hit: false}
	NewRangedSystem(DefaultRules(), res).Update(w)
	NewEffectsSystem().Update(w)

	assert.Equal(t, 1, res.ranged)
	assert.False(t, w.Registry.Alive(stone), "item thrown at an occupied cell must not be dropped")
	assert.Empty(t, ItemsAt(w, cell))
	assert.True(t, w.Registry.Alive(enemy))
}

func TestRangedSystem_WallStopsProjectile(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	require.NoError(t, w.Map.SetWall(domain.Position{X: 4, Y: 2}))
	player := addPlayer(t, w, domain.Position{X: 2, Y: 2})
	stone := giveItem(t, w, player, "Камень")
	cell := domain.Position{X: 6, Y: 2}
	w.Ranged.Add(player, domain.Ranged{Cell: &cell, Item: stone})

	NewRangedSystem(DefaultRules(), &countingResolver{}).Update(w)
	NewEffectsSystem().Update(w)

	assert.Equal(t, domain.Position{X: 3, Y: 2}, position(t, w, stone))
}

func TestRangedSystem_NoCellStillCharges(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	player := addPlayer(t, w, domain.Position{X: 2, Y: 2})
	stone := giveItem(t, w, player, "Камень")
	w.Ranged.Add(player, domain.Ranged{Item: stone})

	NewRangedSystem(DefaultRules(), &countingResolver{}).Update(w)

	assert.Equal(t, 0, energy(t, w, player))
	inv, _ := w.Inventories.Get(player)
	assert.Contains(t, inv.Items, stone)
	assert.Zero(t, w.Effects.Len())
}

func TestRangedSystem_NoEnergy(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	player := addPlayer(t, w, domain.Position{X: 2, Y: 2})
	stone := giveItem(t, w, player, "Камень")
	a, _ := w.Attributes.Get(player)
	a.Energy = 20
	it, _ := w.Items.Get(stone)
	it.Throwing = true
	cell := domain.Position{X: 6, Y: 2}
	w.Ranged.Add(player, domain.Ranged{Cell: &cell, Item: stone})

	NewRangedSystem(DefaultRules(), &countingResolver{}).Update(w)

	assert.Equal(t, 20, energy(t, w, player))
	assert.False(t, it.Throwing)
	inv, _ := w.Inventories.Get(player)
	assert.Contains(t, inv.Items, stone)
	assert.False(t, w.Ranged.Has(player))
}

func TestRangedSystem_WaitsForAnimation(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	anim := &holdAnimator{}
	w.Effects.SetAnimator(anim)
	player := addPlayer(t, w, domain.Position{X: 2, Y: 2})
	stone := giveItem(t, w, player, "Камень")
	cell := domain.Position{X: 6, Y: 2}
	w.Ranged.Add(player, domain.Ranged{Cell: &cell, Item: stone})

	NewRangedSystem(DefaultRules(), &countingResolver{}).Update(w)
	NewEffectsSystem().Update(w)

	assert.Equal(t, 1, w.Effects.InFlight())
	assert.Equal(t, domain.Position{X: 2, Y: 2}, position(t, w, stone))
	assert.Empty(t, ItemsAt(w, domain.Position{X: 2, Y: 2}), "flying item cannot be picked up")

	anim.finish()
	NewEffectsSystem().Update(w)

	assert.Zero(t, w.Effects.InFlight())
	assert.Equal(t, cell, position(t, w, stone))
}

func TestRangedSystem_ThrowerDeathAppliesEffects(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	w.Effects.SetAnimator(&holdAnimator{})
	enemy := addEnemy(t, w, domain.Position{X: 2, Y: 2}, vision)
	stone := giveItem(t, w, enemy, "Камень")
	cell := domain.Position{X: 6, Y: 2}
	w.Ranged.Add(enemy, domain.Ranged{Cell: &cell, Item: stone})

	NewRangedSystem(DefaultRules(), &countingResolver{}).Update(w)
	require.Equal(t, 1, w.Effects.InFlight())

	Kill(w, enemy)

	assert.Zero(t, w.Effects.Len())
	assert.False(t, w.Registry.Alive(enemy))
	assert.Equal(t, cell, position(t, w, stone))
	it, _ := w.Items.Get(stone)
	assert.False(t, it.Throwing)
}
