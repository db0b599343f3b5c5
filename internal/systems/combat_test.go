package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todo-knk/xibalba/internal/core/types/enums"
	"github.com/todo-knk/xibalba/internal/domain"
)

func TestDiceResolver_Rolls(t *testing.T) {
	tests := []struct {
		name      string
		roll      int
		toughness int
		wantHit   bool
	}{
		{name: "natural 20 always hits", roll: 20, toughness: 100, wantHit: true},
		{name: "natural 1 always misses", roll: 1, toughness: -100, wantHit: false},
		{name: "meets defense", roll: 10, toughness: 2, wantHit: true},
		{name: "below defense", roll: 10, toughness: 3, wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, 10, 10)
			w.Rng = rollRng(tt.roll)
			player := addPlayer(t, w, domain.Position{X: 5, Y: 5})
			enemy := addEnemy(t, w, domain.Position{X: 6, Y: 5}, vision)
			def, _ := w.Attributes.Get(enemy)
			def.Toughness = tt.toughness

			out := DiceResolver{}.Melee(w, Attack{Attacker: player, Defender: enemy})

			assert.Equal(t, tt.roll, out.Roll)
			assert.Equal(t, tt.wantHit, out.Hit)
			if tt.wantHit {
				assert.Equal(t, 2, out.Damage)
				assert.Equal(t, 8, def.Health)
			} else {
				assert.Zero(t, out.Damage)
				assert.Equal(t, 10, def.Health)
			}
		})
	}
}

func TestDiceResolver_MinimumDamage(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	w.Rng = rollRng(20)
	player := addPlayer(t, w, domain.Position{X: 5, Y: 5})
	enemy := addEnemy(t, w, domain.Position{X: 6, Y: 5}, vision)
	armor := giveItem(t, w, enemy, "Стёганый доспех")
	w.Armors.Add(armor, domain.Armor{Defense: 50})

	out := DiceResolver{}.Melee(w, Attack{Attacker: player, Defender: enemy})

	require.True(t, out.Hit)
	assert.Equal(t, 1, out.Damage)
}

func TestDiceResolver_WeaponAndSkill(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	w.Rng = rollRng(20)
	player := addPlayer(t, w, domain.Position{X: 5, Y: 5})
	enemy := addEnemy(t, w, domain.Position{X: 6, Y: 5}, vision)
	spear := giveItem(t, w, player, "Кремнёвое копьё")
	w.Ammunition.Remove(spear)
	w.Weapons.Add(spear, domain.Weapon{Damage: 3, Skill: enums.SkillPiercing})

	out := DiceResolver{}.Melee(w, Attack{Attacker: player, Defender: enemy, Item: equippedWeapon(w, player)})

	require.True(t, out.Hit)
	assert.Equal(t, enums.SkillPiercing, out.Skill)
	assert.Equal(t, 5, out.Damage)
	skills, _ := w.Skills.Get(player)
	assert.Equal(t, 1, skills.Level(enums.SkillPiercing))
}

func TestDiceResolver_MissingBodyPart(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	w.Rng = rollRng(20)
	player := addPlayer(t, w, domain.Position{X: 5, Y: 5})
	enemy := addEnemy(t, w, domain.Position{X: 6, Y: 5}, vision)
	w.Bodies.Add(enemy, domain.Body{Parts: map[enums.BodyPart]int{enums.BodyPartBody: 0}})

	out := DiceResolver{}.Melee(w, Attack{Attacker: player, Defender: enemy, BodyPart: enums.BodyPartWings})

	assert.Equal(t, enums.BodyPartBody, out.BodyPart)
	body, _ := w.Bodies.Get(enemy)
	assert.Equal(t, 2, body.Parts[enums.BodyPartBody])
}

func TestDiceResolver_Kill(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	w.Rng = rollRng(20)
	player := addPlayer(t, w, domain.Position{X: 5, Y: 5})
	enemy := addEnemy(t, w, domain.Position{X: 6, Y: 5}, vision)
	def, _ := w.Attributes.Get(enemy)
	def.Health = 1

	out := DiceResolver{}.Melee(w, Attack{Attacker: player, Defender: enemy})
	assert.True(t, out.Killed)

	ReportOutcome(w, out)
	assert.False(t, w.Registry.Alive(enemy))
	assert.NotZero(t, w.Log.Len())
}

func TestDiceResolver_DeadDefender(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	w.Rng = rollRng(20)
	player := addPlayer(t, w, domain.Position{X: 5, Y: 5})
	enemy := addEnemy(t, w, domain.Position{X: 6, Y: 5}, vision)
	def, _ := w.Attributes.Get(enemy)
	def.Health = 0

	out := DiceResolver{}.Melee(w, Attack{Attacker: player, Defender: enemy})
	assert.False(t, out.Hit)
	assert.False(t, out.Killed)
}

func TestKill_PlayerEndsGame(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	player := addPlayer(t, w, domain.Position{X: 5, Y: 5})
	spear := giveItem(t, w, player, "Кремнёвое копьё")

	Kill(w, player)

	assert.True(t, w.GameOver)
	assert.True(t, w.Registry.Alive(player), "player entity is kept for the final frame")
	assert.Equal(t, domain.Position{X: 5, Y: 5}, position(t, w, spear))
	inv, _ := w.Inventories.Get(player)
	assert.Empty(t, inv.Items)
}
