package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/core/types"
	"github.com/todo-knk/xibalba/internal/core/types/enums"
	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/pkg/dungeon"
	"github.com/todo-knk/xibalba/pkg/logger"
)

const (
	baseDefense  = 8
	maxSkill     = 10
	skillBonus   = 2
	criticalRoll = 20
	fumbleRoll   = 1
)

// Attack — всё, что нужно для разрешения одного удара или броска.
type Attack struct {
	Attacker types.EntityID
	Defender types.EntityID
	BodyPart enums.BodyPart
	Item     types.EntityID
	Skill    enums.Skill
}

// Outcome — результат атаки.
type Outcome struct {
	Attack
	Roll   int
	Hit    bool
	Damage int
	Killed bool
}

// Resolver разрешает атаки. Вызывается системами действий ровно раз на атаку.
type Resolver interface {
	Melee(w *domain.World, a Attack) Outcome
	Ranged(w *domain.World, a Attack) Outcome
}

// DiceResolver: d20 + навык*2 + модификатор части тела против 8 + стойкость.
// Натуральная 20 всегда попадает, натуральная 1 всегда мимо.
type DiceResolver struct{}

func (r DiceResolver) Melee(w *domain.World, a Attack) Outcome {
	if a.Skill == enums.SkillUnknown {
		a.Skill = enums.SkillUnarmed
		if wpn, ok := w.Weapons.Get(a.Item); ok && wpn.Skill != enums.SkillUnknown {
			a.Skill = wpn.Skill
		}
	}
	return r.resolve(w, a, itemDamage(w, a.Item))
}

func (r DiceResolver) Ranged(w *domain.World, a Attack) Outcome {
	if a.Skill == enums.SkillUnknown {
		a.Skill = enums.SkillThrowing
	}
	return r.resolve(w, a, itemDamage(w, a.Item))
}

func (r DiceResolver) resolve(w *domain.World, a Attack, bonus int) Outcome {
	out := Outcome{Attack: a}

	attacker, ok := w.Attributes.Get(a.Attacker)
	if !ok {
		return out
	}
	defender, ok := w.Attributes.Get(a.Defender)
	if !ok || defender.IsDead() {
		return out
	}

	part := a.BodyPart
	if body, ok := w.Bodies.Get(a.Defender); ok && !body.Has(part) {
		part = enums.BodyPartBody
	}
	if part == enums.BodyPartUnknown {
		part = enums.BodyPartBody
	}
	out.BodyPart = part

	skills, _ := w.Skills.Get(a.Attacker)
	out.Roll = w.Rng.Intn(20) + 1

	total := out.Roll + skills.Level(a.Skill)*skillBonus + part.HitModifier()
	switch out.Roll {
	case criticalRoll:
		out.Hit = true
	case fumbleRoll:
		out.Hit = false
	default:
		out.Hit = total >= baseDefense+defender.Toughness
	}

	log := logger.Log.WithFields(logrus.Fields{
		"component":   "combat_system",
		"attacker_id": a.Attacker,
		"defender_id": a.Defender,
		"roll":        out.Roll,
		"total":       total,
		"skill":       a.Skill.String(),
		"body_part":   part.String(),
	})

	if !out.Hit {
		log.Debug("attack missed")
		return out
	}

	dmg := attacker.Damage + bonus - armorDefense(w, a.Defender)
	if dmg < 1 {
		dmg = 1
	}
	out.Damage = dmg
	out.Killed = defender.TakeDamage(dmg)

	if skills != nil && skills.Levels != nil && skills.Levels[a.Skill] < maxSkill {
		skills.Levels[a.Skill]++
	}
	if body, ok := w.Bodies.Get(a.Defender); ok {
		if body.Parts == nil {
			body.Parts = map[enums.BodyPart]int{}
		}
		body.Parts[part] += dmg
	}

	log.WithFields(logrus.Fields{
		"damage":   dmg,
		"hp_after": defender.Health,
		"killed":   out.Killed,
	}).Info("attack resolved")
	return out
}

// ReportOutcome пишет результат в игровой лог и обрабатывает смерть.
func ReportOutcome(w *domain.World, out Outcome) {
	attacker, defender := w.Name(out.Attacker), w.Name(out.Defender)

	switch {
	case !out.Hit:
		w.Logf(domain.LogCombat, "%s промахивается по %s.", attacker, defender)
	case out.Killed:
		w.Logf(domain.LogCombat, "%s наносит %d урона. %s погибает!", attacker, out.Damage, defender)
	default:
		w.Logf(domain.LogCombat, "%s бьёт %s (%s) на %d.", attacker, defender, bodyPartName(out.BodyPart), out.Damage)
	}

	if out.Killed {
		Kill(w, out.Defender)
	}
}

// Kill обрабатывает смерть: эффекты актёра применяются сразу, инвентарь
// выпадает на клетку, появляются останки. Игрок не удаляется, а завершает игру.
func Kill(w *domain.World, id types.EntityID) {
	log := logger.Log.WithFields(logrus.Fields{"component": "combat_system", "entity_id": id})

	for _, e := range w.Effects.CancelFor(id) {
		ApplyEffect(w, e)
	}

	pos, hasPos := w.Positions.Get(id)
	if hasPos {
		cell := *pos
		if inv, ok := w.Inventories.Get(id); ok {
			for _, item := range append([]types.EntityID(nil), inv.Items...) {
				DropItem(w, item, cell)
			}
			inv.Items = nil
		}
		if _, err := dungeon.CreateRemains(w, cell); err != nil {
			log.WithError(err).Warn("failed to create remains")
		}
	}

	if w.Players.Has(id) {
		w.GameOver = true
		w.Logf(domain.LogCombat, "Вы погибли.")
		log.Info("player died")
		return
	}

	w.Registry.Destroy(id)
	log.Debug("entity destroyed")
}

// equippedWeapon — первое оружие ближнего боя в инвентаре.
func equippedWeapon(w *domain.World, id types.EntityID) types.EntityID {
	inv, ok := w.Inventories.Get(id)
	if !ok {
		return types.NilEntityID
	}
	for _, item := range inv.Items {
		if wpn, ok := w.Weapons.Get(item); ok && !wpn.Skill.IsRanged() {
			return item
		}
	}
	return types.NilEntityID
}

func itemDamage(w *domain.World, item types.EntityID) int {
	if item.IsNil() {
		return 0
	}
	if wpn, ok := w.Weapons.Get(item); ok {
		return wpn.Damage
	}
	if ammo, ok := w.Ammunition.Get(item); ok {
		return ammo.Damage
	}
	return 0
}

// armorDefense — суммарная защита всей брони в инвентаре.
func armorDefense(w *domain.World, id types.EntityID) int {
	inv, ok := w.Inventories.Get(id)
	if !ok {
		return 0
	}
	total := 0
	for _, item := range inv.Items {
		if ar, ok := w.Armors.Get(item); ok {
			total += ar.Defense
		}
	}
	return total
}

var bodyPartNames = map[enums.BodyPart]string{
	enums.BodyPartHead:     "голова",
	enums.BodyPartBody:     "туловище",
	enums.BodyPartLeftArm:  "левая рука",
	enums.BodyPartRightArm: "правая рука",
	enums.BodyPartLeftLeg:  "левая нога",
	enums.BodyPartRightLeg: "правая нога",
	enums.BodyPartTail:     "хвост",
	enums.BodyPartWings:    "крылья",
}

func bodyPartName(b enums.BodyPart) string {
	if n, ok := bodyPartNames[b]; ok {
		return n
	}
	return "туловище"
}
