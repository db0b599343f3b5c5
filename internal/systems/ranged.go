package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/core/types/enums"
	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/ecs"
	"github.com/todo-knk/xibalba/pkg/logger"
)

// RangedSystem исполняет броски и выстрелы. Судьба предмета (упасть или
// исчезнуть) откладывается до окончания анимации полёта.
type RangedSystem struct {
	rules    Rules
	resolver Resolver
}

func NewRangedSystem(rules Rules, resolver Resolver) *RangedSystem {
	if resolver == nil {
		resolver = DiceResolver{}
	}
	return &RangedSystem{rules: rules, resolver: resolver}
}

func (s *RangedSystem) Name() string { return "ranged" }

func (s *RangedSystem) Update(w *domain.World) {
	for _, id := range w.Registry.Query(ecs.MaskOf(domain.KindRanged, domain.KindPosition, domain.KindAttributes)) {
		r, ok := w.Ranged.Get(id)
		if !ok {
			continue
		}
		intent := *r
		w.Ranged.Remove(id)

		attrs, ok := w.Attributes.Get(id)
		if !ok {
			continue
		}
		pos, _ := w.Positions.Get(id)

		log := logger.Log.WithFields(logrus.Fields{
			"component": "ranged",
			"entity_id": id,
			"item_id":   intent.Item,
		})

		if err := attrs.Spend(s.rules.RangedCost); err != nil {
			log.WithError(err).WithField("energy", attrs.Energy).Error("ranged action without energy")
			if it, ok := w.Items.Get(intent.Item); ok {
				it.Throwing = false
			}
			continue
		}

		if intent.Cell == nil {
			log.Debug("ranged action without target cell")
			continue
		}
		it, ok := w.Items.Get(intent.Item)
		if !ok || it.Owner != id {
			log.Debug("thrown item is gone")
			continue
		}

		landing := LandingCell(w.Map, *pos, *intent.Cell)
		from := *pos

		// Предмет покидает руки и стартует с клетки бросающего.
		if inv, ok := w.Inventories.Get(id); ok {
			inv.Remove(intent.Item)
		}
		it.Throwing = true
		if ip, ok := w.Positions.Get(intent.Item); ok {
			*ip = from
		} else {
			w.Positions.Add(intent.Item, from)
		}

		kind := enums.EffectDrop
		if defender, ok := w.ActorAt(landing); ok && defender != id {
			skill := intent.Skill
			if skill == enums.SkillUnknown {
				if wpn, ok := w.Weapons.Get(intent.Item); ok && wpn.Skill.IsRanged() {
					skill = wpn.Skill
				}
			}
			out := s.resolver.Ranged(w, Attack{
				Attacker: id,
				Defender: defender,
				BodyPart: intent.BodyPart,
				Item:     intent.Item,
				Skill:    skill,
			})
			ReportOutcome(w, out)
			// попал или нет, предмет в занятой клетке пропадает
			kind = enums.EffectDestroy
		} else if w.Players.Has(id) {
			w.Logf(domain.LogInfo, "Вы бросаете %s.", it.Name)
		}

		effectID := w.Effects.Enqueue(domain.Effect{
			Kind:  kind,
			Actor: id,
			Item:  intent.Item,
			From:  from,
			Cell:  landing,
		})
		log.WithFields(logrus.Fields{
			"effect_id": effectID,
			"kind":      kind.String(),
			"landing":   landing,
		}).Debug("projectile launched")
	}
}
