package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/ecs"
	"github.com/todo-knk/xibalba/pkg/logger"
)

// MeleeSystem исполняет намерения ближнего удара.
type MeleeSystem struct {
	rules    Rules
	resolver Resolver
}

func NewMeleeSystem(rules Rules, resolver Resolver) *MeleeSystem {
	if resolver == nil {
		resolver = DiceResolver{}
	}
	return &MeleeSystem{rules: rules, resolver: resolver}
}

func (s *MeleeSystem) Name() string { return "melee" }

func (s *MeleeSystem) Update(w *domain.World) {
	for _, id := range w.Registry.Query(ecs.MaskOf(domain.KindMelee, domain.KindPosition, domain.KindAttributes)) {
		m, ok := w.Melees.Get(id)
		if !ok {
			continue
		}
		intent := *m
		w.Melees.Remove(id)

		attrs, ok := w.Attributes.Get(id)
		if !ok {
			continue
		}
		pos, _ := w.Positions.Get(id)

		log := logger.Log.WithFields(logrus.Fields{
			"component": "melee",
			"entity_id": id,
			"target_id": intent.Target,
		})

		if attrs.IsDead() {
			continue
		}
		if err := attrs.Spend(s.rules.MeleeCost); err != nil {
			log.WithError(err).WithField("energy", attrs.Energy).Error("melee without energy")
			continue
		}

		// Цель могла погибнуть или уйти раньше в этом же ходу.
		targetAttrs, ok := w.Attributes.Get(intent.Target)
		if !ok || targetAttrs.IsDead() {
			log.Debug("melee target vanished")
			continue
		}
		targetPos, ok := w.Positions.Get(intent.Target)
		if !ok || !pos.IsAdjacent(*targetPos) {
			log.Debug("melee target out of reach")
			continue
		}

		out := s.resolver.Melee(w, Attack{
			Attacker: id,
			Defender: intent.Target,
			BodyPart: intent.BodyPart,
			Item:     equippedWeapon(w, id),
		})
		ReportOutcome(w, out)
	}
}
