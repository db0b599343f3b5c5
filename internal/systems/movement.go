package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/core/types"
	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/ecs"
	"github.com/todo-knk/xibalba/pkg/logger"
)

// MovementSystem исполняет намерения Movement. Это единственное место,
// где меняется Position актёров.
type MovementSystem struct {
	rules Rules
}

func NewMovementSystem(rules Rules) *MovementSystem {
	return &MovementSystem{rules: rules}
}

func (s *MovementSystem) Name() string { return "movement" }

func (s *MovementSystem) Update(w *domain.World) {
	for _, id := range w.Registry.Query(ecs.MaskOf(domain.KindMovement, domain.KindPosition, domain.KindAttributes)) {
		mv, ok := w.Movements.Get(id)
		if !ok {
			continue
		}
		intent := *mv
		w.Movements.Remove(id)
		s.move(w, id, intent)
	}
}

func (s *MovementSystem) move(w *domain.World, id types.EntityID, intent domain.Movement) {
	pos, _ := w.Positions.Get(id)
	attrs, _ := w.Attributes.Get(id)
	dest := intent.Destination(*pos)

	log := logger.Log.WithFields(logrus.Fields{
		"component": "movement",
		"entity_id": id,
		"from":      *pos,
		"to":        dest,
	})

	if attrs.IsDead() {
		return
	}
	if !attrs.CanAfford(s.rules.MoveCost) {
		log.WithError(domain.ErrInvalidAction).WithField("energy", attrs.Energy).Error("move without energy")
		return
	}

	// Удар при столкновении с врагом: платит система ближнего боя.
	if other, ok := w.ActorAt(dest); ok && other != id && pos.IsAdjacent(dest) {
		if w.IsHostile(id, other) {
			w.Melees.Add(id, domain.Melee{Target: other})
			return
		}
	}

	if err := attrs.Spend(s.rules.MoveCost); err != nil {
		log.WithError(err).WithField("energy", attrs.Energy).Error("move without energy")
		return
	}

	switch {
	case !pos.IsAdjacent(dest):
		log.Debug("move rejected: not adjacent")
		return
	case w.Map.IsBlocked(dest):
		log.Debug("move rejected: blocked terrain")
		if w.Players.Has(id) {
			w.Logf(domain.LogInfo, "Вы упираетесь в стену.")
		}
		return
	case w.IsOccupied(dest):
		log.Debug("move rejected: cell occupied")
		return
	}

	*pos = dest

	if w.Players.Has(id) {
		for _, item := range ItemsAt(w, dest) {
			PickUp(w, id, item)
		}
	}
}
