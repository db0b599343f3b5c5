package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/ecs"
	"github.com/todo-knk/xibalba/pkg/logger"
)

// BrainSystem выбирает поведение ИИ: преследовать игрока или бродить.
// Каждый ход снимает оба намерения и ставит не более одного.
type BrainSystem struct {
	rules Rules
}

func NewBrainSystem(rules Rules) *BrainSystem {
	return &BrainSystem{rules: rules}
}

func (s *BrainSystem) Name() string { return "brain" }

func (s *BrainSystem) Update(w *domain.World) {
	playerPos, hasPlayer := w.PlayerPosition()
	if pid, ok := w.Player(); ok {
		if pa, ok := w.Attributes.Get(pid); ok && pa.IsDead() {
			hasPlayer = false
		}
	}

	for _, id := range w.Registry.Query(ecs.MaskOf(domain.KindBrain, domain.KindPosition, domain.KindAttributes)) {
		pos, ok := w.Positions.Get(id)
		if !ok {
			continue
		}
		attrs, _ := w.Attributes.Get(id)

		w.Wanders.Remove(id)
		w.Targets.Remove(id)

		if attrs.IsDead() || attrs.Energy < s.rules.ActivationThreshold {
			continue
		}

		if hasPlayer && s.isNear(w, *pos, playerPos, attrs.Vision) {
			w.Targets.Add(id, domain.Target{Pos: playerPos})
			logger.Log.WithFields(logrus.Fields{
				"component": "brain",
				"entity_id": id,
				"target":    playerPos,
			}).Debug("player spotted")
			continue
		}
		w.Wanders.Add(id, domain.Wander{})
	}
}

// isNear — цель в радиусе зрения и, если так настроено, в прямой видимости.
func (s *BrainSystem) isNear(w *domain.World, from, to domain.Position, vision int) bool {
	if from.DistanceSquaredTo(to) > vision*vision {
		return false
	}
	if s.rules.RequireLineOfSight {
		return HasLineOfSight(w.Map, from, to)
	}
	return true
}
