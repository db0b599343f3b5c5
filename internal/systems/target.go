package systems

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/ecs"
	"github.com/todo-knk/xibalba/pkg/logger"
)

// TargetSystem превращает намерение Target в шаг по закэшированному пути.
// Сам агент не двигается: шаг исполняет MovementSystem.
type TargetSystem struct{}

func NewTargetSystem() *TargetSystem { return &TargetSystem{} }

func (s *TargetSystem) Name() string { return "target" }

func (s *TargetSystem) Update(w *domain.World) {
	ids := w.Registry.Query(ecs.MaskOf(domain.KindTarget, domain.KindPosition, domain.KindBrain))
	if len(ids) == 0 {
		return
	}
	grid := w.Map.Walkability()

	for _, id := range ids {
		target, ok := w.Targets.Get(id)
		if !ok || !w.Registry.Alive(id) {
			continue
		}
		pos, _ := w.Positions.Get(id)
		brain, _ := w.Brains.Get(id)
		goal := target.Pos
		w.Targets.Remove(id)

		log := logger.Log.WithFields(logrus.Fields{"component": "target", "entity_id": id})

		if brain.Path.Empty() {
			path, err := FindPath(grid, *pos, goal)
			if err != nil {
				if !errors.Is(err, ErrNoPath) {
					log.WithError(err).Warn("pathfinding failed")
				}
				brain.InvalidatePath()
				continue
			}
			brain.Path = path
		}

		next, ok := brain.Path.Peek()
		if !ok {
			// уже на месте
			continue
		}
		if !s.canStep(w, *pos, next, goal) {
			log.WithField("cell", next).Debug("path obstructed, invalidating")
			brain.InvalidatePath()
			continue
		}

		w.Movements.Add(id, domain.Movement{Target: next, HasTarget: true})
		brain.Path = brain.Path.Pop()
	}
}

// canStep — следующая клетка соседняя, проходима по рельефу и свободна.
// Клетку цели занимать можно: туда бьют, а не входят.
func (s *TargetSystem) canStep(w *domain.World, from, next, goal domain.Position) bool {
	if !from.IsAdjacent(next) || w.Map.IsBlocked(next) {
		return false
	}
	return next == goal || !w.IsOccupied(next)
}
