package systems

import (
	"github.com/todo-knk/xibalba/internal/core/types/enums"
	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/ecs"
)

// WanderSystem отправляет агента на случайную свободную соседнюю клетку.
type WanderSystem struct{}

func NewWanderSystem() *WanderSystem { return &WanderSystem{} }

func (s *WanderSystem) Name() string { return "wander" }

func (s *WanderSystem) Update(w *domain.World) {
	for _, id := range w.Registry.Query(ecs.MaskOf(domain.KindWander, domain.KindPosition)) {
		pos, ok := w.Positions.Get(id)
		if !ok || !w.Wanders.Remove(id) {
			continue
		}

		var options []enums.Direction
		for _, d := range enums.AllDirections {
			if w.IsWalkable(pos.Step(d)) {
				options = append(options, d)
			}
		}
		if len(options) == 0 {
			continue
		}

		d := options[w.Rng.Intn(len(options))]
		w.Movements.Add(id, domain.Movement{Direction: d})
	}
}
