package systems

import "github.com/todo-knk/xibalba/internal/domain"

// System — шаг конвейера хода. Update вызывается ровно один раз за ход.
type System interface {
	Name() string
	Update(w *domain.World)
}

// DefaultPipeline — порядок систем для одного хода.
// Сначала применяются отложенные эффекты и намерения, поставленные игроком,
// затем ИИ выбирает намерения и они тут же исполняются, в конце пересчитывается свет.
func DefaultPipeline(rules Rules, resolver Resolver) []System {
	movement := NewMovementSystem(rules)
	melee := NewMeleeSystem(rules, resolver)
	return []System{
		NewEffectsSystem(),
		movement,
		melee,
		NewRangedSystem(rules, resolver),
		NewBrainSystem(rules),
		NewWanderSystem(),
		NewTargetSystem(),
		movement,
		melee,
		NewVisibilitySystem(),
	}
}
