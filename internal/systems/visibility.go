package systems

import (
	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/pkg/logger"
)

// VisibilitySystem пересчитывает свет от игрока и переносит его на карту.
type VisibilitySystem struct {
	Falloff Falloff
}

func NewVisibilitySystem() *VisibilitySystem {
	return &VisibilitySystem{Falloff: LinearFalloff}
}

func (s *VisibilitySystem) Name() string { return "visibility" }

func (s *VisibilitySystem) Update(w *domain.World) {
	id, ok := w.Player()
	if !ok {
		return
	}
	pos, ok := w.Positions.Get(id)
	if !ok {
		return
	}

	radius := domain.DefaultVisionRadius
	if a, ok := w.Attributes.Get(id); ok && a.Vision > 0 {
		radius = a.Vision
	}

	w.Light = ComputeLightWith(w.Map.ResistanceMap(), *pos, radius, s.Falloff)
	w.Map.ApplyLight(w.Light)

	logger.Log.WithField("component", "visibility").
		WithField("radius", radius).
		Debugf("light recomputed from %d,%d", pos.X, pos.Y)
}

// IsLit — освещена ли клетка в последнем пересчёте.
func IsLit(w *domain.World, p domain.Position) bool {
	if p.X < 0 || p.X >= len(w.Light) {
		return false
	}
	col := w.Light[p.X]
	return p.Y >= 0 && p.Y < len(col) && col[p.Y] > 0
}
