package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/core/types/enums"
	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/pkg/logger"
)

// EffectsSystem применяет эффекты, чья анимация уже закончилась.
type EffectsSystem struct{}

func NewEffectsSystem() *EffectsSystem { return &EffectsSystem{} }

func (s *EffectsSystem) Name() string { return "effects" }

func (s *EffectsSystem) Update(w *domain.World) {
	for _, e := range w.Effects.DrainCompleted() {
		ApplyEffect(w, e)
	}
}

// ApplyEffect переносит отложенный эффект в состояние мира.
func ApplyEffect(w *domain.World, e domain.Effect) {
	log := logger.Log.WithFields(logrus.Fields{
		"component": "effects",
		"effect_id": e.ID,
		"kind":      e.Kind.String(),
		"item_id":   e.Item,
	})

	if !w.Registry.Alive(e.Item) {
		log.Debug("effect target already gone")
		return
	}

	switch e.Kind {
	case enums.EffectDrop:
		DropItem(w, e.Item, e.Cell)
	case enums.EffectDestroy:
		DestroyItem(w, e.Item)
	default:
		log.Warn("unknown effect kind")
		return
	}
	log.Debug("effect applied")
}
