package systems

import (
	"fmt"

	"github.com/todo-knk/xibalba/internal/core/types"
	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/ecs"
)

// ValidationResult — результат проверки цели для броска.
type ValidationResult struct {
	Cell    domain.Position
	Valid   bool
	Message string // сообщение игроку, если Valid == false
}

// ValidateThrow проверяет, может ли actor бросить item в клетку cell.
// rangeLimit — максимальная дистанция; 0 означает радиус зрения актёра.
func ValidateThrow(w *domain.World, actor, item types.EntityID, cell domain.Position, rangeLimit float64) ValidationResult {
	// 1. Предмет в руках
	inv, ok := w.Inventories.Get(actor)
	if !ok || !inv.Contains(item) {
		return ValidationResult{Valid: false, Message: "У вас нет этого предмета."}
	}

	// 2. Клетка на карте
	if !w.Map.InBounds(cell) {
		return ValidationResult{Valid: false, Message: "Туда не добросить."}
	}

	pos, ok := w.Positions.Get(actor)
	if !ok {
		return ValidationResult{Valid: false, Message: "Вас нет на карте."}
	}
	if *pos == cell {
		return ValidationResult{Valid: false, Message: "Нельзя бросить себе под ноги."}
	}

	// 3. Дистанция
	if rangeLimit <= 0 {
		rangeLimit = float64(domain.DefaultVisionRadius)
		if a, ok := w.Attributes.Get(actor); ok && a.Vision > 0 {
			rangeLimit = float64(a.Vision)
		}
	}
	if pos.DistanceTo(cell) > rangeLimit {
		return ValidationResult{Valid: false, Message: "Цель слишком далеко."}
	}

	// 4. Прямая видимость
	if !HasLineOfSight(w.Map, *pos, cell) {
		return ValidationResult{Valid: false, Message: "Вы не видите цель."}
	}

	return ValidationResult{Cell: cell, Valid: true}
}

// Err превращает отказ в ошибку для обработчиков команд.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidAction, r.Message)
}

// NearestVisibleEnemy — ближайший живой враг на освещённой клетке
// в прямой видимости от from. При равенстве побеждает созданный раньше.
func NearestVisibleEnemy(w *domain.World, from domain.Position) (types.EntityID, domain.Position, bool) {
	best := types.NilEntityID
	var bestPos domain.Position
	bestDist := -1

	for _, id := range w.Registry.Query(ecs.MaskOf(domain.KindEnemy, domain.KindPosition, domain.KindAttributes)) {
		attrs, _ := w.Attributes.Get(id)
		if attrs.IsDead() {
			continue
		}
		pos, _ := w.Positions.Get(id)
		if !IsLit(w, *pos) || !HasLineOfSight(w.Map, from, *pos) {
			continue
		}
		d := from.DistanceSquaredTo(*pos)
		if bestDist < 0 || d < bestDist {
			best, bestPos, bestDist = id, *pos, d
		}
	}
	return best, bestPos, bestDist >= 0
}
