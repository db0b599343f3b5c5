package admin

import (
	"errors"
	"fmt"

	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/engine/handlers"
	"github.com/todo-knk/xibalba/pkg/api"
	"github.com/todo-knk/xibalba/pkg/dungeon"
)

// Команды работают только при включённом DEBUG.
func requireDebug(ctx handlers.Context) error {
	if !ctx.World.Debug {
		return fmt.Errorf("%w: debug mode is off", domain.ErrInvalidAction)
	}
	return nil
}

// HandleTeleport переносит игрока на свободную клетку. Ход исполняется,
// чтобы пересчитать освещение.
func HandleTeleport(ctx handlers.Context, p api.TeleportPayload) (handlers.Result, error) {
	if err := requireDebug(ctx); err != nil {
		return handlers.Fail("Доступно только в режиме отладки.", err)
	}

	w := ctx.World
	pos, ok := w.Positions.Get(ctx.Actor)
	if !ok {
		return handlers.Fail("Вас нет на карте.", domain.ErrEntityNotFound)
	}
	target := domain.Position{X: p.X, Y: p.Y}
	if !w.Map.InBounds(target) {
		return handlers.Fail("Клетка за пределами карты.", fmt.Errorf("%w: %w %v", domain.ErrInvalidAction, domain.ErrOutOfBounds, target))
	}
	if target != *pos && !w.IsWalkable(target) {
		return handlers.Fail("Клетка занята.", fmt.Errorf("%w: cell %v is blocked", domain.ErrInvalidAction, target))
	}

	// Отладочная команда: позиция меняется в обход MovementSystem.
	*pos = target
	// намерения со старой клетки больше не имеют смысла
	w.Movements.Remove(ctx.Actor)
	w.Ranged.Remove(ctx.Actor)

	return handlers.Result{
		Msg:     fmt.Sprintf("Телепорт в (%d, %d).", target.X, target.Y),
		MsgType: domain.LogInfo,
		Turn:    true,
	}, nil
}

// HandleSpawn создаёт существо или предмет из каталога рядом с игроком.
func HandleSpawn(ctx handlers.Context, p api.SpawnPayload) (handlers.Result, error) {
	if err := requireDebug(ctx); err != nil {
		return handlers.Fail("Доступно только в режиме отладки.", err)
	}
	if ctx.Catalog == nil {
		return handlers.Fail("Каталог недоступен.", fmt.Errorf("%w: no catalog", domain.ErrInvalidAction))
	}

	w := ctx.World
	pos, ok := w.Positions.Get(ctx.Actor)
	if !ok {
		return handlers.Fail("Вас нет на карте.", domain.ErrEntityNotFound)
	}

	f := dungeon.NewFactory(ctx.Catalog, w.Rng)

	// Предмет кладём под ноги
	if _, ok := ctx.Catalog.Item(p.Name); ok {
		if _, err := f.CreateItem(w, p.Name, *pos); err != nil {
			return handlers.Fail("Не удалось создать предмет.", err)
		}
		return handlers.Result{Msg: fmt.Sprintf("Создан предмет: %s.", p.Name), MsgType: domain.LogInfo}, nil
	}

	// Существо ставим на первую свободную соседнюю клетку
	for _, cell := range pos.Neighbours() {
		if !w.IsWalkable(cell) {
			continue
		}
		if _, err := f.CreateEnemy(w, p.Name, cell); err != nil {
			if errors.Is(err, dungeon.ErrUnknownDef) {
				return handlers.Fail(fmt.Sprintf("Неизвестное имя: %s.", p.Name), fmt.Errorf("%w: %v", domain.ErrInvalidAction, err))
			}
			return handlers.Fail("Не удалось создать существо.", err)
		}
		return handlers.Result{Msg: fmt.Sprintf("Создано существо: %s.", p.Name), MsgType: domain.LogInfo}, nil
	}
	return handlers.Fail("Рядом нет места.", fmt.Errorf("%w: no free neighbour", domain.ErrInvalidAction))
}
