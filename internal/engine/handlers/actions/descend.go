package actions

import (
	"fmt"

	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/ecs"
	"github.com/todo-knk/xibalba/internal/engine/handlers"
)

// HandleDescend уводит игрока на следующий уровень, если он стоит на выходе.
func HandleDescend(ctx handlers.Context) (handlers.Result, error) {
	w := ctx.World
	pos, ok := w.Positions.Get(ctx.Actor)
	if !ok {
		return handlers.Fail("Вас нет на карте.", domain.ErrEntityNotFound)
	}

	onExit := false
	for _, id := range w.Registry.Query(ecs.MaskOf(domain.KindExit, domain.KindPosition)) {
		if p, _ := w.Positions.Get(id); *p == *pos {
			onExit = true
			break
		}
	}
	if !onExit {
		return handlers.Fail("Здесь нет прохода вниз.", fmt.Errorf("%w: not standing on exit", domain.ErrInvalidAction))
	}
	if ctx.Levels == nil {
		return handlers.Fail("Проход завален.", fmt.Errorf("%w: no level switcher", domain.ErrInvalidAction))
	}

	depth := w.Depth
	if err := ctx.Levels.Descend(); err != nil {
		return handlers.Fail("Проход завален.", err)
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("Вы спускаетесь глубже... Глубина %d.", depth+1),
		MsgType: domain.LogInfo,
	}, nil
}
