package actions

import (
	"github.com/todo-knk/xibalba/internal/core/types/enums"
	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/engine/handlers"
	"github.com/todo-knk/xibalba/pkg/api"
)

// HandleMove ставит намерение шага. Удар при столкновении решает MovementSystem.
func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	if !ctx.World.Positions.Has(ctx.Actor) {
		return handlers.Fail("Вас нет на карте.", domain.ErrEntityNotFound)
	}

	ctx.World.Movements.Add(ctx.Actor, domain.Movement{Direction: enums.DirectionFromDelta(p.Dx, p.Dy)})
	return handlers.TurnResult(), nil
}
