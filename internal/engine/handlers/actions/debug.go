package actions

import (
	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/engine/handlers"
)

// HandleDebug переключает режим отладки: вся карта и все сущности видны.
func HandleDebug(ctx handlers.Context) (handlers.Result, error) {
	ctx.World.Debug = !ctx.World.Debug

	msg := "Режим отладки выключен."
	if ctx.World.Debug {
		msg = "Режим отладки включён."
	}
	return handlers.Result{Msg: msg, MsgType: domain.LogInfo}, nil
}
