package actions

import (
	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/engine/handlers"
)

// HandleWait пропускает ход: энергия копится, мир живёт.
func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     "Вы пропускаете ход.",
		MsgType: domain.LogInfo,
		Turn:    true,
	}, nil
}
