package actions

import (
	"fmt"

	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/engine/handlers"
)

func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     fmt.Sprintf("Добро пожаловать в Шибальбу. Глубина %d.", ctx.World.Depth),
		MsgType: domain.LogInfo,
	}, nil
}
