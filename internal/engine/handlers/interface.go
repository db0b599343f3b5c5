package handlers

import (
	"encoding/json"

	"github.com/todo-knk/xibalba/internal/core/types"
	"github.com/todo-knk/xibalba/internal/data"
	"github.com/todo-knk/xibalba/internal/domain"
)

// LevelSwitcher умеет заменить текущий уровень следующим.
// Game неявно реализует этот интерфейс.
type LevelSwitcher interface {
	Descend() error
}

// Context передает хендлеру состояние мира.
// Хендлер только ставит намерения; исполняют их системы в ходе.
type Context struct {
	World *domain.World
	Actor types.EntityID

	// ThrowRange — дальность броска; 0 значит радиус зрения.
	ThrowRange float64

	Levels LevelSwitcher

	// Catalog — справочник для отладочного SPAWN.
	Catalog *data.Catalog
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в лог игры напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст для игрового лога
	MsgType string // INFO, COMBAT, ERROR

	// Turn — команда требует исполнения хода.
	Turn bool
}

// HandlerFunc - это контракт для любой команды (MOVE, THROW, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// TurnResult — успешная команда, запускающая ход.
func TurnResult() Result {
	return Result{Turn: true}
}

// Fail — отказ с сообщением игроку.
func Fail(msg string, err error) (Result, error) {
	return Result{Msg: msg, MsgType: domain.LogError}, err
}
