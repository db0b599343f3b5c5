package domain

import "strings"

// ActionType — внутренний идентификатор команды игрока.
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove
	ActionWait
	ActionThrow
	ActionFire
	ActionDebug
	ActionDescend

	// Только в режиме отладки.
	ActionTeleport
	ActionSpawn
)

var actionStringToCmd = map[string]ActionType{
	"INIT":    ActionInit,
	"MOVE":    ActionMove,
	"WAIT":    ActionWait,
	"THROW":   ActionThrow,
	"FIRE":    ActionFire,
	"DEBUG":   ActionDebug,
	"DESCEND": ActionDescend,

	"TELEPORT": ActionTeleport,
	"SPAWN":    ActionSpawn,
}

var actionCmdToString = map[ActionType]string{
	ActionInit:    "INIT",
	ActionMove:    "MOVE",
	ActionWait:    "WAIT",
	ActionThrow:   "THROW",
	ActionFire:    "FIRE",
	ActionDebug:   "DEBUG",
	ActionDescend: "DESCEND",

	ActionTeleport: "TELEPORT",
	ActionSpawn:    "SPAWN",
}

// ParseAction конвертирует строку из JSON в ActionType (регистр не важен).
func ParseAction(s string) ActionType {
	if val, ok := actionStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// ConsumesTurn — запускает ли команда ход симуляции.
// DEBUG и INIT меняют только отображение, SPAWN не двигает время.
func (a ActionType) ConsumesTurn() bool {
	switch a {
	case ActionMove, ActionWait, ActionThrow, ActionFire, ActionDescend, ActionTeleport:
		return true
	}
	return false
}
