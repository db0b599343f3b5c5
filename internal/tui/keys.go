package tui

import (
	"encoding/json"

	"github.com/gdamore/tcell/v2"

	"github.com/todo-knk/xibalba/pkg/api"
)

// keyAction — что делать с нажатой клавишей.
type keyAction int

const (
	keyNone keyAction = iota
	keyCommand
	// keyThrow — цель выбирается по текущему миру, команду собирает App.
	keyThrow
	keyQuit
)

var runeDirections = map[rune][2]int{
	'h': {-1, 0},
	'j': {0, 1},
	'k': {0, -1},
	'l': {1, 0},
	'y': {-1, -1},
	'u': {1, -1},
	'b': {-1, 1},
	'n': {1, 1},
}

var arrowDirections = map[tcell.Key][2]int{
	tcell.KeyLeft:  {-1, 0},
	tcell.KeyDown:  {0, 1},
	tcell.KeyUp:    {0, -1},
	tcell.KeyRight: {1, 0},
}

// commandFor переводит клавишу в команду движка.
func commandFor(key tcell.Key, r rune) (api.ClientCommand, keyAction) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return api.ClientCommand{}, keyQuit
	case tcell.KeyRune:
	default:
		if d, ok := arrowDirections[key]; ok {
			return moveCommand(d), keyCommand
		}
		return api.ClientCommand{}, keyNone
	}

	if d, ok := runeDirections[r]; ok {
		return moveCommand(d), keyCommand
	}
	switch r {
	case ' ', '.':
		return api.ClientCommand{Action: "WAIT"}, keyCommand
	case '\\':
		return api.ClientCommand{Action: "DEBUG"}, keyCommand
	case '>':
		return api.ClientCommand{Action: "DESCEND"}, keyCommand
	case 't':
		return api.ClientCommand{}, keyThrow
	case 'q':
		return api.ClientCommand{}, keyQuit
	}
	return api.ClientCommand{}, keyNone
}

func moveCommand(d [2]int) api.ClientCommand {
	raw, _ := json.Marshal(api.DirectionPayload{Dx: d[0], Dy: d[1]})
	return api.ClientCommand{Action: "MOVE", Payload: raw}
}
