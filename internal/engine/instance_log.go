package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/pkg/logger"
)

// AddLog добавляет запись в игровой лог текущего уровня
func (g *Game) AddLog(text, logType string) {
	if logType == "" {
		logType = domain.LogInfo
	}
	g.world.Logf(logType, "%s", text)

	logger.Log.WithFields(logrus.Fields{
		"component": "game_log",
		"depth":     g.world.Depth,
		"turn":      g.world.Turn,
		"log_type":  logType,
	}).Debug(text)
}

// Logs — последние n записей игрового лога, от старых к новым.
func (g *Game) Logs(n int) []domain.LogEntry {
	return g.world.Log.Recent(n)
}
