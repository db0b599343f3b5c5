package domain

import "fmt"

// Типы записей игрового лога.
const (
	LogInfo   = "INFO"
	LogCombat = "COMBAT"
	LogError  = "ERROR"
)

// LogEntry — запись игрового лога, показываемая игроку.
type LogEntry struct {
	Turn int    `json:"turn"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// MessageLog — ограниченный по размеру журнал; старые записи вытесняются.
type MessageLog struct {
	entries []LogEntry
	limit   int
}

func NewMessageLog(limit int) *MessageLog {
	if limit <= 0 {
		limit = 100
	}
	return &MessageLog{limit: limit}
}

func (l *MessageLog) Add(turn int, kind, format string, args ...any) {
	l.entries = append(l.entries, LogEntry{Turn: turn, Type: kind, Text: fmt.Sprintf(format, args...)})
	if over := len(l.entries) - l.limit; over > 0 {
		l.entries = append(l.entries[:0:0], l.entries[over:]...)
	}
}

// Recent возвращает не больше n последних записей, от старых к новым.
func (l *MessageLog) Recent(n int) []LogEntry {
	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]LogEntry, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

// Since — записи, сделанные начиная с хода turn.
func (l *MessageLog) Since(turn int) []LogEntry {
	var out []LogEntry
	for _, e := range l.entries {
		if e.Turn >= turn {
			out = append(out, e)
		}
	}
	return out
}

func (l *MessageLog) Len() int {
	return len(l.entries)
}
