package domain

import "encoding/json"

// ReplayAction — одна принятая команда игрока и ход, на котором она пришла.
type ReplayAction struct {
	Turn    int             `json:"turn"`
	Action  ActionType      `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// ReplaySession — зерно мира плюс все команды. Этого достаточно,
// чтобы детерминированно воспроизвести партию.
type ReplaySession struct {
	Seed      int64          `json:"seed"`
	Depth     int            `json:"depth"`
	Timestamp int64          `json:"timestamp"`
	Actions   []ReplayAction `json:"actions"`
}
