package domain

import "encoding/json"

// InternalCommand — команда, уже прошедшая разбор имени действия.
type InternalCommand struct {
	Action  ActionType
	Payload json.RawMessage
}
