package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/pkg/api"
)

// Сообщения игроку при разборе данных команды.
const (
	msgPayloadMissing = "Команде не хватает данных."
	msgPayloadBroken  = "Не удалось разобрать команду."
	msgPayloadInvalid = "Недопустимые параметры команды."
)

// TypedHandlerFunc получает уже разобранные и проверенные данные.
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// EmptyHandlerFunc — команда без данных (INIT, WAIT, DEBUG, DESCEND).
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithPayload разбирает JSON в T и проверяет его через api.Validator.
// Отказ уходит игроку в лог, ход не запрашивается.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		payload, msg, err := decodePayload[T](raw)
		if err != nil {
			return Fail(msg, fmt.Errorf("%w: %w", domain.ErrInvalidAction, err))
		}
		return handler(ctx, payload)
	}
}

func decodePayload[T any](raw json.RawMessage) (T, string, error) {
	var payload T
	if len(raw) == 0 {
		return payload, msgPayloadMissing, fmt.Errorf("payload is required")
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, msgPayloadBroken, fmt.Errorf("invalid payload format: %w", err)
	}
	if v, ok := any(payload).(api.Validator); ok {
		if err := v.Validate(); err != nil {
			return payload, msgPayloadInvalid, fmt.Errorf("validation failed: %w", err)
		}
	}
	return payload, "", nil
}

// WithEmptyPayload игнорирует тело команды.
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) (Result, error) {
		return handler(ctx)
	}
}
