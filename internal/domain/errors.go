package domain

import "errors"

var (
	// ErrExhaustedAttempts — случайный поиск клетки не уложился в лимит попыток.
	ErrExhaustedAttempts = errors.New("exhausted placement attempts")

	// ErrInvalidAction — действие невозможно: не хватает энергии или цель недопустима.
	ErrInvalidAction = errors.New("invalid action")

	// ErrOutOfBounds — координата вне карты. При загрузке уровня фатально.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrCorruptMap — данные генератора не сходятся по размерам или значениям.
	ErrCorruptMap = errors.New("corrupt map data")

	ErrEntityNotFound = errors.New("entity not found")
)
