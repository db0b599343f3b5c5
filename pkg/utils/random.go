package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// idBytes — 8 байт дают 16 hex-символов.
const idBytes = 8

// NewID возвращает случайный идентификатор сессии.
func NewID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateID — NewID для мест, где отказ генератора фатален.
func GenerateID() string {
	id, err := NewID()
	if err != nil {
		panic(err)
	}
	return id
}
