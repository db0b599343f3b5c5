package api

import (
	"errors"
	"strconv"
	"strings"
)

// Validator — интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p DirectionPayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	return nil
}

func (p TargetPayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("target cell cannot be negative")
	}
	if p.ItemID != "" {
		if _, err := strconv.ParseUint(p.ItemID, 10, 64); err != nil {
			return errors.New("itemId must be a decimal entity id")
		}
	}
	if p.BodyPart != "" && strings.TrimSpace(p.BodyPart) == "" {
		return errors.New("bodyPart cannot be blank")
	}
	return nil
}

func (p TeleportPayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("teleport cell cannot be negative")
	}
	return nil
}

func (p SpawnPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}
