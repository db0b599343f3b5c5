package enums

import "strings"

type EntityType uint8

const (
	EntityTypeUnknown EntityType = iota
	EntityTypePlayer
	EntityTypeEnemy
	EntityTypeItem
	EntityTypeEntrance
	EntityTypeExit
	EntityTypeDecoration
)

var entityTypeToString = map[EntityType]string{
	EntityTypePlayer:     "PLAYER",
	EntityTypeEnemy:      "ENEMY",
	EntityTypeItem:       "ITEM",
	EntityTypeEntrance:   "ENTRANCE",
	EntityTypeExit:       "EXIT",
	EntityTypeDecoration: "DECORATION",
}

var entityTypeStringToType = map[string]EntityType{
	"PLAYER":     EntityTypePlayer,
	"ENEMY":      EntityTypeEnemy,
	"ITEM":       EntityTypeItem,
	"ENTRANCE":   EntityTypeEntrance,
	"EXIT":       EntityTypeExit,
	"DECORATION": EntityTypeDecoration,
}

// String возвращает строковое представление (для логов и DTO)
func (e EntityType) String() string {
	if val, ok := entityTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseEntityType конвертирует строку в Enum
func ParseEntityType(s string) EntityType {
	if val, ok := entityTypeStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return EntityTypeUnknown
}
