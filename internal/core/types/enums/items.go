package enums

import "strings"

type ItemType uint8

const (
	ItemTypeUnknown ItemType = iota
	ItemTypeWeapon
	ItemTypeArmor
	ItemTypeAmmunition
	ItemTypeConsumable
	ItemTypeMisc
)

var itemTypeToString = map[ItemType]string{
	ItemTypeWeapon:     "WEAPON",
	ItemTypeArmor:      "ARMOR",
	ItemTypeAmmunition: "AMMUNITION",
	ItemTypeConsumable: "CONSUMABLE",
	ItemTypeMisc:       "MISC",
}

var itemTypeStringToType = map[string]ItemType{
	"WEAPON":     ItemTypeWeapon,
	"ARMOR":      ItemTypeArmor,
	"AMMUNITION": ItemTypeAmmunition,
	"CONSUMABLE": ItemTypeConsumable,
	"MISC":       ItemTypeMisc,
}

func (i ItemType) String() string {
	if val, ok := itemTypeToString[i]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseItemType(s string) ItemType {
	if val, ok := itemTypeStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return ItemTypeUnknown
}

// ItemEffect — эффект, который предмет оказывает при применении или попадании.
type ItemEffect uint8

const (
	ItemEffectUnknown ItemEffect = iota
	ItemEffectRaiseHealth
	ItemEffectDealDamage
)

var itemEffectToString = map[ItemEffect]string{
	ItemEffectRaiseHealth: "RAISE_HEALTH",
	ItemEffectDealDamage:  "DEAL_DAMAGE",
}

var itemEffectStringToType = map[string]ItemEffect{
	"RAISE_HEALTH": ItemEffectRaiseHealth,
	"DEAL_DAMAGE":  ItemEffectDealDamage,
}

func (e ItemEffect) String() string {
	if val, ok := itemEffectToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseItemEffect(s string) ItemEffect {
	if val, ok := itemEffectStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return ItemEffectUnknown
}
