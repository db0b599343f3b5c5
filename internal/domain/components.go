package domain

import (
	"github.com/todo-knk/xibalba/internal/core/types"
	"github.com/todo-knk/xibalba/internal/core/types/enums"
	"github.com/todo-knk/xibalba/internal/ecs"
)

// Виды компонентов. Порядок менять нельзя: номера зашиты в маски.
const (
	KindPosition ecs.Kind = iota
	KindAttributes
	KindMovement
	KindBrain
	KindTarget
	KindWander
	KindVisual
	KindItem
	KindWeapon
	KindArmor
	KindAmmunition
	KindItemEffects
	KindPlayer
	KindEnemy
	KindDecoration
	KindEntrance
	KindExit
	KindMelee
	KindRanged
	KindBody
	KindSkills
	KindInventory
)

// Movement — намерение сдвинуться в этом ходу. Либо Direction, либо Target.
type Movement struct {
	Direction enums.Direction
	Target    Position
	HasTarget bool
}

// Destination вычисляет клетку назначения.
func (m Movement) Destination(from Position) Position {
	if m.HasTarget {
		return m.Target
	}
	return from.Step(m.Direction)
}

// Target — намерение преследовать клетку. Взаимоисключимо с Wander.
type Target struct {
	Pos Position
}

// Wander — маркер случайного блуждания.
type Wander struct{}

// Visual — то, что нужно рендеру. Ядро его не читает.
type Visual struct {
	Glyph types.Glyph
	Ref   string
}

type Item struct {
	Name        string
	Description string
	Type        enums.ItemType
	Owner       types.EntityID
	Throwing    bool
}

type Weapon struct {
	Damage         int
	Skill          enums.Skill
	AmmunitionType string
}

type Armor struct {
	Defense int
}

type Ammunition struct {
	Type   string
	Damage int
}

type ItemEffects struct {
	Effects map[enums.ItemEffect]int
}

// Теги для фильтрации запросов.
type (
	Player   struct{}
	Enemy    struct{}
	Entrance struct{}
	Exit     struct{}
)

// Decoration — неподвижный объект; Blocks запрещает проход.
type Decoration struct {
	Blocks bool
}

// Melee — намерение ударить соседа.
type Melee struct {
	Target   types.EntityID
	BodyPart enums.BodyPart
}

// Ranged — намерение бросить или выстрелить предметом в клетку.
// Cell == nil означает, что цель не выбрана и действие сгорает.
type Ranged struct {
	Cell     *Position
	Item     types.EntityID
	BodyPart enums.BodyPart
	Skill    enums.Skill
}

// Body — части тела и полученный по ним урон.
type Body struct {
	Parts map[enums.BodyPart]int
}

// Has проверяет, есть ли у существа такая часть тела.
func (b *Body) Has(part enums.BodyPart) bool {
	_, ok := b.Parts[part]
	return ok
}

type Skills struct {
	Levels map[enums.Skill]int
}

// Level возвращает уровень навыка, 0 если не изучен.
func (s *Skills) Level(skill enums.Skill) int {
	if s == nil {
		return 0
	}
	return s.Levels[skill]
}

type Inventory struct {
	Items []types.EntityID
}

// Remove убирает предмет из инвентаря. false, если его там не было.
func (inv *Inventory) Remove(item types.EntityID) bool {
	for i, id := range inv.Items {
		if id == item {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (inv *Inventory) Contains(item types.EntityID) bool {
	for _, id := range inv.Items {
		if id == item {
			return true
		}
	}
	return false
}
