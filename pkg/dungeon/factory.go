package dungeon

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/todo-knk/xibalba/internal/core/types"
	"github.com/todo-knk/xibalba/internal/core/types/enums"
	"github.com/todo-knk/xibalba/internal/data"
	"github.com/todo-knk/xibalba/internal/domain"
)

// ErrUnknownDef — в справочнике нет записи с таким именем.
var ErrUnknownDef = errors.New("unknown definition")

var (
	entranceGlyph = types.MakeGlyph(0xFFFFFF, '<')
	exitGlyph     = types.MakeGlyph(0xFFFFFF, '>')
	remainsGlyph  = types.MakeGlyph(0x8A1C1C, '%')
)

// Factory собирает сущности из записей справочника.
type Factory struct {
	catalog *data.Catalog
	rng     *rand.Rand
}

func NewFactory(catalog *data.Catalog, rng *rand.Rand) *Factory {
	return &Factory{catalog: catalog, rng: rng}
}

// CreatePlayer создаёт игрока со стартовым снаряжением.
func (f *Factory) CreatePlayer(w *domain.World, pos domain.Position) (types.EntityID, error) {
	def := f.catalog.Player()
	speed := def.Attributes.Speed
	if speed <= 0 {
		speed = domain.PlayerSpeed
	}

	id := w.Registry.Create(enums.EntityTypePlayer)
	w.Players.Add(id, domain.Player{})
	if err := f.assembleCreature(w, id, def, pos, speed); err != nil {
		w.Registry.Destroy(id)
		return types.NilEntityID, err
	}
	return id, nil
}

// CreateEnemy создаёт монстра по имени записи.
func (f *Factory) CreateEnemy(w *domain.World, name string, pos domain.Position) (types.EntityID, error) {
	def, ok := f.catalog.Enemy(name)
	if !ok {
		return types.NilEntityID, fmt.Errorf("enemy %q: %w", name, ErrUnknownDef)
	}

	id := w.Registry.Create(enums.EntityTypeEnemy)
	w.Enemies.Add(id, domain.Enemy{})

	personalities := make([]enums.Personality, 0, len(def.Brain.Personalities))
	for _, p := range def.Brain.Personalities {
		personalities = append(personalities, enums.ParsePersonality(p))
	}
	w.Brains.Add(id, domain.Brain{Personalities: personalities})

	if err := f.assembleCreature(w, id, def, pos, def.Attributes.Speed); err != nil {
		w.Registry.Destroy(id)
		return types.NilEntityID, err
	}
	return id, nil
}

func (f *Factory) assembleCreature(w *domain.World, id types.EntityID, def data.EnemyDef, pos domain.Position, speed int) error {
	glyph, err := def.Visual.Glyph()
	if err != nil {
		return err
	}

	attrs := domain.NewAttributes(def.Name, speed, def.Attributes.Vision, def.Attributes.Health,
		def.Attributes.Toughness, def.Attributes.Strength)
	attrs.Description = def.Description
	if attrs.Vision <= 0 {
		attrs.Vision = domain.DefaultVisionRadius
	}

	body := domain.Body{Parts: make(map[enums.BodyPart]int, len(def.BodyParts))}
	for _, p := range def.BodyParts {
		body.Parts[enums.ParseBodyPart(p)] = 0
	}
	skills := domain.Skills{Levels: make(map[enums.Skill]int, len(def.Skills))}
	for s, lvl := range def.Skills {
		skills.Levels[enums.ParseSkill(s)] = lvl
	}

	w.Positions.Add(id, pos)
	w.Attributes.Add(id, attrs)
	w.Bodies.Add(id, body)
	w.Skills.Add(id, skills)
	w.Inventories.Add(id, domain.Inventory{})
	w.Visuals.Add(id, domain.Visual{Glyph: glyph, Ref: def.Name})

	for _, name := range def.Inventory {
		if _, err := f.GiveItem(w, id, name); err != nil {
			return err
		}
	}
	return nil
}

// CreateItem кладёт предмет на землю.
func (f *Factory) CreateItem(w *domain.World, name string, pos domain.Position) (types.EntityID, error) {
	id, err := f.newItem(w, name)
	if err != nil {
		return types.NilEntityID, err
	}
	w.Positions.Add(id, pos)
	return id, nil
}

// GiveItem создаёт предмет сразу в инвентаре владельца, без позиции.
func (f *Factory) GiveItem(w *domain.World, owner types.EntityID, name string) (types.EntityID, error) {
	inv, ok := w.Inventories.Get(owner)
	if !ok {
		return types.NilEntityID, fmt.Errorf("give %q to %s: %w", name, owner, domain.ErrEntityNotFound)
	}
	id, err := f.newItem(w, name)
	if err != nil {
		return types.NilEntityID, err
	}
	it, _ := w.Items.Get(id)
	it.Owner = owner
	inv.Items = append(inv.Items, id)
	return id, nil
}

func (f *Factory) newItem(w *domain.World, name string) (types.EntityID, error) {
	def, ok := f.catalog.Item(name)
	if !ok {
		return types.NilEntityID, fmt.Errorf("item %q: %w", name, ErrUnknownDef)
	}
	glyph, err := def.Visual.Glyph()
	if err != nil {
		return types.NilEntityID, err
	}

	itemType := enums.ParseItemType(def.Type)
	id := w.Registry.Create(enums.EntityTypeItem)
	w.Items.Add(id, domain.Item{Name: def.Name, Description: def.Description, Type: itemType})
	w.Visuals.Add(id, domain.Visual{Glyph: glyph, Ref: def.Name})

	switch itemType {
	case enums.ItemTypeWeapon:
		w.Weapons.Add(id, domain.Weapon{
			Damage:         def.Attributes.Damage,
			Skill:          enums.ParseSkill(def.Attributes.Skill),
			AmmunitionType: def.Attributes.Ammunition,
		})
	case enums.ItemTypeArmor:
		w.Armors.Add(id, domain.Armor{Defense: def.Attributes.Defense})
	case enums.ItemTypeAmmunition:
		w.Ammunition.Add(id, domain.Ammunition{Type: def.Attributes.Ammunition, Damage: def.Attributes.Damage})
	}

	if len(def.Effects) > 0 {
		effects := make(map[enums.ItemEffect]int, len(def.Effects))
		for k, v := range def.Effects {
			effects[enums.ParseItemEffect(k)] = v
		}
		w.ItemEffects.Add(id, domain.ItemEffects{Effects: effects})
	}
	return id, nil
}

// CreateEntrance ставит вход на случайную открытую клетку.
func (f *Factory) CreateEntrance(w *domain.World) (types.EntityID, error) {
	pos, err := f.findStairsCell(w)
	if err != nil {
		return types.NilEntityID, fmt.Errorf("entrance: %w", err)
	}
	return PlaceEntrance(w, pos), nil
}

// CreateExit ставит выход на случайную открытую клетку.
func (f *Factory) CreateExit(w *domain.World) (types.EntityID, error) {
	pos, err := f.findStairsCell(w)
	if err != nil {
		return types.NilEntityID, fmt.Errorf("exit: %w", err)
	}
	return PlaceExit(w, pos), nil
}

// findStairsCell — проходимая свободная клетка не в тупике у стены.
func (f *Factory) findStairsCell(w *domain.World) (domain.Position, error) {
	return w.Map.FindOpenCell(f.rng, domain.MaxPlacementAttempts, func(p domain.Position) bool {
		return w.Map.WallNeighbourCount(p) < domain.MaxWallNeighbours &&
			!w.IsOccupied(p) && !hasStairs(w, p)
	})
}

func hasStairs(w *domain.World, p domain.Position) bool {
	for _, id := range w.EntitiesAt(p) {
		if w.Entrances.Has(id) || w.Exits.Has(id) {
			return true
		}
	}
	return false
}

func PlaceEntrance(w *domain.World, pos domain.Position) types.EntityID {
	id := w.Registry.Create(enums.EntityTypeEntrance)
	w.Entrances.Add(id, domain.Entrance{})
	w.Positions.Add(id, pos)
	w.Visuals.Add(id, domain.Visual{Glyph: entranceGlyph, Ref: "entrance"})
	return id
}

func PlaceExit(w *domain.World, pos domain.Position) types.EntityID {
	id := w.Registry.Create(enums.EntityTypeExit)
	w.Exits.Add(id, domain.Exit{})
	w.Positions.Add(id, pos)
	w.Visuals.Add(id, domain.Visual{Glyph: exitGlyph, Ref: "exit"})
	return id
}

// CreateRemains оставляет на клетке останки. Проход они не загораживают.
func CreateRemains(w *domain.World, pos domain.Position) (types.EntityID, error) {
	if !w.Map.InBounds(pos) {
		return types.NilEntityID, fmt.Errorf("remains at %d,%d: %w", pos.X, pos.Y, domain.ErrOutOfBounds)
	}
	id := w.Registry.Create(enums.EntityTypeDecoration)
	w.Decorations.Add(id, domain.Decoration{Blocks: false})
	w.Positions.Add(id, pos)
	w.Visuals.Add(id, domain.Visual{Glyph: remainsGlyph, Ref: "remains"})
	return id, nil
}
