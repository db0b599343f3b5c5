package domain

import (
	"math/rand"

	"github.com/todo-knk/xibalba/internal/core/types"
	"github.com/todo-knk/xibalba/internal/ecs"
)

// World — контекст уровня: реестр сущностей, хранилища компонентов, карта
// и очередь отложенных эффектов. Создаётся при загрузке уровня и передаётся
// каждой системе явно. Не потокобезопасен.
type World struct {
	Registry *ecs.Registry

	Positions   *ecs.Store[Position]
	Attributes  *ecs.Store[Attributes]
	Movements   *ecs.Store[Movement]
	Brains      *ecs.Store[Brain]
	Targets     *ecs.Store[Target]
	Wanders     *ecs.Store[Wander]
	Visuals     *ecs.Store[Visual]
	Items       *ecs.Store[Item]
	Weapons     *ecs.Store[Weapon]
	Armors      *ecs.Store[Armor]
	Ammunition  *ecs.Store[Ammunition]
	ItemEffects *ecs.Store[ItemEffects]
	Players     *ecs.Store[Player]
	Enemies     *ecs.Store[Enemy]
	Decorations *ecs.Store[Decoration]
	Entrances   *ecs.Store[Entrance]
	Exits       *ecs.Store[Exit]
	Melees      *ecs.Store[Melee]
	Ranged      *ecs.Store[Ranged]
	Bodies      *ecs.Store[Body]
	Skills      *ecs.Store[Skills]
	Inventories *ecs.Store[Inventory]

	Map     *Map
	Effects *EffectQueue
	Rng     *rand.Rand
	Log     *MessageLog

	// Light — последняя карта освещённости от игрока, индекс [x][y].
	Light [][]float64

	Depth    int
	Turn     int
	Debug    bool
	GameOver bool
}

// NewWorld собирает пустой мир поверх готовой карты.
func NewWorld(m *Map, rng *rand.Rand, animator Animator) *World {
	r := ecs.NewRegistry()
	return &World{
		Registry:    r,
		Positions:   ecs.NewStore[Position](r, KindPosition),
		Attributes:  ecs.NewStore[Attributes](r, KindAttributes),
		Movements:   ecs.NewStore[Movement](r, KindMovement),
		Brains:      ecs.NewStore[Brain](r, KindBrain),
		Targets:     ecs.NewStore[Target](r, KindTarget),
		Wanders:     ecs.NewStore[Wander](r, KindWander),
		Visuals:     ecs.NewStore[Visual](r, KindVisual),
		Items:       ecs.NewStore[Item](r, KindItem),
		Weapons:     ecs.NewStore[Weapon](r, KindWeapon),
		Armors:      ecs.NewStore[Armor](r, KindArmor),
		Ammunition:  ecs.NewStore[Ammunition](r, KindAmmunition),
		ItemEffects: ecs.NewStore[ItemEffects](r, KindItemEffects),
		Players:     ecs.NewStore[Player](r, KindPlayer),
		Enemies:     ecs.NewStore[Enemy](r, KindEnemy),
		Decorations: ecs.NewStore[Decoration](r, KindDecoration),
		Entrances:   ecs.NewStore[Entrance](r, KindEntrance),
		Exits:       ecs.NewStore[Exit](r, KindExit),
		Melees:      ecs.NewStore[Melee](r, KindMelee),
		Ranged:      ecs.NewStore[Ranged](r, KindRanged),
		Bodies:      ecs.NewStore[Body](r, KindBody),
		Skills:      ecs.NewStore[Skills](r, KindSkills),
		Inventories: ecs.NewStore[Inventory](r, KindInventory),
		Map:         m,
		Effects:     NewEffectQueue(animator),
		Rng:         rng,
		Log:         NewMessageLog(200),
		Depth:       1,
	}
}

// Player возвращает первую сущность с тегом Player.
func (w *World) Player() (types.EntityID, bool) {
	ids := w.Players.Entities()
	if len(ids) == 0 {
		return types.NilEntityID, false
	}
	return ids[0], true
}

func (w *World) PlayerPosition() (Position, bool) {
	id, ok := w.Player()
	if !ok {
		return Position{}, false
	}
	p, ok := w.Positions.Get(id)
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// EntitiesAt — сущности на клетке в порядке создания.
func (w *World) EntitiesAt(p Position) []types.EntityID {
	var out []types.EntityID
	for _, id := range w.Registry.Query(ecs.MaskOf(KindPosition)) {
		if pos, _ := w.Positions.Get(id); *pos == p {
			out = append(out, id)
		}
	}
	return out
}

// ActorAt — живой актёр (есть Attributes) на клетке.
func (w *World) ActorAt(p Position) (types.EntityID, bool) {
	for _, id := range w.EntitiesAt(p) {
		if a, ok := w.Attributes.Get(id); ok && !a.IsDead() {
			return id, true
		}
	}
	return types.NilEntityID, false
}

// IsOccupied — на клетке стоит актёр или блокирующая декорация.
func (w *World) IsOccupied(p Position) bool {
	for _, id := range w.EntitiesAt(p) {
		if a, ok := w.Attributes.Get(id); ok && !a.IsDead() {
			return true
		}
		if d, ok := w.Decorations.Get(id); ok && d.Blocks {
			return true
		}
	}
	return false
}

// IsWalkable — рельеф проходим и клетка не занята.
func (w *World) IsWalkable(p Position) bool {
	return !w.Map.IsBlocked(p) && !w.IsOccupied(p)
}

// IsHostile — враждебны ли два актёра друг другу (игрок против врагов).
func (w *World) IsHostile(a, b types.EntityID) bool {
	return (w.Players.Has(a) && w.Enemies.Has(b)) || (w.Enemies.Has(a) && w.Players.Has(b))
}

// Name — имя сущности для логов.
func (w *World) Name(id types.EntityID) string {
	if a, ok := w.Attributes.Get(id); ok {
		return a.Name
	}
	if it, ok := w.Items.Get(id); ok {
		return it.Name
	}
	return id.String()
}

// Logf пишет в игровой лог с номером текущего хода.
func (w *World) Logf(kind, format string, args ...any) {
	w.Log.Add(w.Turn, kind, format, args...)
}
