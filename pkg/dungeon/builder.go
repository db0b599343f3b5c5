package dungeon

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/core/types"
	"github.com/todo-knk/xibalba/internal/core/types/enums"
	"github.com/todo-knk/xibalba/internal/data"
	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/pkg/logger"
)

// Carry — то, что игрок уносит с собой на следующий уровень.
type Carry struct {
	Attributes domain.Attributes
	Skills     domain.Skills
	Body       domain.Body
	Items      []string
}

// ExtractCarry снимает с игрока переносимое состояние.
func ExtractCarry(w *domain.World) (*Carry, bool) {
	id, ok := w.Player()
	if !ok {
		return nil, false
	}
	attrs, ok := w.Attributes.Get(id)
	if !ok {
		return nil, false
	}

	c := &Carry{Attributes: *attrs}
	if s, ok := w.Skills.Get(id); ok {
		c.Skills.Levels = make(map[enums.Skill]int, len(s.Levels))
		for k, v := range s.Levels {
			c.Skills.Levels[k] = v
		}
	}
	if b, ok := w.Bodies.Get(id); ok {
		c.Body.Parts = make(map[enums.BodyPart]int, len(b.Parts))
		for k, v := range b.Parts {
			c.Body.Parts[k] = v
		}
	}
	if inv, ok := w.Inventories.Get(id); ok {
		for _, item := range inv.Items {
			if it, ok := w.Items.Get(item); ok {
				c.Items = append(c.Items, it.Name)
			}
		}
	}
	return c, true
}

// LevelBuilder предоставляет fluent API для создания уровней
type LevelBuilder struct {
	depth     int
	width     int
	height    int
	mobs      int
	items     int
	generator Generator
	catalog   *data.Catalog
	animator  domain.Animator
	carry     *Carry
	rng       *rand.Rand
}

// NewLevel создает новый builder для уровня
func NewLevel(depth int, rng *rand.Rand) *LevelBuilder {
	return &LevelBuilder{
		depth:     depth,
		width:     MapWidth,
		height:    MapHeight,
		mobs:      MobCount,
		items:     MobCount / 2,
		generator: NewCaveGenerator(),
		rng:       rng,
	}
}

// WithSize устанавливает размер карты
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.width = width
	b.height = height
	return b
}

func (b *LevelBuilder) WithGenerator(g Generator) *LevelBuilder {
	b.generator = g
	return b
}

func (b *LevelBuilder) WithCatalog(c *data.Catalog) *LevelBuilder {
	b.catalog = c
	return b
}

func (b *LevelBuilder) WithAnimator(a domain.Animator) *LevelBuilder {
	b.animator = a
	return b
}

// WithMobs задаёт число монстров; больше, чем стартов у генератора, не будет.
func (b *LevelBuilder) WithMobs(n int) *LevelBuilder {
	b.mobs = n
	return b
}

func (b *LevelBuilder) WithItems(n int) *LevelBuilder {
	b.items = n
	return b
}

// WithPlayer переносит состояние игрока с прошлого уровня.
func (b *LevelBuilder) WithPlayer(c *Carry) *LevelBuilder {
	b.carry = c
	return b
}

// Build генерирует карту и населяет её. Ошибки карты фатальны для загрузки уровня.
func (b *LevelBuilder) Build() (*domain.World, error) {
	log := logger.Log.WithFields(logrus.Fields{"component": "level_builder", "depth": b.depth})

	if b.catalog == nil {
		c, err := data.DefaultCatalog()
		if err != nil {
			return nil, err
		}
		b.catalog = c
	}

	layout, err := b.generator.Generate(b.width, b.height, b.rng)
	if err != nil {
		return nil, fmt.Errorf("generate level %d: %w", b.depth, err)
	}
	if err := layout.Check(); err != nil {
		return nil, fmt.Errorf("generate level %d: %w", b.depth, err)
	}

	m, err := domain.FromLayout(layout.Walkable, layout.Resistance)
	if err != nil {
		return nil, fmt.Errorf("load level %d: %w", b.depth, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("load level %d: %w", b.depth, err)
	}

	w := domain.NewWorld(m, b.rng, b.animator)
	w.Depth = b.depth
	f := NewFactory(b.catalog, b.rng)

	if _, err := b.placePlayer(w, f, layout.PlayerStart); err != nil {
		return nil, err
	}

	// Вход под ногами игрока, выход где-то в пещере.
	PlaceEntrance(w, layout.PlayerStart)
	if _, err := f.CreateExit(w); err != nil {
		if !errors.Is(err, domain.ErrExhaustedAttempts) {
			return nil, err
		}
		pos, ok := b.fallbackCell(w, layout)
		if !ok {
			return nil, fmt.Errorf("load level %d: %w", b.depth, err)
		}
		log.WithError(err).Warn("exit placement fell back to candidate list")
		PlaceExit(w, pos)
	}

	names := b.catalog.EnemyNames()
	for i, pos := range layout.MobStarts {
		if i >= b.mobs || len(names) == 0 {
			break
		}
		if w.IsOccupied(pos) {
			continue
		}
		name := names[b.rng.Intn(len(names))]
		if _, err := f.CreateEnemy(w, name, pos); err != nil {
			return nil, err
		}
	}

	itemNames := b.catalog.ItemNames()
	for i := 0; i < b.items && len(itemNames) > 0; i++ {
		pos, err := w.Map.FindOpenCell(b.rng, domain.MaxPlacementAttempts, func(p domain.Position) bool {
			return !w.IsOccupied(p)
		})
		if err != nil {
			log.WithError(err).Warn("item placement skipped")
			break
		}
		if _, err := f.CreateItem(w, itemNames[b.rng.Intn(len(itemNames))], pos); err != nil {
			return nil, err
		}
	}

	log.WithFields(logrus.Fields{
		"walkable": m.CountWalkable(),
		"entities": w.Registry.Len(),
	}).Info("level built")
	return w, nil
}

func (b *LevelBuilder) placePlayer(w *domain.World, f *Factory, pos domain.Position) (types.EntityID, error) {
	id, err := f.CreatePlayer(w, pos)
	if err != nil {
		return types.NilEntityID, err
	}
	if b.carry == nil {
		return id, nil
	}

	attrs, _ := w.Attributes.Get(id)
	*attrs = b.carry.Attributes
	if s, ok := w.Skills.Get(id); ok && b.carry.Skills.Levels != nil {
		*s = b.carry.Skills
	}
	if body, ok := w.Bodies.Get(id); ok && b.carry.Body.Parts != nil {
		*body = b.carry.Body
	}

	// стартовый набор заменяется унесённым
	inv, _ := w.Inventories.Get(id)
	for _, item := range append([]types.EntityID(nil), inv.Items...) {
		w.Registry.Destroy(item)
	}
	inv.Items = nil
	for _, name := range b.carry.Items {
		if _, err := f.GiveItem(w, id, name); err != nil {
			return types.NilEntityID, err
		}
	}
	return id, nil
}

// fallbackCell — первая свободная клетка из списка генератора.
func (b *LevelBuilder) fallbackCell(w *domain.World, layout *Layout) (domain.Position, bool) {
	for _, p := range layout.FloorCells() {
		if p != layout.PlayerStart && !w.IsOccupied(p) && !hasStairs(w, p) {
			return p, true
		}
	}
	return domain.Position{}, false
}
