package engine

import (
	"strconv"

	"github.com/todo-knk/xibalba/internal/core/types"
	"github.com/todo-knk/xibalba/internal/core/types/enums"
	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/ecs"
	"github.com/todo-knk/xibalba/internal/systems"
	"github.com/todo-knk/xibalba/pkg/api"
)

// Типы снимков.
const (
	ResponseInit     = "INIT"
	ResponseUpdate   = "UPDATE"
	ResponseGameOver = "GAME_OVER"
	ResponseError    = "ERROR"
)

var terrainGlyphs = map[enums.Terrain]types.Glyph{
	enums.TerrainFloor:  types.MakeGlyph(0x8C7B6B, '.'),
	enums.TerrainWall:   types.MakeGlyph(0x5A4A3A, '#'),
	enums.TerrainFungus: types.MakeGlyph(0x6FBF73, '"'),
}

// BuildSnapshot собирает то, что видит игрок. Мир не меняется.
func BuildSnapshot(w *domain.World, player types.EntityID, logs []domain.LogEntry) api.ServerResponse {
	resp := api.ServerResponse{
		Type:  ResponseUpdate,
		Turn:  w.Turn,
		Depth: w.Depth,
		Debug: w.Debug,
		Grid:  &api.GridMeta{Width: w.Map.Width, Height: w.Map.Height},
	}
	if !player.IsNil() {
		resp.MyEntityID = formatID(player)
	}
	if w.GameOver {
		resp.Type = ResponseGameOver
	}

	// 1. Карта: только открытые клетки (в отладке все)
	for y := 0; y < w.Map.Height; y++ {
		for x := 0; x < w.Map.Width; x++ {
			p := domain.Position{X: x, Y: y}
			cell, _ := w.Map.Cell(p)
			if cell.Hidden && !w.Debug {
				continue
			}
			light := LightAt(w, p)
			g := terrainGlyphs[cell.Terrain]
			resp.Map = append(resp.Map, api.TileView{
				X:           x,
				Y:           y,
				Symbol:      string(g.Rune()),
				Color:       g.HexColor(),
				IsWall:      !cell.Walkable,
				Light:       light,
				IsVisible:   light > 0 || w.Debug,
				IsForgotten: cell.Forgotten && light == 0,
			})
		}
	}

	// 2. Сущности на освещённых клетках
	for _, id := range w.Registry.Query(ecs.MaskOf(domain.KindPosition)) {
		pos, _ := w.Positions.Get(id)
		if id != player && !w.Debug && !systems.IsLit(w, *pos) {
			continue
		}
		resp.Entities = append(resp.Entities, entityView(w, id, id == player))
	}

	for _, e := range logs {
		resp.Logs = append(resp.Logs, api.LogEntry{Turn: e.Turn, Text: e.Text, Type: e.Type})
	}
	return resp
}

func entityView(w *domain.World, id types.EntityID, isMe bool) api.EntityView {
	view := api.EntityView{
		ID:   formatID(id),
		Type: enums.EntityType(id.Type()).String(),
		Name: w.Name(id),
	}
	pos, _ := w.Positions.Get(id)
	view.Pos.X = pos.X
	view.Pos.Y = pos.Y

	g := types.MakeGlyph(0xFFFFFF, '?')
	if v, ok := w.Visuals.Get(id); ok {
		g = v.Glyph
	}
	view.Render.Symbol = string(g.Rune())
	view.Render.Color = g.HexColor()

	if a, ok := w.Attributes.Get(id); ok {
		view.Stats = &api.StatsView{HP: a.Health, MaxHP: a.MaxHealth, IsDead: a.IsDead()}
		// Владелец видит всё
		if isMe {
			view.Stats.Energy = a.Energy
			view.Stats.Speed = a.Speed
			view.Stats.Vision = a.Vision
			view.Stats.Toughness = a.Toughness
		}
	}

	if isMe {
		if inv, ok := w.Inventories.Get(id); ok {
			view.Inventory = &api.InventoryView{Items: make([]api.ItemView, 0, len(inv.Items))}
			for _, item := range inv.Items {
				view.Inventory.Items = append(view.Inventory.Items, itemView(w, item))
			}
		}
	}
	return view
}

func itemView(w *domain.World, id types.EntityID) api.ItemView {
	view := api.ItemView{ID: formatID(id), Name: w.Name(id)}
	if it, ok := w.Items.Get(id); ok {
		view.Category = it.Type.String()
	}
	if v, ok := w.Visuals.Get(id); ok {
		view.Symbol = string(v.Glyph.Rune())
		view.Color = v.Glyph.HexColor()
	}
	if wpn, ok := w.Weapons.Get(id); ok {
		view.Damage = wpn.Damage
		view.Skill = wpn.Skill.String()
	}
	if ammo, ok := w.Ammunition.Get(id); ok {
		view.Damage = ammo.Damage
	}
	if ar, ok := w.Armors.Get(id); ok {
		view.Defense = ar.Defense
	}
	return view
}

// LightAt — освещённость клетки; вне карты 0.
func LightAt(w *domain.World, p domain.Position) float64 {
	if p.X < 0 || p.X >= len(w.Light) || p.Y < 0 || p.Y >= len(w.Light[p.X]) {
		return 0
	}
	return w.Light[p.X][p.Y]
}

// formatID — десятичное представление, как в JSON.
func formatID(id types.EntityID) string {
	return strconv.FormatUint(uint64(id), 10)
}
