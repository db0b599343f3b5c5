package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/pkg/api"
)

// logLines — сколько строк игрового лога показывается под картой.
const logLines = 5

var (
	styleDefault = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack).Bold(true)
	styleCombat  = tcell.StyleDefault.Foreground(tcell.NewHexColor(0xE07050)).Background(tcell.ColorBlack)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)
	styleMissile = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack).Bold(true)
)

// слои отрисовки: декорации под предметами, предметы под существами
var entityLayer = map[string]int{
	"DECORATION": 0,
	"ENTRANCE":   0,
	"EXIT":       0,
	"ITEM":       1,
	"ENEMY":      2,
	"PLAYER":     3,
}

// Renderer рисует снимок мира на tcell-экране.
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw перерисовывает весь экран. missiles — клетки летящих снарядов.
func (r *Renderer) Draw(snap api.ServerResponse, missiles []domain.Position) {
	r.screen.Clear()

	for _, t := range snap.Map {
		brightness := domain.LightFloor
		if t.IsVisible && t.Light > brightness {
			brightness = t.Light
		}
		style := styleDefault.Foreground(ParseColor(t.Color, brightness))
		r.screen.SetContent(t.X, t.Y, glyphRune(t.Symbol), nil, style)
	}

	entities := make([]api.EntityView, len(snap.Entities))
	copy(entities, snap.Entities)
	sort.SliceStable(entities, func(i, j int) bool {
		return entityLayer[entities[i].Type] < entityLayer[entities[j].Type]
	})
	for _, e := range entities {
		style := styleDefault.Foreground(ParseColor(e.Render.Color, 1))
		r.screen.SetContent(e.Pos.X, e.Pos.Y, glyphRune(e.Render.Symbol), nil, style)
	}

	for _, m := range missiles {
		r.screen.SetContent(m.X, m.Y, '*', nil, styleMissile)
	}

	height := 0
	if snap.Grid != nil {
		height = snap.Grid.Height
	}
	r.drawString(0, height, statusLine(snap), styleStatus)

	logs := snap.Logs
	if len(logs) > logLines {
		logs = logs[len(logs)-logLines:]
	}
	for i, entry := range logs {
		style := styleDefault
		switch entry.Type {
		case domain.LogCombat:
			style = styleCombat
		case domain.LogError:
			style = styleError
		}
		r.drawString(0, height+1+i, entry.Text, style)
	}

	r.screen.Show()
}

func (r *Renderer) drawString(x, y int, s string, style tcell.Style) {
	w, _ := r.screen.Size()
	for _, ch := range s {
		if x >= w {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func statusLine(snap api.ServerResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Глубина %d  Ход %d", snap.Depth, snap.Turn)

	for _, e := range snap.Entities {
		if e.ID != snap.MyEntityID || e.Stats == nil {
			continue
		}
		fmt.Fprintf(&b, "  HP %d/%d", e.Stats.HP, e.Stats.MaxHP)
		if e.Inventory != nil {
			fmt.Fprintf(&b, "  Сумка %d", len(e.Inventory.Items))
		}
		if e.Stats.IsDead {
			b.WriteString("  ВЫ ПОГИБЛИ")
		}
	}
	if snap.Debug {
		b.WriteString("  [отладка]")
	}
	return b.String()
}

func glyphRune(s string) rune {
	for _, r := range s {
		return r
	}
	return '?'
}

// ParseColor разбирает "#RRGGBB" и умножает каналы на brightness.
// Некорректная строка даёт серый.
func ParseColor(hex string, brightness float64) tcell.Color {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil || len(hex) != 7 {
		v = 0xC0C0C0
	}
	if brightness >= 1 {
		return tcell.NewHexColor(int32(v))
	}
	if brightness < 0 {
		brightness = 0
	}
	scale := func(c uint64) int32 {
		return int32(float64(c&0xFF) * brightness)
	}
	return tcell.NewRGBColor(scale(v>>16), scale(v>>8), scale(v))
}
