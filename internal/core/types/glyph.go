package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Glyph — упакованный цветной символ для терминального и веб-рендера.
//
//	[ RGB (24) | Rune (32) ]
//
// Ядро симуляции Glyph не интерпретирует, только переносит.
type Glyph uint64

const (
	bitsRune   = 32
	shiftColor = bitsRune
	maskRune   = (1 << bitsRune) - 1
	maskColor  = 0xFFFFFF
)

// MakeGlyph упаковывает символ и цвет 0xRRGGBB (старшие биты цвета отбрасываются).
func MakeGlyph(colorRGB uint32, ch rune) Glyph {
	return Glyph(uint64(colorRGB&maskColor)<<shiftColor | uint64(uint32(ch))&maskRune)
}

func (g Glyph) Rune() rune {
	return rune(uint32(uint64(g) & maskRune))
}

func (g Glyph) Color() uint32 {
	return uint32(uint64(g)>>shiftColor) & maskColor
}

// HexColor возвращает цвет в виде "#RRGGBB".
func (g Glyph) HexColor() string {
	return fmt.Sprintf("#%06X", g.Color())
}

// Dim затемняет цвет до доли factor в [0,1]; используется для забытых клеток.
func (g Glyph) Dim(factor float64) Glyph {
	if factor >= 1 {
		return g
	}
	if factor < 0 {
		factor = 0
	}
	c := g.Color()
	r := uint32(float64((c>>16)&0xFF) * factor)
	gr := uint32(float64((c>>8)&0xFF) * factor)
	b := uint32(float64(c&0xFF) * factor)
	return MakeGlyph(r<<16|gr<<8|b, g.Rune())
}

func (g Glyph) String() string {
	return fmt.Sprintf("Glyph{char=%q, color=%s}", g.Rune(), g.HexColor())
}

var namedColors = map[string]uint32{
	"white":   0xFFFFFF,
	"black":   0x000000,
	"red":     0xD04648,
	"green":   0x6DAA2C,
	"blue":    0x597DCE,
	"yellow":  0xDAD45E,
	"orange":  0xD27D2C,
	"brown":   0x854C30,
	"gray":    0x757161,
	"cyan":    0x6DC2CA,
	"purple":  0x8E4FA8,
	"remains": 0x8A1C1C,
}

// ParseColor понимает "#RRGGBB", "RRGGBB" и именованные цвета из данных.
func ParseColor(s string) (uint32, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if v, ok := namedColors[s]; ok {
		return v, nil
	}
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}
