package types

import "testing"

func TestMakeGlyph(t *testing.T) {
	tests := []struct {
		name      string
		color     uint32
		ch        rune
		wantColor uint32
		wantRune  rune
	}{
		{"orange A", 0xFFA500, 'A', 0xFFA500, 'A'},
		{"black space", 0x000000, ' ', 0x000000, ' '},
		{"unicode rune", 0x6DAA2C, '♣', 0x6DAA2C, '♣'},
		{"color truncation", 0x12345678, 'x', 0x345678, 'x'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MakeGlyph(tt.color, tt.ch)
			if g.Color() != tt.wantColor {
				t.Errorf("Color() = %06X, want %06X", g.Color(), tt.wantColor)
			}
			if g.Rune() != tt.wantRune {
				t.Errorf("Rune() = %q, want %q", g.Rune(), tt.wantRune)
			}
		})
	}
}

func TestGlyph_Dim(t *testing.T) {
	g := MakeGlyph(0xC86400, '#')

	if got := g.Dim(1); got != g {
		t.Errorf("Dim(1) must be identity, got %v", got)
	}
	if got := g.Dim(0.5).Color(); got != 0x643200 {
		t.Errorf("Dim(0.5) = %06X, want 643200", got)
	}
	if got := g.Dim(-1).Color(); got != 0 {
		t.Errorf("Dim(-1) = %06X, want 000000", got)
	}
	if got := g.Dim(0.5).Rune(); got != '#' {
		t.Errorf("Dim must keep rune, got %q", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"#FFA500", 0xFFA500, false},
		{"ffa500", 0xFFA500, false},
		{"Remains", 0x8A1C1C, false},
		{"#FFF", 0, true},
		{"#GGGGGG", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %06X, want %06X", tt.in, got, tt.want)
			}
		})
	}
}

func TestGlyph_HexColor(t *testing.T) {
	if got := MakeGlyph(0x00FF00, '@').HexColor(); got != "#00FF00" {
		t.Errorf("HexColor() = %s", got)
	}
}
