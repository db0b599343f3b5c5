package enums

import "strings"

// Direction — одно из восьми направлений движения по сетке.
type Direction uint8

const (
	DirNone Direction = iota
	DirN
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
)

// AllDirections перечисляет направления в фиксированном порядке (по часовой от севера).
var AllDirections = [8]Direction{DirN, DirNE, DirE, DirSE, DirS, DirSW, DirW, DirNW}

// Ось Y направлена вниз: север — это y-1.
var directionDeltas = map[Direction][2]int{
	DirN:  {0, -1},
	DirNE: {1, -1},
	DirE:  {1, 0},
	DirSE: {1, 1},
	DirS:  {0, 1},
	DirSW: {-1, 1},
	DirW:  {-1, 0},
	DirNW: {-1, -1},
}

var directionToString = map[Direction]string{
	DirN:  "N",
	DirNE: "NE",
	DirE:  "E",
	DirSE: "SE",
	DirS:  "S",
	DirSW: "SW",
	DirW:  "W",
	DirNW: "NW",
}

var directionStringToType = map[string]Direction{
	"N":  DirN,
	"NE": DirNE,
	"E":  DirE,
	"SE": DirSE,
	"S":  DirS,
	"SW": DirSW,
	"W":  DirW,
	"NW": DirNW,
}

// Delta возвращает смещение (dx, dy). Для DirNone — (0, 0).
func (d Direction) Delta() (int, int) {
	v := directionDeltas[d]
	return v[0], v[1]
}

func (d Direction) String() string {
	if val, ok := directionToString[d]; ok {
		return val
	}
	return "NONE"
}

// ParseDirection понимает "N", "ne", "Sw" и т.д.
func ParseDirection(s string) Direction {
	if val, ok := directionStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return DirNone
}

// DirectionFromDelta возвращает направление по знакам смещения.
func DirectionFromDelta(dx, dy int) Direction {
	sx, sy := sign(dx), sign(dy)
	for d, v := range directionDeltas {
		if v[0] == sx && v[1] == sy {
			return d
		}
	}
	return DirNone
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
