package enums

// Terrain — тип клетки карты. Влияет только на отображение и сопротивление свету.
type Terrain uint8

const (
	TerrainFloor Terrain = iota
	TerrainWall
	TerrainFungus
)

var terrainToString = map[Terrain]string{
	TerrainFloor:  "FLOOR",
	TerrainWall:   "WALL",
	TerrainFungus: "FUNGUS",
}

func (t Terrain) String() string {
	if val, ok := terrainToString[t]; ok {
		return val
	}
	return "UNKNOWN"
}

// EffectKind — что сделать с брошенным предметом по завершении анимации.
type EffectKind uint8

const (
	EffectDrop EffectKind = iota
	EffectDestroy
)

func (k EffectKind) String() string {
	if k == EffectDestroy {
		return "DESTROY"
	}
	return "DROP"
}
