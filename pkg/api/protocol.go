package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse — полный снимок того, что видит игрок.
// Отправляется после каждого исполненного хода и по запросу INIT.
type ServerResponse struct {
	// Type тип сообщения: INIT, UPDATE, GAME_OVER или ERROR.
	Type string `json:"type"`

	// Turn номер последнего исполненного хода.
	Turn int `json:"turn"`

	// Depth глубина текущего уровня, начиная с 1.
	Depth int `json:"depth"`

	// MyEntityID ID сущности игрока.
	MyEntityID string `json:"myEntityId,omitempty"`

	// Debug true, если включён режим отладки (видна вся карта).
	Debug bool `json:"debug,omitempty"`

	Grid *GridMeta `json:"grid,omitempty"`

	// Map открытые клетки. Скрытые не отправляются.
	Map []TileView `json:"map,omitempty"`

	// Entities сущности на освещённых клетках (в режиме отладки все).
	Entities []EntityView `json:"entities,omitempty"`

	// Logs записи игрового лога, начиная с прошлого снимка.
	Logs []LogEntry `json:"logs,omitempty"`

	// Error текст ошибки для Type == ERROR.
	Error string `json:"error,omitempty"`
}

// GridMeta размеры карты.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView — одна открытая клетка карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	Symbol string `json:"symbol"`
	Color  string `json:"color"`

	IsWall bool `json:"isWall"`

	// Light освещённость 0..1 от последнего пересчёта.
	Light float64 `json:"light"`

	// IsVisible клетка освещена сейчас.
	IsVisible bool `json:"isVisible"`

	// IsForgotten клетка была видна раньше, но сейчас в темноте.
	IsForgotten bool `json:"isForgotten,omitempty"`
}

// EntityView — видимая сущность.
type EntityView struct {
	ID   string `json:"id"`
	Type string `json:"type"` // PLAYER, ENEMY, ITEM, DECORATION, ENTRANCE, EXIT
	Name string `json:"name"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	Render struct {
		Symbol string `json:"symbol"`
		Color  string `json:"color"`
	} `json:"render"`

	Stats *StatsView `json:"stats,omitempty"`

	// Inventory только для игрока.
	Inventory *InventoryView `json:"inventory,omitempty"`
}

type StatsView struct {
	HP        int  `json:"hp"`
	MaxHP     int  `json:"maxHp"`
	Energy    int  `json:"energy,omitempty"`
	Speed     int  `json:"speed,omitempty"`
	Vision    int  `json:"vision,omitempty"`
	Toughness int  `json:"toughness,omitempty"`
	IsDead    bool `json:"isDead"`
}

// LogEntry запись игрового лога.
type LogEntry struct {
	Turn int    `json:"turn"`
	Text string `json:"text"`
	Type string `json:"type"` // INFO, COMBAT, ERROR
}

type ItemView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Color    string `json:"color"`
	Category string `json:"category"`
	Damage   int    `json:"damage,omitempty"`
	Defense  int    `json:"defense,omitempty"`
	Skill    string `json:"skill,omitempty"`
}

type InventoryView struct {
	Items []ItemView `json:"items"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand корневой объект всех сообщений клиента.
type ClientCommand struct {
	// Action название действия: MOVE, WAIT, THROW, FIRE, DEBUG, DESCEND, INIT.
	// В режиме отладки ещё TELEPORT и SPAWN.
	Action string `json:"action"`

	// Payload данные действия. Структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// DirectionPayload для MOVE.
type DirectionPayload struct {
	Dx int `json:"dx"` // -1, 0, 1
	Dy int `json:"dy"` // -1, 0, 1
}

// TargetPayload для THROW и FIRE. Пустой ItemID — первый подходящий предмет.
type TargetPayload struct {
	ItemID   string `json:"itemId,omitempty"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	BodyPart string `json:"bodyPart,omitempty"`
}

// TeleportPayload для TELEPORT: { "x": 10, "y": 10 }
type TeleportPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SpawnPayload для SPAWN: имя существа или предмета из каталога.
type SpawnPayload struct {
	Name string `json:"name"`
}
