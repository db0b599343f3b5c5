package engine

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/systems"
	"github.com/todo-knk/xibalba/pkg/dungeon"
)

// EnvSeed переопределяет зерно из файла конфигурации.
const EnvSeed = "XIBALBA_SEED"

// Config хранит параметры запуска движка
type Config struct {
	// Seed — мастер-зерно. Уровень N получает зерно Seed + N.
	Seed int64 `yaml:"seed"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Mobs   int `yaml:"mobs"`
	Items  int `yaml:"items"`

	// Generator: cave, rooms или arena.
	Generator string `yaml:"generator"`

	// DataDir — каталог с YAML-описаниями поверх встроенных.
	DataDir string `yaml:"data_dir"`
	Watch   bool   `yaml:"watch"`

	ActivationThreshold int  `yaml:"activation_threshold"`
	MoveCost            int  `yaml:"move_cost"`
	MeleeCost           int  `yaml:"melee_cost"`
	RangedCost          int  `yaml:"ranged_cost"`
	RequireLineOfSight  bool `yaml:"require_line_of_sight"`

	// Falloff: linear или inverse.
	Falloff string `yaml:"falloff"`

	// ThrowRange — дальность броска; 0 значит радиус зрения.
	ThrowRange float64 `yaml:"throw_range"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:                time.Now().UnixNano(),
		Width:               dungeon.MapWidth,
		Height:              dungeon.MapHeight,
		Mobs:                dungeon.MobCount,
		Items:               dungeon.MobCount / 2,
		Generator:           "cave",
		ActivationThreshold: domain.ActivationThreshold,
		MoveCost:            domain.CostMove,
		MeleeCost:           domain.CostMelee,
		RangedCost:          domain.CostRanged,
		Falloff:             "linear",
	}
}

// LoadConfig читает YAML поверх значений по умолчанию и применяет окружение.
// Пустой path — только окружение.
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	v, ok := os.LookupEnv(EnvSeed)
	if !ok || v == "" {
		return nil
	}
	seed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("config: %s=%q: %w", EnvSeed, v, err)
	}
	c.Seed = seed
	return nil
}

// Validate отсекает значения, с которыми уровень не построить.
func (c Config) Validate() error {
	if c.Width < 3 || c.Height < 3 {
		return fmt.Errorf("config: map %dx%d is too small", c.Width, c.Height)
	}
	if c.Mobs < 0 || c.Items < 0 {
		return fmt.Errorf("config: negative population")
	}
	if c.MoveCost <= 0 || c.MeleeCost <= 0 || c.RangedCost <= 0 {
		return fmt.Errorf("config: action costs must be positive")
	}
	if _, err := c.generator(); err != nil {
		return err
	}
	if _, err := c.falloff(); err != nil {
		return err
	}
	return nil
}

// Rules — константы систем из конфига.
func (c Config) Rules() systems.Rules {
	return systems.Rules{
		ActivationThreshold: c.ActivationThreshold,
		MoveCost:            c.MoveCost,
		MeleeCost:           c.MeleeCost,
		RangedCost:          c.RangedCost,
		RequireLineOfSight:  c.RequireLineOfSight,
	}
}

// LevelSeed — зерно уровня на глубине depth.
func (c Config) LevelSeed(depth int) int64 {
	return c.Seed + int64(depth)
}

func (c Config) generator() (dungeon.Generator, error) {
	switch c.Generator {
	case "", "cave":
		g := dungeon.NewCaveGenerator()
		g.Mobs = c.Mobs
		return g, nil
	case "rooms":
		g := dungeon.NewRoomsGenerator()
		g.Mobs = c.Mobs
		return g, nil
	case "arena":
		return &dungeon.ArenaGenerator{}, nil
	}
	return nil, fmt.Errorf("config: unknown generator %q", c.Generator)
}

func (c Config) falloff() (systems.Falloff, error) {
	switch c.Falloff {
	case "", "linear":
		return systems.LinearFalloff, nil
	case "inverse":
		return systems.InverseFalloff, nil
	}
	return nil, fmt.Errorf("config: unknown falloff %q", c.Falloff)
}
