package data

import (
	"fmt"

	"github.com/todo-knk/xibalba/internal/core/types"
	"github.com/todo-knk/xibalba/internal/core/types/enums"
)

// VisualDef — символ и цвет в файлах данных.
type VisualDef struct {
	Character string `yaml:"character"`
	Color     string `yaml:"color"`
}

// Glyph собирает глиф. Пустой символ превращается в '?'.
func (v VisualDef) Glyph() (types.Glyph, error) {
	ch := '?'
	for _, r := range v.Character {
		ch = r
		break
	}
	color := uint32(0xFFFFFF)
	if v.Color != "" {
		c, err := types.ParseColor(v.Color)
		if err != nil {
			return 0, err
		}
		color = c
	}
	return types.MakeGlyph(color, ch), nil
}

type CreatureAttributes struct {
	Speed     int `yaml:"speed"`
	Vision    int `yaml:"vision"`
	Toughness int `yaml:"toughness"`
	Strength  int `yaml:"strength"`
	Health    int `yaml:"health"`
}

type BrainDef struct {
	Personalities []string `yaml:"personalities"`
}

// EnemyDef — описание существа. Тем же форматом описывается игрок.
type EnemyDef struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Attributes  CreatureAttributes `yaml:"attributes"`
	Brain       BrainDef           `yaml:"brain"`
	BodyParts   []string           `yaml:"bodyParts"`
	Skills      map[string]int     `yaml:"skills"`
	Inventory   []string           `yaml:"inventory"`
	Visual      VisualDef          `yaml:"visual"`
}

// Validate проверяет то, без чего существо не создать.
func (d EnemyDef) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("enemy: missing name")
	}
	if d.Attributes.Speed <= 0 {
		return fmt.Errorf("enemy %s: speed must be positive", d.Name)
	}
	if d.Attributes.Health <= 0 {
		return fmt.Errorf("enemy %s: health must be positive", d.Name)
	}
	for _, p := range d.Brain.Personalities {
		if enums.ParsePersonality(p) == enums.PersonalityUnknown {
			return fmt.Errorf("enemy %s: unknown personality %q", d.Name, p)
		}
	}
	for _, p := range d.BodyParts {
		if enums.ParseBodyPart(p) == enums.BodyPartUnknown {
			return fmt.Errorf("enemy %s: unknown body part %q", d.Name, p)
		}
	}
	for s := range d.Skills {
		if enums.ParseSkill(s) == enums.SkillUnknown {
			return fmt.Errorf("enemy %s: unknown skill %q", d.Name, s)
		}
	}
	if _, err := d.Visual.Glyph(); err != nil {
		return fmt.Errorf("enemy %s: %w", d.Name, err)
	}
	return nil
}

type ItemAttributes struct {
	Damage     int    `yaml:"damage"`
	Defense    int    `yaml:"defense"`
	Skill      string `yaml:"skill"`
	Ammunition string `yaml:"ammunition"`
}

// ItemDef — описание предмета.
type ItemDef struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Type        string         `yaml:"type"`
	Attributes  ItemAttributes `yaml:"attributes"`
	Effects     map[string]int `yaml:"effects"`
	Visual      VisualDef      `yaml:"visual"`
}

func (d ItemDef) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("item: missing name")
	}
	if enums.ParseItemType(d.Type) == enums.ItemTypeUnknown {
		return fmt.Errorf("item %s: unknown type %q", d.Name, d.Type)
	}
	if d.Attributes.Skill != "" && enums.ParseSkill(d.Attributes.Skill) == enums.SkillUnknown {
		return fmt.Errorf("item %s: unknown skill %q", d.Name, d.Attributes.Skill)
	}
	for e := range d.Effects {
		if enums.ParseItemEffect(e) == enums.ItemEffectUnknown {
			return fmt.Errorf("item %s: unknown effect %q", d.Name, e)
		}
	}
	if _, err := d.Visual.Glyph(); err != nil {
		return fmt.Errorf("item %s: %w", d.Name, err)
	}
	return nil
}
