package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todo-knk/xibalba/internal/core/types/enums"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Equal(t, "Игрок", c.Player().Name)
	assert.NotEmpty(t, c.EnemyNames())
	assert.NotEmpty(t, c.ItemNames())

	jaguar, ok := c.Enemy("Ягуар")
	require.True(t, ok)
	assert.Equal(t, 120, jaguar.Attributes.Speed)
	assert.Contains(t, jaguar.Brain.Personalities, "aggressive")

	// Всё, что игрок носит с собой, должно существовать.
	for _, name := range c.Player().Inventory {
		_, ok := c.Item(name)
		assert.True(t, ok, "player item %q missing", name)
	}

	_, ok = c.Enemy("nobody")
	assert.False(t, ok)
}

func TestCatalog_NamesSorted(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	names := c.EnemyNames()
	for i := 1; i < len(names); i++ {
		assert.True(t, names[i-1] < names[i])
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadCatalog_Overlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "enemies", "jaguar.yaml"), `
name: Ягуар
attributes: {speed: 200, vision: 3, health: 9}
visual: {character: J, color: red}
`)
	writeFile(t, filepath.Join(dir, "items", "rock.yaml"), `
name: Булыжник
type: ammunition
attributes: {damage: 5}
`)

	c, err := LoadCatalog(dir)
	require.NoError(t, err)

	jaguar, ok := c.Enemy("Ягуар")
	require.True(t, ok)
	assert.Equal(t, 200, jaguar.Attributes.Speed)

	rock, ok := c.Item("Булыжник")
	require.True(t, ok)
	assert.Equal(t, 5, rock.Attributes.Damage)

	// встроенные данные на месте
	_, ok = c.Item("Камень")
	assert.True(t, ok)
}

func TestCatalog_ReloadKeepsStateOnError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "items", "bad.yaml"), "name: [unclosed")

	c, err := DefaultCatalog()
	require.NoError(t, err)
	before := len(c.ItemNames())

	err = c.Reload(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
	assert.Len(t, c.ItemNames(), before)
}

func TestLoadCatalog_MissingDirUsesDefaults(t *testing.T) {
	c, err := LoadCatalog(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.NotEmpty(t, c.EnemyNames())
}

func TestEnemyDef_Validate(t *testing.T) {
	valid := EnemyDef{
		Name:       "x",
		Attributes: CreatureAttributes{Speed: 100, Health: 1},
		Visual:     VisualDef{Character: "x", Color: "red"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*EnemyDef)
	}{
		{"no name", func(d *EnemyDef) { d.Name = "" }},
		{"zero speed", func(d *EnemyDef) { d.Attributes.Speed = 0 }},
		{"zero health", func(d *EnemyDef) { d.Attributes.Health = 0 }},
		{"bad personality", func(d *EnemyDef) { d.Brain.Personalities = []string{"grumpy"} }},
		{"bad body part", func(d *EnemyDef) { d.BodyParts = []string{"antenna"} }},
		{"bad skill", func(d *EnemyDef) { d.Skills = map[string]int{"juggling": 1} }},
		{"bad color", func(d *EnemyDef) { d.Visual.Color = "#zz" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			assert.Error(t, d.Validate())
		})
	}
}

func TestItemDef_Validate(t *testing.T) {
	assert.NoError(t, ItemDef{Name: "a", Type: "weapon", Attributes: ItemAttributes{Skill: "piercing"}}.Validate())
	assert.Error(t, ItemDef{Name: "a", Type: "food"}.Validate())
	assert.Error(t, ItemDef{Name: "a", Type: "weapon", Attributes: ItemAttributes{Skill: "magic"}}.Validate())
	assert.Error(t, ItemDef{Name: "a", Type: "consumable", Effects: map[string]int{"fly": 1}}.Validate())
}

func TestVisualDef_Glyph(t *testing.T) {
	g, err := VisualDef{Character: "j", Color: "#102030"}.Glyph()
	require.NoError(t, err)
	assert.Equal(t, 'j', g.Rune())
	assert.Equal(t, uint32(0x102030), g.Color())

	g, err = VisualDef{}.Glyph()
	require.NoError(t, err)
	assert.Equal(t, '?', g.Rune())
	assert.Equal(t, uint32(0xFFFFFF), g.Color())
}

func TestEnemyDef_ParsedEnums(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	for _, name := range c.EnemyNames() {
		d, _ := c.Enemy(name)
		for _, p := range d.BodyParts {
			assert.NotEqual(t, enums.BodyPartUnknown, enums.ParseBodyPart(p))
		}
	}
}

func TestWatcher_ReportsYAMLChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, "bat.yaml"), "name: bat")

	select {
	case name := <-w.Events:
		assert.Equal(t, "bat.yaml", filepath.Base(name))
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no event for yaml change")
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
