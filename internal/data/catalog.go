package data

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/todo-knk/xibalba/pkg/logger"
)

//go:embed defaults
var defaultsFS embed.FS

const (
	enemiesDir = "enemies"
	itemsDir   = "items"
	playerFile = "player.yaml"
)

// Catalog — справочник существ и предметов. Безопасен для конкурентного
// чтения: Reload может прийти из горутины наблюдателя.
type Catalog struct {
	mu      sync.RWMutex
	player  EnemyDef
	enemies map[string]EnemyDef
	items   map[string]ItemDef
}

// DefaultCatalog — встроенные в бинарник данные.
func DefaultCatalog() (*Catalog, error) {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		return nil, fmt.Errorf("data: defaults: %w", err)
	}
	c := &Catalog{}
	if err := c.load(sub, nil); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadCatalog берёт встроенные данные и перекрывает их файлами из dir.
// Пустой dir — только встроенные.
func LoadCatalog(dir string) (*Catalog, error) {
	c, err := DefaultCatalog()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return c, nil
	}
	if err := c.Reload(dir); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload заново читает каталог dir поверх встроенных данных.
// При ошибке текущее содержимое не меняется.
func (c *Catalog) Reload(dir string) error {
	base, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		return fmt.Errorf("data: defaults: %w", err)
	}
	next := &Catalog{}
	if err := next.load(base, os.DirFS(dir)); err != nil {
		return err
	}

	c.mu.Lock()
	c.player, c.enemies, c.items = next.player, next.enemies, next.items
	c.mu.Unlock()

	logger.Log.WithField("component", "data").
		WithField("dir", dir).
		Infof("catalog loaded: %d enemies, %d items", len(next.enemies), len(next.items))
	return nil
}

func (c *Catalog) load(base, overlay fs.FS) error {
	c.enemies = make(map[string]EnemyDef)
	c.items = make(map[string]ItemDef)

	for _, fsys := range []fs.FS{base, overlay} {
		if fsys == nil {
			continue
		}
		enemies, err := loadDir[EnemyDef](fsys, enemiesDir)
		if err != nil {
			return err
		}
		for _, e := range enemies {
			if err := e.Validate(); err != nil {
				return fmt.Errorf("data: %w", err)
			}
			c.enemies[e.Name] = e
		}

		items, err := loadDir[ItemDef](fsys, itemsDir)
		if err != nil {
			return err
		}
		for _, it := range items {
			if err := it.Validate(); err != nil {
				return fmt.Errorf("data: %w", err)
			}
			c.items[it.Name] = it
		}

		if _, err := fs.Stat(fsys, playerFile); err == nil {
			p, err := LoadSpec[EnemyDef](fsys, playerFile)
			if err != nil {
				return err
			}
			if err := p.Validate(); err != nil {
				return fmt.Errorf("data: %w", err)
			}
			c.player = p
		}
	}

	if c.player.Name == "" {
		return fmt.Errorf("data: %s not found", playerFile)
	}
	return nil
}

func (c *Catalog) Player() EnemyDef {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.player
}

func (c *Catalog) Enemy(name string) (EnemyDef, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.enemies[name]
	return d, ok
}

func (c *Catalog) Item(name string) (ItemDef, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.items[name]
	return d, ok
}

// EnemyNames — имена в алфавитном порядке, чтобы выбор по RNG был воспроизводим.
func (c *Catalog) EnemyNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.enemies)
}

func (c *Catalog) ItemNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.items)
}

func sortedKeys[T any](m map[string]T) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
