package data

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSpec читает один YAML-файл из fsys.
func LoadSpec[T any](fsys fs.FS, name string) (T, error) {
	var zero T
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return zero, fmt.Errorf("data: load %s: %w", name, err)
	}

	var spec T
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return zero, fmt.Errorf("data: unmarshal %s: %w", name, err)
	}
	return spec, nil
}

// loadDir читает все *.yaml/*.yml каталога в порядке имён файлов.
// Отсутствующий каталог не ошибка.
func loadDir[T any](fsys fs.FS, dir string) ([]T, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("data: read dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && isSpecFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]T, 0, len(names))
	for _, n := range names {
		spec, err := LoadSpec[T](fsys, path.Join(dir, n))
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

func isSpecFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
