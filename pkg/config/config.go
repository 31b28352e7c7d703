// Package config provides typed, dotted-key lookups over a YAML file with a
// default fallback. The file is reopened and reparsed on every call, so
// external edits take effect without a daemon restart.
package config

import (
	"log/slog"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider reads scalar values from a single YAML file.
type Provider struct {
	Path string
}

// New returns a Provider backed by the YAML file at path.
func New(path string) *Provider {
	return &Provider{Path: path}
}

// Get looks up keyPath (dot-separated, a single leading "." tolerated) and
// returns it converted to T, or def if the file can't be read/parsed, the
// key path doesn't resolve, or the value can't convert to T. Every
// successful read logs the resolved value at info level.
func Get[T any](p *Provider, keyPath string, def T) T {
	node, ok := lookup(p.Path, keyPath)
	if !ok {
		slog.Warn("config: key not found, using default", "key", keyPath, "default", def)
		return def
	}

	target := reflect.TypeOf(def)
	rv := reflect.ValueOf(node)
	if target != nil && rv.IsValid() && rv.Type().ConvertibleTo(target) {
		v := rv.Convert(target).Interface().(T)
		slog.Info("config read", "key", keyPath, "value", v)
		return v
	}

	slog.Warn("config: value type mismatch, using default", "key", keyPath, "default", def)
	return def
}

// lookup parses the YAML file and walks keyPath's dot-separated segments
// through nested maps, returning the leaf value.
func lookup(path, keyPath string) (any, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("config: read failed", "path", path, "err", err)
		return nil, false
	}

	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		slog.Warn("config: parse failed", "path", path, "err", err)
		return nil, false
	}

	clean := strings.TrimPrefix(keyPath, ".")
	var cur any = root
	for _, part := range strings.Split(clean, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := m[part]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}
