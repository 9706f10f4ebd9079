package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// source supplies flat key/value data to a Loader. Keys are lowercased. Values are string, bool, int, or float64.
type source interface {
	// name labels the source in errors.
	name() string
	values() (map[string]any, error)
}

type mapSource struct {
	m map[string]any
}

type fileSource struct {
	path string // expanded with ExpandPath at read time
}

type envSource struct {
	keyToEnv map[string]string // config key -> env var name
}

func (s *mapSource) name() string {
	return "Defaults"
}

func (s *mapSource) values() (map[string]any, error) {
	out := make(map[string]any, len(s.m))
	for k, v := range s.m {
		if err := putScalar(out, k, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *fileSource) isYAML() bool {
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (s *fileSource) name() string {
	if s.isYAML() {
		return fmt.Sprintf("YAML File: %s", s.path)
	}
	return fmt.Sprintf("JSON File: %s", s.path)
}

// values reads and parses the file. Empty or whitespace-only files contribute nothing. The document must be a mapping of scalars; nested objects and arrays are rejected.
func (s *fileSource) values() (map[string]any, error) {
	data, err := os.ReadFile(ExpandPath(s.path))
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return map[string]any{}, nil
	}

	var raw any
	if s.isYAML() {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level document must be an object")
	}

	out := make(map[string]any, len(obj))
	for k, v := range obj {
		if v == nil {
			continue
		}
		if err := putScalar(out, k, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *envSource) name() string {
	return "ENV"
}

// values reads the mapped variables. Unset and empty variables set no key, so an exported-but-empty variable never hides a value from a file.
func (s *envSource) values() (map[string]any, error) {
	out := map[string]any{}
	for key, envVar := range s.keyToEnv {
		if envVar == "" {
			continue
		}
		val, ok := os.LookupEnv(envVar)
		if !ok || val == "" {
			continue
		}
		if err := putScalar(out, key, val); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// putScalar stores v under the lowercased key, rejecting non-scalar values and keys that collide case-insensitively.
func putScalar(out map[string]any, key string, v any) error {
	switch v.(type) {
	case string, bool, int, float64:
	default:
		return fmt.Errorf("invalid value for key '%s': type %T is not allowed", key, v)
	}
	k := strings.ToLower(key)
	if _, exists := out[k]; exists {
		return fmt.Errorf("key conflict: key '%s' was already set", key)
	}
	out[k] = v
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory and makes path absolute. An empty path stays empty.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	expanded := path
	if strings.HasPrefix(expanded, "~") {
		if home, _ := os.UserHomeDir(); home != "" {
			switch {
			case expanded == "~" || expanded == "~/" || expanded == `~\`:
				expanded = home
			case strings.HasPrefix(expanded, "~/") || strings.HasPrefix(expanded, `~\`):
				expanded = filepath.Join(home, expanded[2:])
			}
		}
	}
	if !filepath.IsAbs(expanded) {
		if abs, err := filepath.Abs(expanded); err == nil {
			expanded = abs
		}
	}
	return expanded
}
