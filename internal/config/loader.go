package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
)

// Loader applies a prioritized list of configuration sources to a flat destination struct. Register sources from lowest to highest priority with the With* methods, then call
// StrictlyLoad. The zero value is ready to use; NewLoader exists for fluent chaining.
type Loader struct {
	sources []source // ordered from low to high priority
}

// NewLoader returns an empty Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// WithDefaults registers m as a source of default values. Keys are matched case-insensitively; values must be string, bool, int, or float64. A nil map contributes nothing.
func (l *Loader) WithDefaults(m map[string]any) *Loader {
	l.sources = append(l.sources, &mapSource{m: m})
	return l
}

// WithFile registers the settings file at path, which is expanded with ExpandPath when read. Files ending in .yaml or .yml are parsed as YAML, all others as JSON. A missing or unreadable
// file contributes nothing; a malformed one fails StrictlyLoad.
func (l *Loader) WithFile(path string) *Loader {
	l.sources = append(l.sources, &fileSource{path: path})
	return l
}

// WithNearestFile searches upward from start (a directory or file; the working directory if empty) for the first directory holding a non-empty file named one of fileNames, and
// registers that file. Within one directory, earlier fileNames win. fileNames must be relative; WithNearestFile panics otherwise. If nothing is found, the Loader is unchanged.
func (l *Loader) WithNearestFile(start string, fileNames ...string) *Loader {
	for _, name := range fileNames {
		if filepath.IsAbs(name) {
			panic("fileName shouldn't be absolute")
		}
	}
	if start == "" {
		if wd, err := os.Getwd(); err == nil {
			start = wd
		}
	}
	if start == "" {
		return l
	}
	if fi, err := os.Stat(start); err == nil && !fi.IsDir() {
		start = filepath.Dir(start)
	}

	for dir := start; ; {
		for _, name := range fileNames {
			candidate := filepath.Join(dir, name)
			if data, err := os.ReadFile(candidate); err == nil && strings.TrimSpace(string(data)) != "" {
				l.sources = append(l.sources, &fileSource{path: candidate})
				return l
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return l
		}
		dir = parent
	}
}

// WithEnv registers environment variables as a source. m maps a configuration key to the name of the variable that supplies it. Unset and empty variables are skipped.
func (l *Loader) WithEnv(m map[string]string) *Loader {
	l.sources = append(l.sources, &envSource{keyToEnv: m})
	return l
}

// Files returns the paths of the registered file sources, in priority order.
func (l *Loader) Files() []string {
	var paths []string
	for _, src := range l.sources {
		if f, ok := src.(*fileSource); ok {
			paths = append(paths, f.path)
		}
	}
	return paths
}

// StrictlyLoad applies every source to dest, a non-nil pointer to a struct, with later sources overwriting earlier ones. Fields are matched by their `config` tag name, else their
// `json` tag name, else their lowercased field name. A field tagged `config:",required"` must be set by some source.
//
// Values are coerced when reasonable (ex: "4" -> 4 for an int field). A source that cannot be parsed, or that supplies a value that cannot be coerced, fails the load immediately. Missing
// sources and unknown keys are not errors. Errors name the source they came from.
func (l *Loader) StrictlyLoad(dest any) error {
	rv := reflect.ValueOf(dest)
	if dest == nil || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("dest must be a non-nil pointer to struct")
	}
	structVal := rv.Elem()
	if structVal.Kind() != reflect.Struct {
		return fmt.Errorf("dest must be a pointer to struct, got %s", structVal.Kind())
	}

	fields, err := indexFields(structVal.Type())
	if err != nil {
		return err
	}

	present := map[string]bool{}
	for _, src := range l.sources {
		values, err := src.values()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				continue
			}
			return fmt.Errorf("%s: %w", src.name(), err)
		}
		for key, raw := range values {
			idx, ok := fields[key]
			if !ok {
				continue
			}
			if err := setField(structVal.Field(idx), raw, key); err != nil {
				return fmt.Errorf("%s: %w", src.name(), err)
			}
			present[key] = true
		}
	}

	for key, idx := range fields {
		if isRequired(structVal.Type().Field(idx)) && !present[key] {
			return fmt.Errorf("missing required key: %s", key)
		}
	}
	return nil
}

// indexFields maps each settable field's key to its index. It errors when two fields share a key.
func indexFields(t reflect.Type) (map[string]int, error) {
	fields := map[string]int{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		key := fieldKey(f)
		if key == "-" {
			continue
		}
		if prev, exists := fields[key]; exists {
			return nil, fmt.Errorf("struct contains case-insensitive field key collision for %q: %s and %s", key, t.Field(prev).Name, f.Name)
		}
		fields[key] = i
	}
	return fields, nil
}

func fieldKey(f reflect.StructField) string {
	if name := tagName(f.Tag.Get("config")); name != "" {
		return strings.ToLower(name)
	}
	if name := tagName(f.Tag.Get("json")); name != "" && name != "-" {
		return strings.ToLower(name)
	}
	return strings.ToLower(f.Name)
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return strings.TrimSpace(name)
}

func isRequired(f reflect.StructField) bool {
	_, opts, _ := strings.Cut(f.Tag.Get("config"), ",")
	for _, opt := range strings.Split(opts, ",") {
		if strings.TrimSpace(opt) == "required" {
			return true
		}
	}
	return false
}

// setField assigns raw to field, coercing between strings and the field's kind.
func setField(field reflect.Value, raw any, key string) error {
	switch field.Kind() {
	case reflect.String:
		switch v := raw.(type) {
		case string:
			field.SetString(v)
		case bool:
			field.SetString(strconv.FormatBool(v))
		case int:
			field.SetString(strconv.Itoa(v))
		case float64:
			field.SetString(strconv.FormatFloat(v, 'f', -1, 64))
		default:
			return fmt.Errorf("%s: cannot coerce %T to string", key, raw)
		}
	case reflect.Bool:
		switch v := raw.(type) {
		case bool:
			field.SetBool(v)
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s: cannot parse bool from %q", key, v)
			}
			field.SetBool(parsed)
		default:
			return fmt.Errorf("%s: cannot coerce %T to bool", key, raw)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch v := raw.(type) {
		case int:
			field.SetInt(int64(v))
		case float64:
			if v != float64(int64(v)) {
				return fmt.Errorf("%s: %v is not an integer", key, v)
			}
			field.SetInt(int64(v))
		case string:
			parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return fmt.Errorf("%s: cannot parse int from %q", key, v)
			}
			field.SetInt(parsed)
		default:
			return fmt.Errorf("%s: cannot coerce %T to int", key, raw)
		}
	default:
		return fmt.Errorf("%s: unsupported field kind %s", key, field.Kind())
	}
	return nil
}
