package cli

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

type flagKind uint8

const (
	flagBool flagKind = iota + 1
	flagString
	flagEnum
)

// FlagSet registers the typed flags of a command. Each registration returns a pointer that holds the default until the flag is parsed.
type FlagSet struct {
	byLong  map[string]*flagDef
	byShort map[rune]*flagDef
}

type flagDef struct {
	name      string
	shorthand rune // 0 if none
	usage     string
	kind      flagKind
	choices   []string // flagEnum only

	boolPtr   *bool
	stringPtr *string
	set       bool // whether the flag appeared on the command line
}

func newFlagSet() *FlagSet {
	return &FlagSet{byLong: map[string]*flagDef{}, byShort: map[rune]*flagDef{}}
}

// Bool registers a boolean flag. On the command line, "--name" alone means true.
func (fs *FlagSet) Bool(name string, shorthand rune, def bool, usage string) *bool {
	ptr := &def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagBool, boolPtr: ptr})
	return ptr
}

// String registers a flag that takes any string value.
func (fs *FlagSet) String(name string, shorthand rune, def string, usage string) *string {
	ptr := &def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagString, stringPtr: ptr})
	return ptr
}

// Enum registers a string flag restricted to choices. def need not be one of choices (ex: "" meaning "not given").
func (fs *FlagSet) Enum(name string, shorthand rune, def string, choices []string, usage string) *string {
	if len(choices) == 0 {
		panic("cli: Enum flag needs choices: --" + name)
	}
	ptr := &def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagEnum, choices: choices, stringPtr: ptr})
	return ptr
}

// Changed reports whether the flag named name was given on the command line.
func (fs *FlagSet) Changed(name string) bool {
	def := fs.byLong[name]
	return def != nil && def.set
}

func (fs *FlagSet) add(def *flagDef) {
	if def.name == "" {
		panic("cli: flag name must be non-empty")
	}
	if _, ok := fs.byLong[def.name]; ok {
		panic("cli: duplicate flag: --" + def.name)
	}
	fs.byLong[def.name] = def
	if def.shorthand != 0 {
		if _, ok := fs.byShort[def.shorthand]; ok {
			panic(fmt.Sprintf("cli: duplicate shorthand flag: -%c", def.shorthand))
		}
		fs.byShort[def.shorthand] = def
	}
}

// activeFlags returns the flags visible to c: persistent flags of its ancestors and itself, plus its local flags. Deeper definitions shadow shallower ones.
func (c *Command) activeFlags() *FlagSet {
	active := newFlagSet()
	merge := func(fs *FlagSet) {
		if fs == nil {
			return
		}
		for name, def := range fs.byLong {
			active.byLong[name] = def
		}
		for r, def := range fs.byShort {
			active.byShort[r] = def
		}
	}
	for _, cmd := range c.path() {
		merge(cmd.persistentFlags)
	}
	merge(c.localFlags)
	return active
}

func (fs *FlagSet) sorted() []*flagDef {
	defs := make([]*flagDef, 0, len(fs.byLong))
	for _, def := range fs.byLong {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].name < defs[j].name })
	return defs
}

// lookup finds the flag for token, which is "--name", "-name", or "-n" with any "=value" already removed.
func (fs *FlagSet) lookup(token string) *flagDef {
	if name, ok := strings.CutPrefix(token, "--"); ok {
		return fs.byLong[name]
	}
	name := token[1:]
	if def := fs.byLong[name]; def != nil && len(name) > 1 {
		return def
	}
	if r := []rune(name); len(r) == 1 {
		return fs.byShort[r[0]]
	}
	return nil
}

func (def *flagDef) setValue(raw string) error {
	switch def.kind {
	case flagBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		*def.boolPtr = v
	case flagString:
		*def.stringPtr = raw
	case flagEnum:
		if !slices.Contains(def.choices, raw) {
			return fmt.Errorf("want one of %s", strings.Join(def.choices, "|"))
		}
		*def.stringPtr = raw
	}
	def.set = true
	return nil
}

func (def *flagDef) display() string {
	if def.shorthand != 0 {
		return fmt.Sprintf("-%c/--%s", def.shorthand, def.name)
	}
	return "--" + def.name
}

func (def *flagDef) helpLine() string {
	names := "    --" + def.name
	if def.shorthand != 0 {
		names = fmt.Sprintf("-%c, --%s", def.shorthand, def.name)
	}
	switch def.kind {
	case flagString:
		names += " <string>"
	case flagEnum:
		names += " <" + strings.Join(def.choices, "|") + ">"
	}
	if usage := strings.TrimSpace(def.usage); usage != "" {
		return "  " + names + "\t" + usage
	}
	return "  " + names
}
