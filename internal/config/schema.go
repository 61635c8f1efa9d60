package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ariel-frischer/tgit/internal/changelog"
)

// Kind is the value type of a scalar configuration key.
type Kind string

const (
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindString Kind = "string"
	KindEnum   Kind = "enum"
)

// Key describes one scalar configuration key that can be set from a flag
// or environment variable.
type Key struct {
	Name     string
	Kind     Kind
	Choices  []string // enum only
	Min, Max int      // int only, inclusive
	Default  any
	Help     string
}

// Keys lists the scalar keys in display order. commit.types is a list and
// is only settable from config files.
var Keys = []Key{
	{
		Name:    "changelog.hash_length",
		Kind:    KindInt,
		Min:     4,
		Max:     40,
		Default: 7,
		Help:    "Minimum abbreviated commit hash length",
	},
	{
		Name:    "changelog.section_emoji",
		Kind:    KindBool,
		Default: false,
		Help:    "Prefix markdown section titles with emoji shortcodes",
	},
	{
		Name:    "changelog.remote",
		Kind:    KindString,
		Default: changelog.DefaultRemote,
		Help:    "Remote used for compare and commit links",
	},
	{
		Name:    "changelog.format",
		Kind:    KindEnum,
		Choices: Formats,
		Default: defaultFormat,
		Help:    "Default output format",
	},
}

// UnknownKeyError is returned for a key that is not in Keys.
type UnknownKeyError struct {
	Name string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown configuration key %q", e.Name)
}

// LookupKey finds a key by its dotted name.
func LookupKey(name string) (Key, bool) {
	i := slices.IndexFunc(Keys, func(k Key) bool { return k.Name == name })
	if i < 0 {
		return Key{}, false
	}
	return Keys[i], true
}

// ParseValue converts raw into the typed value of the named key.
func ParseValue(name, raw string) (any, error) {
	key, ok := LookupKey(name)
	if !ok {
		return nil, &UnknownKeyError{Name: name}
	}
	return key.Parse(raw)
}

// Parse converts raw into the key's type and checks its constraints.
func (k Key) Parse(raw string) (any, error) {
	switch k.Kind {
	case KindBool:
		switch strings.ToLower(raw) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("%q is not a boolean (use true or false)", raw)
	case KindInt:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", raw)
		}
		if n < k.Min || n > k.Max {
			return nil, fmt.Errorf("%d is outside %d-%d", n, k.Min, k.Max)
		}
		return n, nil
	case KindEnum:
		if !slices.Contains(k.Choices, raw) {
			return nil, fmt.Errorf("%q is not one of: %s", raw, strings.Join(k.Choices, ", "))
		}
		return raw, nil
	case KindString:
		if strings.TrimSpace(raw) == "" {
			return nil, fmt.Errorf("value must not be empty")
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("key %s has unsupported kind %q", k.Name, k.Kind)
	}
}

// TypeName is the value type shown in help output.
func (k Key) TypeName() string {
	if k.Kind == KindEnum {
		return strings.Join(k.Choices, "|")
	}
	return string(k.Kind)
}
