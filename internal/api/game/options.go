package game

import (
	"sort"
	"strconv"
	"strings"
)

// Match-level options. Engine-level option names come from the Engine.
const (
	OptionHostIsWhite = "HostIsWhite"
	OptionAsyncPlay   = "AsyncPlay"
)

// OptionSet maps every known option name of one family to its value.
type OptionSet map[string]bool

func DefaultMatchOptions() OptionSet {
	return OptionSet{
		OptionHostIsWhite: true,
		OptionAsyncPlay:   false,
	}
}

func (o OptionSet) Clone() OptionSet {
	clone := make(OptionSet, len(o))
	for name, value := range o {
		clone[name] = value
	}
	return clone
}

// Has reports whether name is a known option of this family.
func (o OptionSet) Has(name string) bool {
	_, ok := o[name]
	return ok
}

// Encode renders the set as "Name:bool;Name:bool" in name order.
func (o OptionSet) Encode() string {
	names := make([]string, 0, len(o))
	for name := range o {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+":"+strconv.FormatBool(o[name]))
	}
	return strings.Join(parts, ";")
}

// ParseOptions overlays an encoded option string onto defaults. Entries that
// are malformed or name an option missing from defaults are ignored.
func ParseOptions(encoded string, defaults OptionSet) OptionSet {
	options := defaults.Clone()
	for _, entry := range strings.Split(encoded, ";") {
		name, raw, ok := strings.Cut(entry, ":")
		if !ok || !options.Has(name) {
			continue
		}
		value, err := strconv.ParseBool(raw)
		if err != nil {
			continue
		}
		options[name] = value
	}
	return options
}

// Options is the negotiable state of a match before play starts.
type Options struct {
	Match  OptionSet
	Engine OptionSet
}

func (o Options) Clone() Options {
	return Options{Match: o.Match.Clone(), Engine: o.Engine.Clone()}
}

func (o Options) HostIsWhite() bool {
	return o.Match[OptionHostIsWhite]
}

// Set updates whichever family owns name. It reports false for unknown names.
func (o Options) Set(name string, value bool) bool {
	switch {
	case o.Match.Has(name):
		o.Match[name] = value
	case o.Engine.Has(name):
		o.Engine[name] = value
	default:
		return false
	}
	return true
}
