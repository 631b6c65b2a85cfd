package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// ErrInvalidModRef is returned when a roster entry cannot identify a mod.
var ErrInvalidModRef = errors.New("invalid mod reference")

// ModState mirrors the host manager's per-mod state bit field.
type ModState int

const (
	// StateExists is set for every mod the manager knows about.
	StateExists ModState = 0x1
	// StateActive is set for mods enabled in the current profile.
	StateActive ModState = 0x2
)

// IsActive reports whether the active bit is set.
func (s ModState) IsActive() bool {
	return s&StateActive != 0
}

// ModRef is one entry of the host manager's mod roster.
type ModRef struct {
	// Name is the manager's unique mod name.
	Name string `json:"name"`
	// State is the manager's state bit field.
	State ModState `json:"state"`
	// Path is the absolute installation path of the mod.
	Path string `json:"path"`
	// Priority is the manager-assigned rank; lower ranks load first.
	Priority int `json:"priority"`
}

// NewModRef builds a roster entry, rejecting empty names.
func NewModRef(name string, state ModState, path string, priority int) (ModRef, error) {
	ref := ModRef{Name: name, State: state, Path: path, Priority: priority}
	if err := ref.Validate(); err != nil {
		return ModRef{}, err
	}
	return ref, nil
}

// Validate checks that the entry names a mod.
func (m ModRef) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: empty name at priority %d", ErrInvalidModRef, m.Priority)
	}
	return nil
}

// IsActive reports whether the mod is enabled.
func (m ModRef) IsActive() bool {
	return m.State.IsActive()
}

// ModList is the manager's roster.
type ModList []ModRef

// roster is the JSON envelope the host manager sends.
type roster struct {
	Mods ModList `json:"mods"`
}

// DecodeModList reads a {"mods": [...]} roster and validates every entry.
func DecodeModList(r io.Reader) (ModList, error) {
	var env roster
	dec := json.NewDecoder(r)
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode mod roster: %w", err)
	}
	for _, m := range env.Mods {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	return env.Mods, nil
}

// ByPriority returns a copy sorted by ascending priority. Entries sharing a rank keep roster order.
func (l ModList) ByPriority() ModList {
	sorted := slices.Clone(l)
	slices.SortStableFunc(sorted, func(a, b ModRef) int {
		return a.Priority - b.Priority
	})
	return sorted
}

// Names returns the set of mod names in the roster.
func (l ModList) Names() map[string]struct{} {
	names := make(map[string]struct{}, len(l))
	for _, m := range l {
		names[m.Name] = struct{}{}
	}
	return names
}

// Find returns the entry named name.
func (l ModList) Find(name string) (ModRef, bool) {
	for _, m := range l {
		if m.Name == name {
			return m, true
		}
	}
	return ModRef{}, false
}

// Active returns the enabled entries in roster order.
func (l ModList) Active() ModList {
	var out ModList
	for _, m := range l {
		if m.IsActive() {
			out = append(out, m)
		}
	}
	return out
}
