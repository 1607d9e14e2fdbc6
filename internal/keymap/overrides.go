package keymap

import (
	"fmt"
	"sort"
)

// AppKeybinds are the application-level bindings checked before a key is
// handed to the focused component.
type AppKeybinds struct {
	Exit        Keystroke
	CopyQuery   Keystroke
	CopyResult  Keystroke
	SwitchFocus Keystroke
	Suspend     Keystroke
}

// DefaultAppKeybinds returns the built-in application bindings.
func DefaultAppKeybinds() AppKeybinds {
	return AppKeybinds{
		Exit:        MustParse("ctrl+c"),
		CopyQuery:   MustParse("ctrl+q"),
		CopyResult:  MustParse("ctrl+o"),
		SwitchFocus: MustParse("shift+down"),
		Suspend:     MustParse("ctrl+z"),
	}
}

// Set is the full binding configuration: editor slots plus application slots.
type Set struct {
	Editor Keybinds
	App    AppKeybinds
}

// DefaultSet returns every built-in binding.
func DefaultSet() Set {
	return Set{Editor: DefaultKeybinds(), App: DefaultAppKeybinds()}
}

func (s *Set) slotsByName() map[string]*Keystroke {
	out := make(map[string]*Keystroke, 17)
	for _, slot := range s.Editor.slots() {
		out[slot.action.String()] = slot.key
	}
	out["exit"] = &s.App.Exit
	out["copy_query"] = &s.App.CopyQuery
	out["copy_result"] = &s.App.CopyResult
	out["switch_focus"] = &s.App.SwitchFocus
	out["suspend"] = &s.App.Suspend
	return out
}

// Apply overrides named slots with parsed descriptors. Unknown slot names and
// malformed descriptors are errors; the set is left untouched on failure.
func (s *Set) Apply(overrides map[string]string) error {
	if len(overrides) == 0 {
		return nil
	}
	next := *s
	slots := next.slotsByName()

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		slot, ok := slots[name]
		if !ok {
			return fmt.Errorf("unknown keybind %q", name)
		}
		k, err := Parse(overrides[name])
		if err != nil {
			return fmt.Errorf("keybind %s: %w", name, err)
		}
		*slot = k
	}
	*s = next
	return nil
}

// SlotNames returns every configurable slot name, sorted.
func SlotNames() []string {
	set := DefaultSet()
	slots := set.slotsByName()
	names := make([]string, 0, len(slots))
	for name := range slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
