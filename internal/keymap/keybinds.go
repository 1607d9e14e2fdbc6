package keymap

// Action is a logical editing or navigation operation a keystroke can map to.
type Action int

const (
	ActionNone Action = iota
	ActionCompletion
	ActionBackward
	ActionForward
	ActionMoveToHead
	ActionMoveToTail
	ActionMoveToPreviousNearest
	ActionMoveToNextNearest
	ActionErase
	ActionEraseAll
	ActionEraseToPreviousNearest
	ActionEraseToNextNearest
	ActionSearchUp
)

var actionNames = map[Action]string{
	ActionNone:                   "none",
	ActionCompletion:             "completion",
	ActionBackward:               "backward",
	ActionForward:                "forward",
	ActionMoveToHead:             "move_to_head",
	ActionMoveToTail:             "move_to_tail",
	ActionMoveToPreviousNearest:  "move_to_previous_nearest",
	ActionMoveToNextNearest:      "move_to_next_nearest",
	ActionErase:                  "erase",
	ActionEraseAll:               "erase_all",
	ActionEraseToPreviousNearest: "erase_to_previous_nearest",
	ActionEraseToNextNearest:     "erase_to_next_nearest",
	ActionSearchUp:               "search_up",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Keybinds is the editor's keybinding table: one keystroke per slot. It is
// built once at startup and never mutated afterwards. Slots are not required
// to be distinct.
type Keybinds struct {
	Completion             Keystroke
	Backward               Keystroke
	Forward                Keystroke
	MoveToHead             Keystroke
	MoveToTail             Keystroke
	MoveToPreviousNearest  Keystroke
	MoveToNextNearest      Keystroke
	Erase                  Keystroke
	EraseAll               Keystroke
	EraseToPreviousNearest Keystroke
	EraseToNextNearest     Keystroke
	SearchUp               Keystroke
}

// DefaultKeybinds returns the built-in editor bindings.
func DefaultKeybinds() Keybinds {
	return Keybinds{
		Completion:             MustParse("tab"),
		Backward:               MustParse("left"),
		Forward:                MustParse("right"),
		MoveToHead:             MustParse("ctrl+a"),
		MoveToTail:             MustParse("ctrl+e"),
		MoveToPreviousNearest:  MustParse("alt+b"),
		MoveToNextNearest:      MustParse("alt+f"),
		Erase:                  MustParse("backspace"),
		EraseAll:               MustParse("ctrl+u"),
		EraseToPreviousNearest: MustParse("ctrl+w"),
		EraseToNextNearest:     MustParse("alt+d"),
		SearchUp:               MustParse("up"),
	}
}

// slots lists the edit-mode slots in dispatch priority order: completion,
// then cursor motion, then erasure. SearchUp is only consulted while
// navigating suggestions and is resolved separately.
func (kb *Keybinds) slots() []struct {
	action Action
	key    *Keystroke
} {
	return []struct {
		action Action
		key    *Keystroke
	}{
		{ActionCompletion, &kb.Completion},
		{ActionBackward, &kb.Backward},
		{ActionForward, &kb.Forward},
		{ActionMoveToHead, &kb.MoveToHead},
		{ActionMoveToTail, &kb.MoveToTail},
		{ActionMoveToPreviousNearest, &kb.MoveToPreviousNearest},
		{ActionMoveToNextNearest, &kb.MoveToNextNearest},
		{ActionErase, &kb.Erase},
		{ActionEraseAll, &kb.EraseAll},
		{ActionEraseToPreviousNearest, &kb.EraseToPreviousNearest},
		{ActionEraseToNextNearest, &kb.EraseToNextNearest},
		{ActionSearchUp, &kb.SearchUp},
	}
}

// Resolver maps keystrokes to edit-mode actions. When two slots share a
// keystroke the higher-priority slot wins.
type Resolver struct {
	actions  map[Keystroke]Action
	searchUp Keystroke
}

// NewResolver precomputes the lookup for kb.
func NewResolver(kb Keybinds) *Resolver {
	r := &Resolver{
		actions:  make(map[Keystroke]Action, 12),
		searchUp: kb.SearchUp,
	}
	for _, slot := range kb.slots() {
		if slot.action == ActionSearchUp {
			continue
		}
		if _, taken := r.actions[*slot.key]; taken {
			continue
		}
		r.actions[*slot.key] = slot.action
	}
	return r
}

// Edit returns the edit-mode action bound to k, or ActionNone.
func (r *Resolver) Edit(k Keystroke) Action {
	if r == nil {
		return ActionNone
	}
	return r.actions[k]
}

// IsSearchUp reports whether k is the configured step-up keystroke.
func (r *Resolver) IsSearchUp(k Keystroke) bool {
	return r != nil && k == r.searchUp
}
