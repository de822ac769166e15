package pricing

import (
	"errors"
	"fmt"

	"tiffin/internal/menu"
)

// Picked holds what the customer chose for one option. Exactly one of
// the two fields is used depending on the option's selection type.
type Picked struct {
	Single string
	Multi  map[string]bool
}

// Selection maps option id to the customer's pick. Mutate only through
// ApplyChoice / ToggleChoice so visibility clearing always runs.
type Selection map[string]Picked

func NewSelection() Selection {
	return make(Selection)
}

// Clone deep-copies a selection (line items keep their own copy).
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for optID, picked := range s {
		cp := Picked{Single: picked.Single}
		if picked.Multi != nil {
			cp.Multi = make(map[string]bool, len(picked.Multi))
			for id := range picked.Multi {
				cp.Multi[id] = true
			}
		}
		out[optID] = cp
	}
	return out
}

// IsVisible reports whether an option is currently shown. Options with
// no conditional rule are always visible; conditional ones only when
// the parent single-choice option resolves to the referenced choice.
func IsVisible(opt *menu.Option, sel Selection) bool {
	if opt.Condition == nil {
		return true
	}
	picked, ok := sel[opt.Condition.DependsOnOptionID]
	if !ok {
		return false
	}
	return picked.Single == opt.Condition.DependsOnChoiceID
}

// ApplyChoice resolves a single-choice option to the given choice,
// then clears any selections hidden by the change.
func ApplyChoice(item *menu.Item, sel Selection, optionID, choiceID string) error {
	opt, ok := item.Option(optionID)
	if !ok {
		return fmt.Errorf("unknown option %s", optionID)
	}
	if opt.Type != menu.SingleChoice {
		return errors.New("ApplyChoice requires a single-choice option")
	}
	if _, ok := opt.Choice(choiceID); !ok {
		return fmt.Errorf("unknown choice %s for option %s", choiceID, optionID)
	}

	sel[optionID] = Picked{Single: choiceID}
	Recompute(item, sel)
	return nil
}

// ToggleChoice adds or removes one choice of a multi-choice option,
// then clears any selections hidden by the change.
func ToggleChoice(item *menu.Item, sel Selection, optionID, choiceID string) error {
	opt, ok := item.Option(optionID)
	if !ok {
		return fmt.Errorf("unknown option %s", optionID)
	}
	if opt.Type != menu.MultiChoice {
		return errors.New("ToggleChoice requires a multi-choice option")
	}
	if _, ok := opt.Choice(choiceID); !ok {
		return fmt.Errorf("unknown choice %s for option %s", choiceID, optionID)
	}

	picked := sel[optionID]
	if picked.Multi == nil {
		picked.Multi = make(map[string]bool)
	}
	if picked.Multi[choiceID] {
		delete(picked.Multi, choiceID)
	} else {
		picked.Multi[choiceID] = true
	}
	if len(picked.Multi) == 0 {
		delete(sel, optionID)
	} else {
		sel[optionID] = picked
	}

	Recompute(item, sel)
	return nil
}

// Recompute drops every selection entry whose option is no longer
// visible. Runs to a fixpoint so a cleared parent also clears its
// transitive dependents, regardless of declaration distance.
func Recompute(item *menu.Item, sel Selection) {
	for {
		changed := false
		for i := range item.Options {
			opt := &item.Options[i]
			if _, has := sel[opt.ID]; !has {
				continue
			}
			if !IsVisible(opt, sel) {
				delete(sel, opt.ID)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// SelectionsEqual compares two selections structurally: same option
// ids, same resolved choice per single-choice option, same choice SET
// per multi-choice option (order never matters).
func SelectionsEqual(a, b Selection) bool {
	if len(a) != len(b) {
		return false
	}
	for optID, pa := range a {
		pb, ok := b[optID]
		if !ok {
			return false
		}
		if pa.Single != pb.Single {
			return false
		}
		if len(pa.Multi) != len(pb.Multi) {
			return false
		}
		for choiceID := range pa.Multi {
			if !pb.Multi[choiceID] {
				return false
			}
		}
	}
	return true
}
