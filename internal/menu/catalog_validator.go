package menu

import "fmt"

// ValidateCatalog rejects catalogs whose conditional rules cannot be
// resolved: a rule must reference a single-choice option that appears
// EARLIER in the same item's option list (no forward or cyclic
// dependencies), and the referenced choice must exist on it.
func ValidateCatalog(c *Catalog) error {
	for i := range c.Items {
		if err := validateItem(&c.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateItem(item *Item) error {
	seen := make(map[string]*Option, len(item.Options))

	for idx := range item.Options {
		opt := &item.Options[idx]

		if _, dup := seen[opt.ID]; dup {
			return fmt.Errorf("item %s: duplicate option id %s", item.ID, opt.ID)
		}

		if opt.Type != SingleChoice && opt.Type != MultiChoice {
			return fmt.Errorf("item %s: option %s has unknown type %q", item.ID, opt.ID, opt.Type)
		}

		if rule := opt.Condition; rule != nil {
			parent, ok := seen[rule.DependsOnOptionID]
			if !ok {
				return fmt.Errorf(
					"item %s: option %s depends on %s which is missing or declared later",
					item.ID, opt.ID, rule.DependsOnOptionID,
				)
			}
			if parent.Type != SingleChoice {
				return fmt.Errorf(
					"item %s: option %s depends on multi-choice option %s",
					item.ID, opt.ID, parent.ID,
				)
			}
			if _, ok := parent.Choice(rule.DependsOnChoiceID); !ok {
				return fmt.Errorf(
					"item %s: option %s depends on unknown choice %s of option %s",
					item.ID, opt.ID, rule.DependsOnChoiceID, parent.ID,
				)
			}
		}

		seen[opt.ID] = opt
	}
	return nil
}
