package pricing

import (
	"fmt"
	"strings"

	"tiffin/internal/menu"
)

// LineItem is a priced, configured cart entry. UnitPrice is always the
// product of the current selection against the item's option tree;
// Selection is kept so identical configurations can be merged.
type LineItem struct {
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	UnitPrice int       `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Summary   []string  `json:"summary"`
	Selection Selection `json:"-"`
}

// ValidationError reports unresolved required options, keyed by
// option id.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		parts = append(parts, field)
	}
	return "unresolved required options: " + strings.Join(parts, ", ")
}

// ComputeUnitPrice is base price plus the deltas of every selected
// choice on a currently VISIBLE option. Hidden options contribute
// nothing even if the selection still carried an entry for them.
func ComputeUnitPrice(item *menu.Item, sel Selection) int {
	price := item.BasePrice

	for i := range item.Options {
		opt := &item.Options[i]
		if !IsVisible(opt, sel) {
			continue
		}
		picked, ok := sel[opt.ID]
		if !ok {
			continue
		}

		switch opt.Type {
		case menu.SingleChoice:
			if ch, ok := opt.Choice(picked.Single); ok {
				price += ch.PriceDelta
			}
		case menu.MultiChoice:
			for j := range opt.Choices {
				if picked.Multi[opt.Choices[j].ID] {
					price += opt.Choices[j].PriceDelta
				}
			}
		}
	}

	return price
}

// BuildLineItem validates and prices a configured item. It fails with
// *ValidationError when a VISIBLE required option is unresolved;
// hidden required options never block.
func BuildLineItem(item *menu.Item, sel Selection, qty int) (LineItem, error) {
	if qty < 1 {
		qty = 1
	}

	missing := make(map[string]string)
	for i := range item.Options {
		opt := &item.Options[i]
		if !opt.Required || !IsVisible(opt, sel) {
			continue
		}
		if !resolved(opt, sel) {
			missing[opt.ID] = fmt.Sprintf("%s is required", opt.Name)
		}
	}
	if len(missing) > 0 {
		return LineItem{}, &ValidationError{Fields: missing}
	}

	return LineItem{
		ItemID:    item.ID,
		ItemName:  item.Name,
		UnitPrice: ComputeUnitPrice(item, sel),
		Quantity:  qty,
		Summary:   buildSummary(item, sel),
		Selection: sel.Clone(),
	}, nil
}

func resolved(opt *menu.Option, sel Selection) bool {
	picked, ok := sel[opt.ID]
	if !ok {
		return false
	}
	switch opt.Type {
	case menu.SingleChoice:
		_, ok := opt.Choice(picked.Single)
		return ok
	case menu.MultiChoice:
		return len(picked.Multi) > 0
	}
	return false
}

// buildSummary renders "OptionName: ChoiceName" lines in option order,
// multi-choice entries in the option's own choice order.
func buildSummary(item *menu.Item, sel Selection) []string {
	var summary []string

	for i := range item.Options {
		opt := &item.Options[i]
		if !IsVisible(opt, sel) {
			continue
		}
		picked, ok := sel[opt.ID]
		if !ok {
			continue
		}

		switch opt.Type {
		case menu.SingleChoice:
			if ch, ok := opt.Choice(picked.Single); ok {
				summary = append(summary, opt.Name+": "+ch.Name)
			}
		case menu.MultiChoice:
			for j := range opt.Choices {
				if picked.Multi[opt.Choices[j].ID] {
					summary = append(summary, opt.Name+": "+opt.Choices[j].Name)
				}
			}
		}
	}

	return summary
}
