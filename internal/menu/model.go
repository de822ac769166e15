package menu

// SelectionType says how many choices an option accepts.
type SelectionType string

const (
	SingleChoice SelectionType = "single"
	MultiChoice  SelectionType = "multi"
)

// Choice is one selectable value within an Option.
// PriceDelta is in minor currency units and may be negative.
type Choice struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceDelta int    `json:"price_delta"`
}

// ConditionalRule makes an option visible only when another
// single-choice option resolves to a specific choice.
type ConditionalRule struct {
	DependsOnOptionID string `json:"depends_on_option_id"`
	DependsOnChoiceID string `json:"depends_on_choice_id"`
}

// Option is a named axis of customization on a menu item.
type Option struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Type      SelectionType    `json:"type"`
	Required  bool             `json:"required"`
	Choices   []Choice         `json:"choices"`
	Condition *ConditionalRule `json:"condition,omitempty"`
}

// Item is a menu item with its configurable options, in display order.
// Immutable once loaded.
type Item struct {
	ID          string   `json:"id"`
	CategoryID  string   `json:"category_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	BasePrice   int      `json:"base_price"`
	Options     []Option `json:"options"`
}

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

// Catalog is the read-only menu snapshot served to the storefront.
type Catalog struct {
	Categories []Category `json:"categories"`
	Items      []Item     `json:"items"`
}

// Option returns the option with the given id.
func (i *Item) Option(id string) (*Option, bool) {
	for idx := range i.Options {
		if i.Options[idx].ID == id {
			return &i.Options[idx], true
		}
	}
	return nil, false
}

// Choice returns the choice with the given id on this option.
func (o *Option) Choice(id string) (*Choice, bool) {
	for idx := range o.Choices {
		if o.Choices[idx].ID == id {
			return &o.Choices[idx], true
		}
	}
	return nil, false
}
