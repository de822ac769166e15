package menu

import "testing"

func validCatalog() *Catalog {
	return &Catalog{
		Categories: []Category{{ID: "mains", Name: "Mains"}},
		Items: []Item{
			{
				ID:         "pizza-1",
				CategoryID: "mains",
				Name:       "Margherita",
				BasePrice:  850,
				Options: []Option{
					{
						ID:   "size",
						Name: "Size",
						Type: SingleChoice,
						Choices: []Choice{
							{ID: "ten", Name: `10"`},
							{ID: "twelve", Name: `12"`, PriceDelta: 200},
						},
					},
					{
						ID:   "stuffed-crust",
						Name: "Stuffed Crust",
						Type: SingleChoice,
						Choices: []Choice{
							{ID: "cheese", Name: "Cheese", PriceDelta: 150},
						},
						Condition: &ConditionalRule{
							DependsOnOptionID: "size",
							DependsOnChoiceID: "twelve",
						},
					},
				},
			},
		},
	}
}

func TestValidCatalogPasses(t *testing.T) {
	if err := ValidateCatalog(validCatalog()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestForwardDependencyRejected(t *testing.T) {
	c := validCatalog()
	opts := c.Items[0].Options
	// Swap so the dependent option comes first.
	opts[0], opts[1] = opts[1], opts[0]

	if err := ValidateCatalog(c); err == nil {
		t.Fatal("forward dependency should be rejected")
	}
}

func TestDependencyOnMultiChoiceRejected(t *testing.T) {
	c := validCatalog()
	c.Items[0].Options[0].Type = MultiChoice

	if err := ValidateCatalog(c); err == nil {
		t.Fatal("dependency on a multi-choice option should be rejected")
	}
}

func TestDependencyOnUnknownChoiceRejected(t *testing.T) {
	c := validCatalog()
	c.Items[0].Options[1].Condition.DependsOnChoiceID = "sixteen"

	if err := ValidateCatalog(c); err == nil {
		t.Fatal("dependency on an unknown choice should be rejected")
	}
}

func TestDuplicateOptionIDRejected(t *testing.T) {
	c := validCatalog()
	c.Items[0].Options[1].ID = "size"
	c.Items[0].Options[1].Condition = nil

	if err := ValidateCatalog(c); err == nil {
		t.Fatal("duplicate option id should be rejected")
	}
}
