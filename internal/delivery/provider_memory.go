package delivery

import (
	"context"
	"strings"
)

// Zone is one deliverable postcode prefix for the in-memory provider.
type Zone struct {
	Prefix   string
	Fee      int
	MinOrder int
}

type InMemoryProvider struct {
	Zones []Zone
	Err   error
}

func NewInMemoryProvider(zones ...Zone) *InMemoryProvider {
	return &InMemoryProvider{Zones: zones}
}

func (p *InMemoryProvider) Quote(
	ctx context.Context,
	postcode string,
	subtotalMinorUnits int,
) (*Quote, error) {

	if p.Err != nil {
		return nil, p.Err
	}

	normalized := NormalizePostcode(postcode)
	for _, z := range p.Zones {
		if strings.HasPrefix(normalized, NormalizePostcode(z.Prefix)) {
			return &Quote{
				Postcode:           normalized,
				IsDeliverable:      true,
				FeeMinorUnits:      z.Fee,
				MinOrderMinorUnits: z.MinOrder,
			}, nil
		}
	}

	return &Quote{
		Postcode:      normalized,
		IsDeliverable: false,
		Reason:        "outside delivery area",
	}, nil
}
