package cart

import (
	"errors"

	"tiffin/internal/pricing"
)

var ErrIndexOutOfRange = errors.New("line item index out of range")

// Ledger is an ordered multiset of priced line items. Removal and
// quantity changes never reorder surviving items; callers re-resolve
// indices after every mutation.
type Ledger struct {
	items []pricing.LineItem
	mode  string
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Add merges the new line into an existing one when the item id and
// the selection are structurally identical (multi-choice sets compared
// order-independently); otherwise it appends.
func (l *Ledger) Add(li pricing.LineItem) {
	for i := range l.items {
		if l.items[i].ItemID == li.ItemID &&
			pricing.SelectionsEqual(l.items[i].Selection, li.Selection) {
			l.items[i].Quantity += li.Quantity
			return
		}
	}
	l.items = append(l.items, li)
}

func (l *Ledger) Remove(index int) error {
	if index < 0 || index >= len(l.items) {
		return ErrIndexOutOfRange
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	return nil
}

// SetQuantity updates a line's quantity; qty <= 0 removes the line.
func (l *Ledger) SetQuantity(index, qty int) error {
	if index < 0 || index >= len(l.items) {
		return ErrIndexOutOfRange
	}
	if qty <= 0 {
		return l.Remove(index)
	}
	l.items[index].Quantity = qty
	return nil
}

// Subtotal is always recomputed from the lines, never cached.
func (l *Ledger) Subtotal() int {
	total := 0
	for i := range l.items {
		total += l.items[i].UnitPrice * l.items[i].Quantity
	}
	return total
}

func (l *Ledger) Total(deliveryFee int) int {
	return l.Subtotal() + deliveryFee
}

func (l *Ledger) Len() int {
	return len(l.items)
}

// Items returns a copy of the line sequence.
func (l *Ledger) Items() []pricing.LineItem {
	out := make([]pricing.LineItem, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Ledger) SetMode(mode string) {
	l.mode = mode
}

func (l *Ledger) Mode() string {
	return l.mode
}

func (l *Ledger) Clear() {
	l.items = nil
}
