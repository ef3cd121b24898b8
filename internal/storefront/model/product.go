package model

import "time"

// Product is an immutable catalog record.
type Product struct {
	ID       int     `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Price    float64 `json:"price" yaml:"price"`
	Image    string  `json:"image" yaml:"image"`
	Category string  `json:"category" yaml:"category"`
}

// Entry is a copy of a product stored in the cart or the wishlist. EntryID is
// generated on add and stays stable while positions shift.
type Entry struct {
	EntryID string     `json:"entryId,omitempty"`
	AddedAt *time.Time `json:"addedAt,omitempty"`
	Product
}

// NewEntry copies p into a fresh entry.
func NewEntry(entryID string, p Product, now time.Time) Entry {
	return Entry{EntryID: entryID, AddedAt: &now, Product: p}
}

// CartSummary is derived from the cart on every read and never stored.
type CartSummary struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}
