package domain

import (
	"strings"
	"time"
)

// Product carries the catalog snapshot handed to the cart at add time.
// The catalog collaborator owns the authoritative price; the cart captures it
// once and never re-queries it.
type Product struct {
	ID       string
	Name     string
	ImageURL string
	Category string
	Price    int64
}

// LineKey identifies a cart line. At most one line exists per key.
type LineKey struct {
	ProductID  string
	VariantKey string
}

// Normalise trims both components and returns the cleaned key.
func (k LineKey) Normalise() LineKey {
	return LineKey{
		ProductID:  strings.TrimSpace(k.ProductID),
		VariantKey: strings.TrimSpace(k.VariantKey),
	}
}

// Valid reports whether the key can address a cart line.
func (k LineKey) Valid() bool {
	return strings.TrimSpace(k.ProductID) != ""
}

// LineItem is one purchasable row in the cart. Display fields are
// denormalised copies taken at add time so a persisted cart renders without a
// catalog refetch. UnitPrice is the minor-unit price captured when the line
// was created and is never recomputed.
type LineItem struct {
	ProductID  string    `json:"productId"`
	VariantKey string    `json:"variantKey"`
	Quantity   int       `json:"quantity"`
	UnitPrice  int64     `json:"unitPrice"`
	Name       string    `json:"name"`
	ImageURL   string    `json:"image,omitempty"`
	Category   string    `json:"category,omitempty"`
	AddedAt    time.Time `json:"addedAt"`
}

// Key returns the identity of the line.
func (l LineItem) Key() LineKey {
	return LineKey{ProductID: l.ProductID, VariantKey: l.VariantKey}
}

// LineTotal returns quantity times the captured unit price in minor units.
func (l LineItem) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// WishlistItem is a denormalised product snapshot keyed solely by ProductID.
// There is deliberately no refresh path: a favourite keeps the name, image
// and price it had when it was added.
type WishlistItem struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image,omitempty"`
	Category  string    `json:"category,omitempty"`
	UnitPrice int64     `json:"unitPrice"`
	AddedAt   time.Time `json:"addedAt"`
}

// Address holds buyer-entered delivery or billing details.
type Address struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	District   string `json:"district,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// DraftStatus enumerates the lifecycle states of an order draft.
type DraftStatus string

const (
	// DraftStatusDrafted indicates the snapshot was built and awaits submission.
	DraftStatusDrafted DraftStatus = "drafted"
	// DraftStatusSubmitted indicates the order-creation collaborator accepted the draft.
	DraftStatusSubmitted DraftStatus = "submitted"
	// DraftStatusCleared indicates the draft was released after submission or cancellation.
	DraftStatusCleared DraftStatus = "cleared"
)

// DraftSource records which flow produced the snapshot.
type DraftSource string

const (
	// DraftSourceCart marks a snapshot of the full cart.
	DraftSourceCart DraftSource = "cart"
	// DraftSourceBuyNow marks a snapshot of a single caller-supplied item.
	DraftSourceBuyNow DraftSource = "buyNow"
)

// OrderDraft is an immutable checkout snapshot. Totals are computed once at
// build time; later cart mutations never touch an existing draft.
type OrderDraft struct {
	ID             string      `json:"id"`
	Source         DraftSource `json:"source"`
	Status         DraftStatus `json:"status"`
	Items          []LineItem  `json:"items"`
	Currency       string      `json:"currency"`
	Subtotal       int64       `json:"subtotal"`
	ShippingCost   int64       `json:"shippingCost"`
	EstimatedTaxes int64       `json:"estimatedTaxes"`
	Total          int64       `json:"total"`
	ShippingMethod string      `json:"shippingMethod"`
	PaymentMethod  string      `json:"paymentMethod,omitempty"`
	ShippingAddr   *Address    `json:"shippingAddress,omitempty"`
	BillingAddr    *Address    `json:"billingAddress,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// Clone returns a deep copy of the draft so callers can hand it out without
// exposing the holder's internal state.
func (d OrderDraft) Clone() OrderDraft {
	out := d
	if d.Items != nil {
		out.Items = make([]LineItem, len(d.Items))
		copy(out.Items, d.Items)
	}
	if d.ShippingAddr != nil {
		addr := *d.ShippingAddr
		out.ShippingAddr = &addr
	}
	if d.BillingAddr != nil {
		addr := *d.BillingAddr
		out.BillingAddr = &addr
	}
	return out
}
