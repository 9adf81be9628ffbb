package orders

import "time"

const (
	StatusOpen     = "open"
	StatusClosed   = "closed"
	StatusCanceled = "canceled"
	StatusDraft    = "draft"
)

const (
	SourceSquarePOS       = "square_pos"
	SourceCountrtopOnline = "countrtop_online"
)

// CanonicalOrder is the provider-agnostic order snapshot produced by an
// adapter. Adapters normalize at their boundary; nothing past this type is
// provider-shaped except Raw, which is retained for the dead-order heuristics.
type CanonicalOrder struct {
	ExternalID string            `json:"external_id"`
	LocationID string            `json:"location_id"`
	Status     string            `json:"status"`
	Source     string            `json:"source"`
	Items      []CanonicalItem   `json:"items"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Raw        RawProviderState  `json:"raw"`
	CreatedAt  time.Time         `json:"created_at"`
}

type CanonicalItem struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Note       string `json:"note,omitempty"`
	PriceCents int64  `json:"price_cents"`
}

// RawProviderState is the normalized slice of the raw provider payload that
// the dead-order predicate inspects. Adapters fill it with explicit fields;
// untyped maps never cross into the engine.
type RawProviderState struct {
	State    string          `json:"state,omitempty"`
	Payments []PaymentResult `json:"payments,omitempty"`
}

type PaymentResult struct {
	Result string `json:"result,omitempty"`
}
