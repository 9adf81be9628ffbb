package webhooks

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Classification int

const (
	Admitted Classification = iota
	Irrelevant
	MissingIdentity
)

var ErrMalformedPayload = errors.New("malformed webhook payload")

// EventContext is the identity extracted from a provider envelope during
// admission. Admission is pure: no lookups, no side effects, so the noise
// (catalog pings, unrelated merchants) is rejected before any network call.
type EventContext struct {
	Provider           string
	EventID            string
	EventType          string
	ExternalLocationID string
	ExternalOrderID    string
}

// Classify parses the provider envelope and decides whether the event warrants
// processing. Unknown providers and non-order event types are Irrelevant;
// envelopes missing a delivery id, location, or order id are MissingIdentity.
func Classify(provider string, payload []byte) (*EventContext, Classification, error) {
	switch provider {
	case "square":
		return classifySquare(payload)
	case "clover":
		return classifyClover(payload)
	default:
		return nil, Irrelevant, nil
	}
}

type squareEnvelope struct {
	MerchantID string `json:"merchant_id"`
	LocationID string `json:"location_id"`
	EventID    string `json:"event_id"`
	Type       string `json:"type"`
	Data       struct {
		Type   string `json:"type"`
		ID     string `json:"id"`
		Object struct {
			OrderCreated       *squareOrderRef `json:"order_created"`
			OrderUpdated       *squareOrderRef `json:"order_updated"`
			FulfillmentUpdated *squareOrderRef `json:"order_fulfillment_updated"`
		} `json:"object"`
	} `json:"data"`
}

type squareOrderRef struct {
	OrderID    string `json:"order_id"`
	LocationID string `json:"location_id"`
	State      string `json:"state"`
}

func classifySquare(payload []byte) (*EventContext, Classification, error) {
	var env squareEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, Irrelevant, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	switch env.Type {
	case "order.created", "order.updated", "order.fulfillment.updated":
	default:
		return nil, Irrelevant, nil
	}

	ref := env.Data.Object.OrderCreated
	if env.Data.Object.OrderUpdated != nil {
		ref = env.Data.Object.OrderUpdated
	}
	if env.Data.Object.FulfillmentUpdated != nil {
		ref = env.Data.Object.FulfillmentUpdated
	}

	orderID := env.Data.ID
	locationID := env.LocationID
	if ref != nil {
		if ref.OrderID != "" {
			orderID = ref.OrderID
		}
		if ref.LocationID != "" {
			locationID = ref.LocationID
		}
	}

	// The event id keys receipt dedup, so its absence is an identity
	// failure like the rest.
	if env.MerchantID == "" || env.EventID == "" || locationID == "" || orderID == "" {
		return nil, MissingIdentity, nil
	}

	return &EventContext{
		Provider:           "square",
		EventID:            env.EventID,
		EventType:          env.Type,
		ExternalLocationID: locationID,
		ExternalOrderID:    orderID,
	}, Admitted, nil
}

type cloverEnvelope struct {
	AppID     string                         `json:"appId"`
	Merchants map[string][]cloverMerchantRef `json:"merchants"`
}

type cloverMerchantRef struct {
	ObjectID string `json:"objectId"`
	Type     string `json:"type"`
	TS       int64  `json:"ts"`
}

func classifyClover(payload []byte) (*EventContext, Classification, error) {
	var env cloverEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, Irrelevant, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	// Deliveries carry one entry per merchant in practice; take the first
	// order-object entry. The "O:" prefix marks orders, "I:" inventory etc.
	for merchantID, refs := range env.Merchants {
		for _, ref := range refs {
			if !strings.HasPrefix(ref.ObjectID, "O:") {
				continue
			}
			orderID := strings.TrimPrefix(ref.ObjectID, "O:")
			if merchantID == "" || orderID == "" {
				return nil, MissingIdentity, nil
			}
			return &EventContext{
				Provider:           "clover",
				EventID:            fmt.Sprintf("%s:%d", ref.ObjectID, ref.TS),
				EventType:          ref.Type,
				ExternalLocationID: merchantID,
				ExternalOrderID:    orderID,
			}, Admitted, nil
		}
	}

	if len(env.Merchants) == 0 {
		return nil, MissingIdentity, nil
	}
	return nil, Irrelevant, nil
}
