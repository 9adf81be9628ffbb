package webhooks

import (
	"context"

	"github.com/rs/zerolog"
	"posflow/internal/engine/orders"
	"posflow/internal/engine/tickets"
	"posflow/internal/platform/models"
)

// Outcome is the result of one unit of work. Only Retry asks the queue to
// redeliver; classification-level conditions complete as NoOp and are final.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeNoOp
	OutcomeRetry
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNoOp:
		return "noop"
	case OutcomeRetry:
		return "retry"
	default:
		return "unknown"
	}
}

type DataClient interface {
	GetVendorLocationByExternalID(provider, externalLocationID string) (*models.VendorLocation, error)
	GetVendorByID(id string) (*models.Vendor, error)
	GetVendorIntegration(vendorID, provider, environment string) (*models.ProviderIntegration, error)
	ReceiveEvent(receipt *models.WebhookEventReceipt) (bool, error)
	MarkEventProcessed(provider, eventID string) error
}

// Processor runs one webhook event end to end: admission, identity
// resolution, adapter fetch, reconciliation, ticket step. Every step failure
// past admission aborts the rest so nothing later half-commits; redelivery
// reprocesses from scratch against idempotent upserts.
type Processor struct {
	log         zerolog.Logger
	data        DataClient
	adapters    *orders.Registry
	reconciler  *orders.Reconciler
	tickets     *tickets.Machine
	environment string
}

func NewProcessor(log zerolog.Logger, data DataClient, adapters *orders.Registry, reconciler *orders.Reconciler, machine *tickets.Machine, environment string) *Processor {
	return &Processor{
		log:         log,
		data:        data,
		adapters:    adapters,
		reconciler:  reconciler,
		tickets:     machine,
		environment: environment,
	}
}

func (p *Processor) Process(ctx context.Context, provider string, payload []byte, receivedAt int64) (Outcome, error) {
	evt, class, err := Classify(provider, payload)
	if err != nil {
		// Malformed payloads are final: redelivering the same bytes
		// cannot fix them.
		p.log.Warn().Str("provider", provider).Err(err).Msg("discarding malformed webhook payload")
		return OutcomeNoOp, nil
	}

	switch class {
	case Irrelevant:
		p.log.Debug().Str("provider", provider).Msg("ignoring non-order webhook event")
		return OutcomeNoOp, nil
	case MissingIdentity:
		p.log.Warn().Str("provider", provider).Msg("discarding webhook event without merchant or order identity")
		return OutcomeNoOp, nil
	}

	log := p.log.With().
		Str("provider", evt.Provider).
		Str("event_id", evt.EventID).
		Str("event_type", evt.EventType).
		Str("external_order_id", evt.ExternalOrderID).
		Logger()

	alreadyProcessed, err := p.data.ReceiveEvent(&models.WebhookEventReceipt{
		Provider:   evt.Provider,
		EventID:    evt.EventID,
		EventType:  evt.EventType,
		ObjectID:   evt.ExternalOrderID,
		ReceivedAt: receivedAt,
	})
	if err != nil {
		return OutcomeRetry, err
	}
	if alreadyProcessed {
		log.Debug().Msg("duplicate webhook event, already processed")
		return OutcomeNoOp, nil
	}

	location, err := p.data.GetVendorLocationByExternalID(evt.Provider, evt.ExternalLocationID)
	if err != nil {
		return OutcomeRetry, err
	}
	if location == nil {
		log.Info().Str("external_location_id", evt.ExternalLocationID).Msg("unknown location, discarding event")
		return OutcomeNoOp, nil
	}

	vendor, err := p.data.GetVendorByID(location.VendorID)
	if err != nil {
		return OutcomeRetry, err
	}
	if vendor == nil {
		log.Warn().Str("vendor_id", location.VendorID).Msg("location references unknown vendor, discarding event")
		return OutcomeNoOp, nil
	}

	integration, err := p.data.GetVendorIntegration(vendor.ID, evt.Provider, p.environment)
	if err != nil {
		return OutcomeRetry, err
	}
	if integration == nil {
		log.Warn().Str("vendor_id", vendor.ID).Str("environment", p.environment).Msg("no active integration credentials, discarding event")
		return OutcomeNoOp, nil
	}

	adapter, err := p.adapters.Adapter(evt.Provider, integration)
	if err != nil {
		return OutcomeRetry, err
	}
	if adapter == nil {
		log.Warn().Msg("no adapter registered for provider, discarding event")
		return OutcomeNoOp, nil
	}

	order, err := adapter.FetchOrder(ctx, evt.ExternalOrderID)
	if err != nil {
		return OutcomeRetry, err
	}
	if order == nil {
		log.Warn().Msg("provider reported an event for an order it cannot retrieve")
		return OutcomeNoOp, nil
	}

	posOrderID, err := p.reconciler.Reconcile(order, vendor, location)
	if err != nil {
		return OutcomeRetry, err
	}

	if err := p.tickets.Apply(order, posOrderID, location.ID); err != nil {
		return OutcomeRetry, err
	}

	if err := p.data.MarkEventProcessed(evt.Provider, evt.EventID); err != nil {
		return OutcomeRetry, err
	}

	log.Info().Str("pos_order_id", posOrderID).Str("status", order.Status).Msg("webhook event reconciled")
	return OutcomeSuccess, nil
}
