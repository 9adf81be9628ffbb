package tickets

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"posflow/internal/engine/orders"
	"posflow/internal/pkg/metrics"
	"posflow/internal/platform/models"
)

type mockTicketStore struct {
	tickets map[string]*models.KitchenTicket // keyed by pos order id
}

func newMockTicketStore() *mockTicketStore {
	return &mockTicketStore{tickets: make(map[string]*models.KitchenTicket)}
}

func (m *mockTicketStore) GetTicketByPosOrderID(posOrderID string) (*models.KitchenTicket, error) {
	return m.tickets[posOrderID], nil
}

func (m *mockTicketStore) ActiveShortcodes(locationID string) ([]string, error) {
	var codes []string
	for _, t := range m.tickets {
		if t.LocationID == locationID && t.Status == models.TicketStatusActive {
			codes = append(codes, t.Shortcode)
		}
	}
	return codes, nil
}

func (m *mockTicketStore) CreateTicket(ticket *models.KitchenTicket) error {
	if _, exists := m.tickets[ticket.PosOrderID]; exists {
		return nil // INSERT OR IGNORE semantics
	}
	m.tickets[ticket.PosOrderID] = ticket
	return nil
}

func (m *mockTicketStore) MarkTicketDead(posOrderID, locationID string) (bool, error) {
	if t, ok := m.tickets[posOrderID]; ok && t.Status == models.TicketStatusActive {
		t.Status = models.TicketStatusDead
		now := time.Now().Unix()
		t.ClosedAt = &now
		return true, nil
	}
	return false, nil
}

func TestMachine_OpenOrderCreatesTicket(t *testing.T) {
	store := newMockTicketStore()
	machine := NewMachine(store)

	order := &orders.CanonicalOrder{Status: orders.StatusOpen, Source: orders.SourceSquarePOS}

	if err := machine.Apply(order, "ord_1", "loc_1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ticket := store.tickets["ord_1"]
	if ticket == nil {
		t.Fatal("Expected ticket to be created")
	}
	if ticket.Status != models.TicketStatusActive {
		t.Errorf("Expected active ticket, got %s", ticket.Status)
	}
	if ticket.Shortcode != "1" {
		t.Errorf("Expected shortcode 1, got %s", ticket.Shortcode)
	}
}

func TestMachine_ApplyTwiceCreatesOneTicket(t *testing.T) {
	store := newMockTicketStore()
	machine := NewMachine(store)

	order := &orders.CanonicalOrder{Status: orders.StatusOpen, Source: orders.SourceSquarePOS}

	if err := machine.Apply(order, "ord_1", "loc_1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := machine.Apply(order, "ord_1", "loc_1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(store.tickets) != 1 {
		t.Errorf("Expected exactly one ticket, got %d", len(store.tickets))
	}
	if store.tickets["ord_1"].Shortcode != "1" {
		t.Errorf("Expected shortcode 1 to be kept, got %s", store.tickets["ord_1"].Shortcode)
	}
}

func TestMachine_DeadOrderTerminatesTicket(t *testing.T) {
	store := newMockTicketStore()
	machine := NewMachine(store)

	open := &orders.CanonicalOrder{Status: orders.StatusOpen, Source: orders.SourceSquarePOS}
	if err := machine.Apply(open, "ord_1", "loc_1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	voided := &orders.CanonicalOrder{Status: orders.StatusOpen, Raw: orders.RawProviderState{State: "voided"}}
	if err := machine.Apply(voided, "ord_1", "loc_1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if store.tickets["ord_1"].Status != models.TicketStatusDead {
		t.Errorf("Expected dead ticket, got %s", store.tickets["ord_1"].Status)
	}
}

func TestMachine_DeadTicketFreesShortcode(t *testing.T) {
	store := newMockTicketStore()
	machine := NewMachine(store)

	first := &orders.CanonicalOrder{Status: orders.StatusOpen, Source: orders.SourceSquarePOS}
	if err := machine.Apply(first, "ord_1", "loc_1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	canceled := &orders.CanonicalOrder{Status: orders.StatusCanceled}
	if err := machine.Apply(canceled, "ord_1", "loc_1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	second := &orders.CanonicalOrder{Status: orders.StatusOpen, Source: orders.SourceSquarePOS}
	if err := machine.Apply(second, "ord_2", "loc_1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if store.tickets["ord_2"].Shortcode != "1" {
		t.Errorf("Expected freed shortcode 1 to be reused, got %s", store.tickets["ord_2"].Shortcode)
	}
}

func TestMachine_DeadCounterCountsOnlyTransitions(t *testing.T) {
	store := newMockTicketStore()
	machine := NewMachine(store)

	before := testutil.ToFloat64(metrics.TicketsDeadTotal)

	// Dead evaluation with no ticket on the board
	voided := &orders.CanonicalOrder{Status: orders.StatusOpen, Raw: orders.RawProviderState{State: "voided"}}
	if err := machine.Apply(voided, "ord_1", "loc_1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := testutil.ToFloat64(metrics.TicketsDeadTotal); got != before {
		t.Errorf("Expected counter unchanged without a ticket, got %v -> %v", before, got)
	}

	open := &orders.CanonicalOrder{Status: orders.StatusOpen, Source: orders.SourceSquarePOS}
	if err := machine.Apply(open, "ord_1", "loc_1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if err := machine.Apply(voided, "ord_1", "loc_1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := testutil.ToFloat64(metrics.TicketsDeadTotal); got != before+1 {
		t.Errorf("Expected counter to advance once, got %v -> %v", before, got)
	}

	// Redelivery of the void does not count a second termination
	if err := machine.Apply(voided, "ord_1", "loc_1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := testutil.ToFloat64(metrics.TicketsDeadTotal); got != before+1 {
		t.Errorf("Expected counter to stay after redelivered void, got %v -> %v", before, got)
	}
}

func TestMachine_NonOpenOrderCreatesNothing(t *testing.T) {
	store := newMockTicketStore()
	machine := NewMachine(store)

	order := &orders.CanonicalOrder{Status: orders.StatusDraft, Source: orders.SourceSquarePOS}
	if err := machine.Apply(order, "ord_1", "loc_1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(store.tickets) != 0 {
		t.Errorf("Expected no ticket for draft order, got %d", len(store.tickets))
	}
}
