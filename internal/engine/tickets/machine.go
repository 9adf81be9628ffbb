package tickets

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"posflow/internal/engine/orders"
	"posflow/internal/pkg/metrics"
	"posflow/internal/platform/models"
)

type TicketStore interface {
	GetTicketByPosOrderID(posOrderID string) (*models.KitchenTicket, error)
	ActiveShortcodes(locationID string) ([]string, error)
	CreateTicket(ticket *models.KitchenTicket) error
	MarkTicketDead(posOrderID, locationID string) (bool, error)
}

// Machine drives the ticket lifecycle: none -> active -> dead, never back.
// A canceled order that reopens is a new order lifecycle upstream.
type Machine struct {
	store TicketStore
}

func NewMachine(store TicketStore) *Machine {
	return &Machine{store: store}
}

// Apply evaluates the reconciled order against the ticket state. The dead
// check runs on every update, not only at creation, because a void can arrive
// after the ticket is already on the board.
func (m *Machine) Apply(order *orders.CanonicalOrder, posOrderID, locationID string) error {
	if orders.IsDead(order) {
		terminated, err := m.store.MarkTicketDead(posOrderID, locationID)
		if err != nil {
			return fmt.Errorf("mark ticket dead: %w", err)
		}
		if terminated {
			metrics.TicketsDeadTotal.Inc()
		}
		return nil
	}

	if order.Status != orders.StatusOpen {
		return nil
	}

	existing, err := m.store.GetTicketByPosOrderID(posOrderID)
	if err != nil {
		return fmt.Errorf("lookup ticket: %w", err)
	}
	if existing != nil {
		return nil
	}

	active, err := m.store.ActiveShortcodes(locationID)
	if err != nil {
		return fmt.Errorf("list active shortcodes: %w", err)
	}

	ticket := &models.KitchenTicket{
		ID:         "tkt_" + uuid.New().String(),
		PosOrderID: posOrderID,
		LocationID: locationID,
		Shortcode:  Assign(order.Source, active),
		Status:     models.TicketStatusActive,
		PlacedAt:   time.Now().Unix(),
	}

	if err := m.store.CreateTicket(ticket); err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	metrics.TicketsOpenedTotal.Inc()
	return nil
}
