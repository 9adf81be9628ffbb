package repositories

import (
	"database/sql"
	"time"

	"posflow/internal/platform/models"
)

type KitchenTicketRepository struct {
	db *sql.DB
}

func NewKitchenTicketRepository(db *sql.DB) *KitchenTicketRepository {
	return &KitchenTicketRepository{db: db}
}

func (r *KitchenTicketRepository) GetByPosOrderID(posOrderID string) (*models.KitchenTicket, error) {
	ticket := &models.KitchenTicket{}
	err := r.db.QueryRow(`
		SELECT id, pos_order_id, location_id, shortcode, status, placed_at, closed_at
		FROM kitchen_tickets WHERE pos_order_id = ?
	`, posOrderID).Scan(&ticket.ID, &ticket.PosOrderID, &ticket.LocationID, &ticket.Shortcode, &ticket.Status, &ticket.PlacedAt, &ticket.ClosedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return ticket, nil
}

// ActiveShortcodes returns the display codes currently held by active tickets
// at a location. Dead tickets are excluded, which is what frees their codes.
func (r *KitchenTicketRepository) ActiveShortcodes(locationID string) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT shortcode FROM kitchen_tickets WHERE location_id = ? AND status = 'active'
	`, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// Create inserts a ticket. The INSERT OR IGNORE on pos_order_id makes the
// ensure step idempotent under concurrent redelivery of the same order.
func (r *KitchenTicketRepository) Create(ticket *models.KitchenTicket) error {
	_, err := r.db.Exec(`
		INSERT OR IGNORE INTO kitchen_tickets (id, pos_order_id, location_id, shortcode, status, placed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ticket.ID, ticket.PosOrderID, ticket.LocationID, ticket.Shortcode, ticket.Status, ticket.PlacedAt)
	return err
}

// MarkDead terminates the ticket for a dead order. Tickets are never deleted
// and never return to active. A missing or already-dead ticket is a no-op, and
// the return reports whether a ticket actually transitioned.
func (r *KitchenTicketRepository) MarkDead(posOrderID, locationID string) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE kitchen_tickets SET status = 'dead', closed_at = ?
		WHERE pos_order_id = ? AND location_id = ? AND status = 'active'
	`, time.Now().Unix(), posOrderID, locationID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
