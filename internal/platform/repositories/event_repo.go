package repositories

import (
	"database/sql"

	"github.com/google/uuid"
	"posflow/internal/platform/models"
)

type EventReceiptRepository struct {
	db *sql.DB
}

func NewEventReceiptRepository(db *sql.DB) *EventReceiptRepository {
	return &EventReceiptRepository{db: db}
}

// Receive records the receipt if it is new and reports whether the event has
// already been fully processed. An existing but unprocessed receipt means an
// earlier attempt failed mid-flight and the event should run again.
func (r *EventReceiptRepository) Receive(receipt *models.WebhookEventReceipt) (bool, error) {
	if receipt.ID == "" {
		receipt.ID = "evt_" + uuid.New().String()
	}

	_, err := r.db.Exec(`
		INSERT OR IGNORE INTO webhook_event_receipts (id, provider, event_id, event_type, object_id, processed, received_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)
	`, receipt.ID, receipt.Provider, receipt.EventID, receipt.EventType, receipt.ObjectID, receipt.ReceivedAt)
	if err != nil {
		return false, err
	}

	var processed bool
	err = r.db.QueryRow(`
		SELECT processed FROM webhook_event_receipts WHERE provider = ? AND event_id = ?
	`, receipt.Provider, receipt.EventID).Scan(&processed)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return processed, nil
}

func (r *EventReceiptRepository) MarkProcessed(provider, eventID string) error {
	_, err := r.db.Exec(`
		UPDATE webhook_event_receipts SET processed = 1 WHERE provider = ? AND event_id = ?
	`, provider, eventID)
	return err
}
