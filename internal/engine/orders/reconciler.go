package orders

import (
	"encoding/json"
	"fmt"

	"posflow/internal/platform/models"
)

type OrderStore interface {
	UpsertPosOrder(order *models.PosOrder) (string, error)
}

// Reconciler upserts canonical orders into pos_orders. Last write wins by
// event arrival order; the store's keyed upsert is the only mutual exclusion.
type Reconciler struct {
	store OrderStore
}

func NewReconciler(store OrderStore) *Reconciler {
	return &Reconciler{store: store}
}

func (r *Reconciler) Reconcile(order *CanonicalOrder, vendor *models.Vendor, location *models.VendorLocation) (string, error) {
	orderJSON, err := json.Marshal(order)
	if err != nil {
		return "", fmt.Errorf("serialize canonical order: %w", err)
	}

	record := &models.PosOrder{
		Provider:         location.Provider,
		VendorID:         vendor.ID,
		VendorLocationID: location.ID,
		ExternalOrderID:  order.ExternalID,
		Status:           order.Status,
		Source:           order.Source,
		OrderJSON:        string(orderJSON),
	}

	id, err := r.store.UpsertPosOrder(record)
	if err != nil {
		return "", fmt.Errorf("upsert pos order: %w", err)
	}
	return id, nil
}
