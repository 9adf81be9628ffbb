package orders

import (
	"encoding/json"
	"testing"

	"posflow/internal/platform/models"
)

type mockOrderStore struct {
	rows map[string]*models.PosOrder // keyed by composite identity
}

func newMockOrderStore() *mockOrderStore {
	return &mockOrderStore{rows: make(map[string]*models.PosOrder)}
}

func (m *mockOrderStore) UpsertPosOrder(order *models.PosOrder) (string, error) {
	key := order.Provider + "|" + order.VendorID + "|" + order.VendorLocationID + "|" + order.ExternalOrderID
	if existing, ok := m.rows[key]; ok {
		existing.Status = order.Status
		existing.Source = order.Source
		existing.OrderJSON = order.OrderJSON
		return existing.ID, nil
	}
	order.ID = "ord_" + key
	m.rows[key] = order
	return order.ID, nil
}

func TestReconciler_UpsertIdentity(t *testing.T) {
	store := newMockOrderStore()
	reconciler := NewReconciler(store)

	vendor := &models.Vendor{ID: "ven_1"}
	location := &models.VendorLocation{ID: "loc_1", VendorID: "ven_1", Provider: "square"}

	order := &CanonicalOrder{
		ExternalID: "SQ_ORDER_1",
		LocationID: "EXT_LOC_1",
		Status:     StatusOpen,
		Source:     SourceSquarePOS,
	}

	id1, err := reconciler.Reconcile(order, vendor, location)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Same canonical order again: same row, no duplicate
	id2, err := reconciler.Reconcile(order, vendor, location)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id1 != id2 {
		t.Errorf("Expected stable id across reconciles, got %s then %s", id1, id2)
	}
	if len(store.rows) != 1 {
		t.Errorf("Expected one row, got %d", len(store.rows))
	}
}

func TestReconciler_LastWriteWins(t *testing.T) {
	store := newMockOrderStore()
	reconciler := NewReconciler(store)

	vendor := &models.Vendor{ID: "ven_1"}
	location := &models.VendorLocation{ID: "loc_1", VendorID: "ven_1", Provider: "square"}

	open := &CanonicalOrder{ExternalID: "SQ_ORDER_1", Status: StatusOpen, Source: SourceSquarePOS}
	if _, err := reconciler.Reconcile(open, vendor, location); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	canceled := &CanonicalOrder{ExternalID: "SQ_ORDER_1", Status: StatusCanceled, Source: SourceSquarePOS}
	id, err := reconciler.Reconcile(canceled, vendor, location)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	row := store.rows["square|ven_1|loc_1|SQ_ORDER_1"]
	if row == nil || row.ID != id {
		t.Fatal("Expected the same row to be updated")
	}
	if row.Status != StatusCanceled {
		t.Errorf("Expected status canceled after update, got %s", row.Status)
	}

	var stored CanonicalOrder
	if err := json.Unmarshal([]byte(row.OrderJSON), &stored); err != nil {
		t.Fatalf("order_json is not a canonical order: %v", err)
	}
	if stored.Status != StatusCanceled {
		t.Errorf("Expected serialized snapshot to carry canceled, got %s", stored.Status)
	}
}
