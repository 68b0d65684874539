package services

import (
	"errors"
	"testing"

	"github.com/diewo77/invoice-api/internal/models"
	"github.com/diewo77/invoice-api/internal/store"
	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func uintPtr(n uint) *uint    { return &n }

func decPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return &d
}

func existingDetail(t *testing.T, id uint, description string, quantity int, unitPrice string) models.InvoiceDetail {
	t.Helper()
	return models.InvoiceDetail{
		ID:          id,
		InvoiceID:   1,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   *decPtr(t, unitPrice),
		Price:       *decPtr(t, unitPrice),
	}
}

func TestReconcileCreatesAndUpdates(t *testing.T) {
	existing := []models.InvoiceDetail{
		existingDetail(t, 10, "Widget", 5, "10.99"),
		existingDetail(t, 11, "Gadget", 2, "7.00"),
	}
	entries := []DetailInput{
		{ID: uintPtr(10), Quantity: intPtr(20), UnitPrice: decPtr(t, "30.00")},
		{Description: strPtr("Sprocket"), Quantity: intPtr(3), UnitPrice: decPtr(t, "1.50")},
	}

	plan, entryErrs, err := Reconcile(1, existing, entries)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(entryErrs) != 0 {
		t.Fatalf("unexpected entry errors: %v", entryErrs)
	}
	if len(plan.Updates) != 1 || len(plan.Creates) != 1 {
		t.Fatalf("unexpected plan shape: %+v", plan)
	}

	up := plan.Updates[0]
	if up.ID != 10 {
		t.Fatalf("wrong update target: %d", up.ID)
	}
	if up.Description != "Widget" {
		t.Fatalf("omitted description must be retained, got %q", up.Description)
	}
	if up.Quantity != 20 || up.Price.StringFixed(2) != "600.00" {
		t.Fatalf("price not re-derived: qty=%d price=%s", up.Quantity, up.Price)
	}

	cr := plan.Creates[0]
	if cr.InvoiceID != 1 || cr.Description != "Sprocket" {
		t.Fatalf("unexpected create: %+v", cr)
	}
	if cr.Price.StringFixed(2) != "4.50" {
		t.Fatalf("expected derived price 4.50, got %s", cr.Price)
	}
}

func TestReconcileMergeLeavesUnreferencedAlone(t *testing.T) {
	existing := []models.InvoiceDetail{
		existingDetail(t, 10, "D1", 1, "1.00"),
		existingDetail(t, 11, "D2", 1, "1.00"),
	}
	entries := []DetailInput{{ID: uintPtr(10), Quantity: intPtr(9)}}

	plan, _, err := Reconcile(1, existing, entries)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(plan.Updates) != 1 || len(plan.Creates) != 0 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	for _, up := range plan.Updates {
		if up.ID == 11 {
			t.Fatalf("unreferenced detail must not appear in the plan")
		}
	}
}

func TestReconcileForeignIDFails(t *testing.T) {
	existing := []models.InvoiceDetail{existingDetail(t, 10, "Mine", 1, "1.00")}
	entries := []DetailInput{{ID: uintPtr(999), Quantity: intPtr(2)}}

	_, _, err := Reconcile(1, existing, entries)
	if !errors.Is(err, store.ErrDetailNotFound) {
		t.Fatalf("expected ErrDetailNotFound, got %v", err)
	}
}

func TestReconcilePartialBatch(t *testing.T) {
	entries := []DetailInput{
		{Description: strPtr("Good"), Quantity: intPtr(1), UnitPrice: decPtr(t, "2.00")},
		{Description: strPtr("Missing numbers")},
		{Quantity: intPtr(5)},
	}

	plan, entryErrs, err := Reconcile(1, nil, entries)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(plan.Creates) != 1 || plan.Creates[0].Description != "Good" {
		t.Fatalf("valid sibling must survive the batch: %+v", plan)
	}
	if len(entryErrs) != 2 {
		t.Fatalf("expected 2 failing entries, got %v", entryErrs)
	}
	if msgs := entryErrs[1]["quantity"]; len(msgs) == 0 {
		t.Fatalf("entry 1 should report quantity required: %v", entryErrs[1])
	}
	if msgs := entryErrs[2]["description"]; len(msgs) == 0 {
		t.Fatalf("entry 2 should report description required: %v", entryErrs[2])
	}
	if msgs := entryErrs[2]["unit_price"]; len(msgs) == 0 {
		t.Fatalf("entry 2 should report unit_price required: %v", entryErrs[2])
	}
}

func TestReconcileIgnoresClientPrice(t *testing.T) {
	entries := []DetailInput{{
		Description: strPtr("Widget"),
		Quantity:    intPtr(5),
		UnitPrice:   decPtr(t, "10.99"),
		Price:       decPtr(t, "0.01"),
	}}

	plan, _, err := Reconcile(1, nil, entries)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if plan.Creates[0].Price.StringFixed(2) != "54.95" {
		t.Fatalf("client price must be overridden, got %s", plan.Creates[0].Price)
	}
}

func TestReconcileNegativeQuantityPermitted(t *testing.T) {
	entries := []DetailInput{{
		Description: strPtr("Credit line"),
		Quantity:    intPtr(-3),
		UnitPrice:   decPtr(t, "10.00"),
	}}

	plan, entryErrs, err := Reconcile(1, nil, entries)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(entryErrs) != 0 {
		t.Fatalf("negative quantities are allowed, got %v", entryErrs)
	}
	if plan.Creates[0].Price.StringFixed(2) != "-30.00" {
		t.Fatalf("expected -30.00, got %s", plan.Creates[0].Price)
	}
}

func TestReconcileEmptyInputTouchesNothing(t *testing.T) {
	existing := []models.InvoiceDetail{existingDetail(t, 10, "D1", 1, "1.00")}
	plan, entryErrs, err := Reconcile(1, existing, nil)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !plan.Empty() || len(entryErrs) != 0 {
		t.Fatalf("empty input must produce an empty plan: %+v %v", plan, entryErrs)
	}
}
