package services

import (
	"errors"
	"testing"
)

func TestShippingRateTableLookup(t *testing.T) {
	table, err := NewShippingRateTable(map[string]int64{
		ShippingMethodInsideDhaka:  6000,
		ShippingMethodOutsideDhaka: 12000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cost, err := table.ShippingCost("insideDhaka")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cost != 6000 {
		t.Fatalf("expected 6000, got %d", cost)
	}

	cost, err = table.ShippingCost(" outsideDhaka ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cost != 12000 {
		t.Fatalf("expected 12000, got %d", cost)
	}

	if _, err := table.ShippingCost("overnight"); !errors.Is(err, ErrUnknownShippingMethod) {
		t.Fatalf("expected ErrUnknownShippingMethod, got %v", err)
	}
}

func TestShippingRateTableValidation(t *testing.T) {
	if _, err := NewShippingRateTable(nil); err == nil {
		t.Fatalf("expected error for empty table")
	}
	if _, err := NewShippingRateTable(map[string]int64{"  ": 100}); err == nil {
		t.Fatalf("expected error for blank method name")
	}
	if _, err := NewShippingRateTable(map[string]int64{"zone": -1}); err == nil {
		t.Fatalf("expected error for negative rate")
	}
}

func TestShippingRateTableMethodsSorted(t *testing.T) {
	table, err := NewShippingRateTable(map[string]int64{
		ShippingMethodOutsideDhaka: 12000,
		ShippingMethodInsideDhaka:  6000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	methods := table.Methods()
	if len(methods) != 2 || methods[0] != "insideDhaka" || methods[1] != "outsideDhaka" {
		t.Fatalf("expected sorted methods, got %v", methods)
	}
}

func TestFlatTaxPolicy(t *testing.T) {
	policy, err := NewFlatTaxPolicy(500) // 5%
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := policy.EstimateTaxes(10_000); got != 500 {
		t.Fatalf("expected 500, got %d", got)
	}
	// Truncation to whole minor units.
	if got := policy.EstimateTaxes(1_999); got != 99 {
		t.Fatalf("expected 99, got %d", got)
	}
	if got := policy.EstimateTaxes(0); got != 0 {
		t.Fatalf("expected 0 for empty subtotal, got %d", got)
	}
	if got := policy.EstimateTaxes(-100); got != 0 {
		t.Fatalf("expected 0 for negative subtotal, got %d", got)
	}

	if _, err := NewFlatTaxPolicy(-1); err == nil {
		t.Fatalf("expected error for negative rate")
	}

	zero, err := NewFlatTaxPolicy(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := zero.EstimateTaxes(10_000); got != 0 {
		t.Fatalf("expected 0 with zero rate, got %d", got)
	}
}
