package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownShippingMethod is returned when a method has no entry in the rate
// table.
var ErrUnknownShippingMethod = errors.New("pricing: unknown shipping method")

// Default delivery zones for the rate table.
const (
	ShippingMethodInsideDhaka  = "insideDhaka"
	ShippingMethodOutsideDhaka = "outsideDhaka"
)

// ShippingPolicy resolves the delivery cost for a chosen shipping method.
type ShippingPolicy interface {
	ShippingCost(method string) (int64, error)
}

// TaxPolicy estimates taxes from a subtotal. Both amounts are minor units.
type TaxPolicy interface {
	EstimateTaxes(subtotal int64) int64
}

// ShippingRateTable is a fixed lookup of shipping method to minor-unit cost.
type ShippingRateTable struct {
	rates map[string]int64
}

// NewShippingRateTable validates and normalises the supplied rates.
func NewShippingRateTable(rates map[string]int64) (*ShippingRateTable, error) {
	if len(rates) == 0 {
		return nil, errors.New("pricing: shipping rate table is empty")
	}
	normalised := make(map[string]int64, len(rates))
	for method, cost := range rates {
		method = strings.TrimSpace(method)
		if method == "" {
			return nil, errors.New("pricing: shipping method name is empty")
		}
		if cost < 0 {
			return nil, fmt.Errorf("pricing: negative rate for shipping method %q", method)
		}
		normalised[method] = cost
	}
	return &ShippingRateTable{rates: normalised}, nil
}

// ShippingCost returns the cost for the method or ErrUnknownShippingMethod.
func (t *ShippingRateTable) ShippingCost(method string) (int64, error) {
	if t == nil {
		return 0, ErrUnknownShippingMethod
	}
	cost, ok := t.rates[strings.TrimSpace(method)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownShippingMethod, strings.TrimSpace(method))
	}
	return cost, nil
}

// Methods lists the configured shipping methods in stable order.
func (t *ShippingRateTable) Methods() []string {
	if t == nil {
		return nil
	}
	methods := make([]string, 0, len(t.rates))
	for method := range t.rates {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return methods
}

// FlatTaxPolicy estimates taxes as a fixed basis-point share of the subtotal,
// truncated to whole minor units.
type FlatTaxPolicy struct {
	basisPoints int64
}

// NewFlatTaxPolicy builds a policy from a basis-point rate (500 = 5%).
func NewFlatTaxPolicy(basisPoints int64) (*FlatTaxPolicy, error) {
	if basisPoints < 0 {
		return nil, errors.New("pricing: negative tax rate")
	}
	return &FlatTaxPolicy{basisPoints: basisPoints}, nil
}

// EstimateTaxes applies the flat rate to the subtotal.
func (p *FlatTaxPolicy) EstimateTaxes(subtotal int64) int64 {
	if p == nil || subtotal <= 0 {
		return 0
	}
	return subtotal * p.basisPoints / 10_000
}
