package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-marketplace-api/internal/shared/money"
)

// ErrEmptyOrder rejects orders that resolve to no store orders.
var ErrEmptyOrder = errors.New("order must include at least one store order")

// LineItem is an ordered item enriched with server-side catalog data.
type LineItem struct {
	SKU       string
	Quantity  int
	Name      string
	Unit      string
	Price     float64
	LineTotal float64
}

// StoreOrder groups the items fulfilled by a single store.
type StoreOrder struct {
	StoreID     string
	StoreName   string
	DeliveryEta string
	Address     string
	Items       []LineItem
	Subtotal    float64
}

type CustomerDetails struct {
	Name    string
	Contact string
}

// CustomerLocation carries coordinates, an address, or both.
type CustomerLocation struct {
	Lat     *float64
	Lng     *float64
	Address string
}

type Summary struct {
	ItemCount  int
	StoreCount int
	Total      float64
}

// Order is the marketplace order aggregate.
type Order struct {
	ID               string
	PlacedAt         time.Time
	StoreOrders      []StoreOrder
	CustomerDetails  CustomerDetails
	CustomerLocation CustomerLocation
	StatusFlow       []StatusStep
	CurrentStatus    StatusStep
	Summary          Summary
}

// ConfirmationCode is the short customer-facing reference for the order.
func (o *Order) ConfirmationCode() string {
	code := o.ID
	if len(code) > 8 {
		code = code[:8]
	}
	return strings.ToUpper(code)
}

// AdvanceTo moves the order to code, stamping it at now.
func (o *Order) AdvanceTo(code StatusCode, now time.Time) error {
	target := statusIndex(code)
	if target < 0 {
		return ErrUnknownStatus
	}
	o.StatusFlow = rebuildFlow(o.StatusFlow, target, now)
	o.CurrentStatus = o.StatusFlow[target]
	return nil
}

// Clone returns a deep copy so callers cannot alias stored state.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.StoreOrders = make([]StoreOrder, len(o.StoreOrders))
	for i, so := range o.StoreOrders {
		so.Items = append([]LineItem(nil), so.Items...)
		clone.StoreOrders[i] = so
	}
	clone.CustomerLocation.Lat = cloneFloat(o.CustomerLocation.Lat)
	clone.CustomerLocation.Lng = cloneFloat(o.CustomerLocation.Lng)
	clone.StatusFlow = make([]StatusStep, len(o.StatusFlow))
	for i, step := range o.StatusFlow {
		clone.StatusFlow[i] = cloneStep(step)
	}
	clone.CurrentStatus = cloneStep(o.CurrentStatus)
	return &clone
}

// StoreIDs lists the stores involved in the order.
func (o *Order) StoreIDs() []string {
	ids := make([]string, 0, len(o.StoreOrders))
	for _, so := range o.StoreOrders {
		ids = append(ids, so.StoreID)
	}
	return ids
}

// NormalizeContact is the canonical form used for contact lookups.
func NormalizeContact(contact string) string {
	return strings.ToLower(strings.TrimSpace(contact))
}

// Summarize totals the store orders. Total is rounded half away from zero to cents.
func Summarize(storeOrders []StoreOrder) Summary {
	summary := Summary{StoreCount: len(storeOrders)}
	subtotals := make([]decimal.Decimal, 0, len(storeOrders))
	for _, so := range storeOrders {
		for _, item := range so.Items {
			summary.ItemCount += item.Quantity
		}
		subtotals = append(subtotals, money.FromFloat(so.Subtotal))
	}
	summary.Total = money.Round2(money.Sum(subtotals...))
	return summary
}

func cloneStep(step StatusStep) StatusStep {
	if step.Timestamp != nil {
		ts := *step.Timestamp
		step.Timestamp = &ts
	}
	return step
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
