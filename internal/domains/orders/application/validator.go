package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application/types"
	storesdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/domain"
	storesports "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/ports"
)

// Validator checks order payloads against the store directory, collecting
// every violation instead of stopping at the first.
type Validator struct {
	directory storesports.Directory
}

func NewValidator(directory storesports.Directory) *Validator {
	return &Validator{directory: directory}
}

// Validate reports all rule violations. The error is reserved for directory failures.
func (v *Validator) Validate(ctx context.Context, payload types.OrderPayload) (types.ValidationResult, error) {
	c := &collector{}

	if payload.IsMultiStore() {
		for i, storeOrder := range payload.StoreOrders {
			if err := v.validateStoreOrder(ctx, c, i, storeOrder); err != nil {
				return types.ValidationResult{}, err
			}
		}
	} else if err := v.validateLegacy(ctx, c, payload); err != nil {
		return types.ValidationResult{}, err
	}

	validateCustomer(c, payload)

	return types.ValidationResult{IsValid: len(c.errors) == 0, Errors: c.result()}, nil
}

func (v *Validator) validateStoreOrder(ctx context.Context, c *collector, index int, storeOrder types.StoreOrderPayload) error {
	if storeOrder.Malformed {
		c.addf("storeOrders[%d] must be an object", index)
		return nil
	}
	inventory, err := v.checkStore(ctx, c, storeOrder.StoreID, fmt.Sprintf("storeOrders[%d].storeId is required", index))
	if err != nil {
		return err
	}
	if len(storeOrder.Items) == 0 {
		c.addf("storeOrders[%d] must include at least one item", index)
		return nil
	}
	for j, item := range storeOrder.Items {
		checkItem(c, fmt.Sprintf("storeOrders[%d].items[%d]", index, j), storeOrder.StoreID, item, inventory)
	}
	return nil
}

func (v *Validator) validateLegacy(ctx context.Context, c *collector, payload types.OrderPayload) error {
	inventory, err := v.checkStore(ctx, c, payload.StoreID, "storeId is required")
	if err != nil {
		return err
	}
	if len(payload.Items) == 0 {
		c.add("At least one item is required")
		return nil
	}
	for j, item := range payload.Items {
		checkItem(c, fmt.Sprintf("Item at index %d", j), payload.StoreID, item, inventory)
	}
	return nil
}

// checkStore returns the store inventory keyed by SKU, or nil when the store
// is missing or unknown.
func (v *Validator) checkStore(ctx context.Context, c *collector, storeID, requiredMsg string) (map[string]storesdomain.InventoryItem, error) {
	if storeID == "" {
		c.add(requiredMsg)
		return nil, nil
	}
	store, err := v.directory.GetStore(ctx, storeID)
	if errors.Is(err, storesports.ErrStoreNotFound) {
		c.addf("Unknown storeId: %s", storeID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	items, err := v.directory.Inventory(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	inventory := make(map[string]storesdomain.InventoryItem, len(items))
	for _, item := range items {
		inventory[item.SKU] = item
	}
	return inventory, nil
}

func checkItem(c *collector, prefix, storeID string, item types.ItemPayload, inventory map[string]storesdomain.InventoryItem) {
	if item.Malformed {
		c.addf("%s must be an object", prefix)
		return
	}
	if item.SKU == "" {
		c.addf("%s is missing sku", prefix)
	}
	quantityValid := true
	switch {
	case item.Quantity == nil || !(*item.Quantity > 0) || math.IsInf(*item.Quantity, 0):
		c.addf("%s must have a quantity greater than 0", prefix)
		quantityValid = false
	case *item.Quantity != math.Trunc(*item.Quantity):
		c.addf("%s must have a whole-number quantity", prefix)
		quantityValid = false
	}

	if inventory == nil || item.SKU == "" {
		return
	}
	stocked, ok := inventory[item.SKU]
	if !ok {
		c.addf("Item %s is not sold at store %s", item.SKU, storeID)
		return
	}
	if quantityValid && *item.Quantity > float64(stocked.QuantityAvailable) {
		c.addf("Item %s exceeds available quantity (%d)", item.SKU, stocked.QuantityAvailable)
	}
}

func validateCustomer(c *collector, payload types.OrderPayload) {
	if details := payload.CustomerDetails; details != nil {
		if strings.TrimSpace(details.Name) == "" {
			c.add("customerDetails.name is required")
		}
		if strings.TrimSpace(details.Contact) == "" {
			c.add("customerDetails.contact is required")
		}
	} else {
		c.add("customerDetails is required")
	}

	if location := payload.CustomerLocation; location != nil {
		if !location.HasCoordinates() && strings.TrimSpace(location.Address) == "" {
			c.add("customerLocation must include coordinates or address")
		}
	} else {
		c.add("customerLocation is required")
	}
}

type collector struct {
	errors []string
}

func (c *collector) add(msg string) {
	c.errors = append(c.errors, msg)
}

func (c *collector) addf(format string, args ...any) {
	c.add(fmt.Sprintf(format, args...))
}

func (c *collector) result() []string {
	if c.errors == nil {
		return []string{}
	}
	return c.errors
}
