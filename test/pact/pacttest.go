//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "marketplace-api"
	ConsumerName = "grocery-storefront"

	StateStoresSeeded  = "stores are seeded"
	StateOrdersBase    = "no orders exist"
	StateOrderExists   = "order ord-pact-0001 exists"
	StateOrderMissing  = "order ord-missing does not exist"
	ExistingOrderID    = "ord-pact-0001"
	MissingOrderID     = "ord-missing"
	ExampleStoreID     = "store-101"
	ExampleSKU         = "APL-001"
	ExampleContact     = "pact.shopper@example.com"
	ExampleCustomer    = "Pact Shopper"
	ExampleAddress     = "42 Contract Lane"
	ExampleOrderTotal  = 4.78
	ExampleOrderStatus = "placed"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload provides a stable order submission for pact interactions.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"storeOrders": []map[string]any{
			{
				"storeId": ExampleStoreID,
				"items":   []map[string]any{{"sku": ExampleSKU, "quantity": 2}},
			},
		},
		"customerDetails":  map[string]any{"name": ExampleCustomer, "contact": ExampleContact},
		"customerLocation": map[string]any{"address": ExampleAddress},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
