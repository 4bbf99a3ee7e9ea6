package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application/types"
)

// FingerprintPayload hashes the canonical form of an order submission so a
// replayed idempotency key can be checked against the original request.
func FingerprintPayload(payload types.OrderPayload) (string, error) {
	canonical := struct {
		StoreOrders      []types.StoreOrderPayload      `json:"storeOrders"`
		CustomerDetails  *types.CustomerDetailsPayload  `json:"customerDetails"`
		CustomerLocation *types.CustomerLocationPayload `json:"customerLocation"`
	}{
		StoreOrders:      payload.Normalize(),
		CustomerDetails:  payload.CustomerDetails,
		CustomerLocation: payload.CustomerLocation,
	}
	encoded, err := json.Marshal(canonical)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:]), nil
}
