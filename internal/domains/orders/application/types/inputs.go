package types

// ListOrdersInput filters order listings. An empty contact lists every order.
type ListOrdersInput struct {
	Contact string
}

// UpdateStatusInput moves an order to another step of the status flow.
type UpdateStatusInput struct {
	ID     string
	Status string
}

// PlaceOrderCommand is the orchestrated order submission.
type PlaceOrderCommand struct {
	Payload        OrderPayload
	IdempotencyKey string
}

// ValidationResult lists every rule an order payload violates.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}
