package mapper

import (
	"encoding/json"
	"time"

	ordersdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/domain"
)

// TimestampLayout renders instants in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

type LineItem struct {
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	Price     float64 `json:"price"`
	LineTotal float64 `json:"lineTotal"`
}

type StoreOrder struct {
	StoreID     string     `json:"storeId"`
	StoreName   string     `json:"storeName,omitempty"`
	DeliveryEta string     `json:"deliveryEta,omitempty"`
	Address     string     `json:"address,omitempty"`
	Items       []LineItem `json:"items"`
	Subtotal    float64    `json:"subtotal"`
}

type CustomerDetails struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type CustomerLocation struct {
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Address string   `json:"address,omitempty"`
}

type StatusStep struct {
	Code      string  `json:"code"`
	Label     string  `json:"label"`
	Timestamp *string `json:"timestamp,omitempty"`
}

type Summary struct {
	ItemCount  int     `json:"itemCount"`
	StoreCount int     `json:"storeCount"`
	Total      float64 `json:"total"`
}

// Order is the transport shape of an order.
type Order struct {
	ID               string           `json:"id"`
	ConfirmationCode string           `json:"confirmationCode"`
	PlacedAt         string           `json:"placedAt"`
	StoreOrders      []StoreOrder     `json:"storeOrders"`
	CustomerDetails  CustomerDetails  `json:"customerDetails"`
	CustomerLocation CustomerLocation `json:"customerLocation"`
	StatusFlow       []StatusStep     `json:"statusFlow"`
	CurrentStatus    StatusStep       `json:"currentStatus"`
	Summary          Summary          `json:"summary"`
}

type OrderEnvelope struct {
	Order Order `json:"order"`
}

type OrdersEnvelope struct {
	Orders []Order `json:"orders"`
}

// StatusUpdateRequest reads the status code, treating non-string values as missing.
type StatusUpdateRequest struct {
	Status string
}

func (r *StatusUpdateRequest) UnmarshalJSON(data []byte) error {
	*r = StatusUpdateRequest{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	var status string
	if err := json.Unmarshal(fields["status"], &status); err == nil {
		r.Status = status
	}
	return nil
}

func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	storeOrders := make([]StoreOrder, 0, len(order.StoreOrders))
	for _, so := range order.StoreOrders {
		items := make([]LineItem, 0, len(so.Items))
		for _, item := range so.Items {
			items = append(items, LineItem{
				SKU:       item.SKU,
				Quantity:  item.Quantity,
				Name:      item.Name,
				Unit:      item.Unit,
				Price:     item.Price,
				LineTotal: item.LineTotal,
			})
		}
		storeOrders = append(storeOrders, StoreOrder{
			StoreID:     so.StoreID,
			StoreName:   so.StoreName,
			DeliveryEta: so.DeliveryEta,
			Address:     so.Address,
			Items:       items,
			Subtotal:    so.Subtotal,
		})
	}
	flow := make([]StatusStep, 0, len(order.StatusFlow))
	for _, step := range order.StatusFlow {
		flow = append(flow, fromDomainStep(step))
	}
	return Order{
		ID:               order.ID,
		ConfirmationCode: order.ConfirmationCode(),
		PlacedAt:         FormatTimestamp(order.PlacedAt),
		StoreOrders:      storeOrders,
		CustomerDetails:  CustomerDetails{Name: order.CustomerDetails.Name, Contact: order.CustomerDetails.Contact},
		CustomerLocation: CustomerLocation{
			Lat:     order.CustomerLocation.Lat,
			Lng:     order.CustomerLocation.Lng,
			Address: order.CustomerLocation.Address,
		},
		StatusFlow:    flow,
		CurrentStatus: fromDomainStep(order.CurrentStatus),
		Summary: Summary{
			ItemCount:  order.Summary.ItemCount,
			StoreCount: order.Summary.StoreCount,
			Total:      order.Summary.Total,
		},
	}
}

func FromDomainOrders(orders []*ordersdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}

// FormatTimestamp renders t in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func fromDomainStep(step ordersdomain.StatusStep) StatusStep {
	out := StatusStep{Code: string(step.Code), Label: step.Label}
	if step.Timestamp != nil {
		ts := FormatTimestamp(*step.Timestamp)
		out.Timestamp = &ts
	}
	return out
}

// StatusCatalogResponse lists the fixed status sequence.
type StatusCatalogResponse struct {
	Statuses []StatusStep `json:"statuses"`
}

func FromStatusCatalog(definitions []ordersdomain.StatusDefinition) StatusCatalogResponse {
	statuses := make([]StatusStep, 0, len(definitions))
	for _, def := range definitions {
		statuses = append(statuses, StatusStep{Code: string(def.Code), Label: def.Label})
	}
	return StatusCatalogResponse{Statuses: statuses}
}
