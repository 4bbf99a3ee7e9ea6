package types

import (
	"encoding/json"
)

// ItemPayload is a submitted line item. Malformed marks an entry that was
// not a JSON object.
type ItemPayload struct {
	SKU       string   `json:"sku"`
	Quantity  *float64 `json:"quantity,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Malformed bool     `json:"-"`
}

func (p *ItemPayload) UnmarshalJSON(data []byte) error {
	*p = ItemPayload{}
	fields, ok := decodeObject(data)
	if !ok {
		p.Malformed = true
		return nil
	}
	p.SKU = looseString(fields["sku"])
	p.Quantity = looseNumber(fields["quantity"])
	p.Price = looseNumber(fields["price"])
	return nil
}

func (p ItemPayload) MarshalJSON() ([]byte, error) {
	if p.Malformed {
		return []byte("null"), nil
	}
	type plain ItemPayload
	return json.Marshal(plain(p))
}

// StoreOrderPayload is one store's part of a multi-store submission.
type StoreOrderPayload struct {
	StoreID   string        `json:"storeId"`
	Items     []ItemPayload `json:"items"`
	Malformed bool          `json:"-"`
}

func (p *StoreOrderPayload) UnmarshalJSON(data []byte) error {
	*p = StoreOrderPayload{}
	fields, ok := decodeObject(data)
	if !ok {
		p.Malformed = true
		return nil
	}
	p.StoreID = looseString(fields["storeId"])
	items, err := decodeItems(fields["items"])
	if err != nil {
		return err
	}
	p.Items = items
	return nil
}

func (p StoreOrderPayload) MarshalJSON() ([]byte, error) {
	if p.Malformed {
		return []byte("null"), nil
	}
	type plain StoreOrderPayload
	return json.Marshal(plain(p))
}

type CustomerDetailsPayload struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

func (p *CustomerDetailsPayload) UnmarshalJSON(data []byte) error {
	*p = CustomerDetailsPayload{}
	fields, ok := decodeObject(data)
	if !ok {
		return nil
	}
	p.Name = looseString(fields["name"])
	p.Contact = looseString(fields["contact"])
	return nil
}

// CustomerLocationPayload keeps only numeric coordinates and string addresses.
type CustomerLocationPayload struct {
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Address string   `json:"address,omitempty"`
}

func (p *CustomerLocationPayload) UnmarshalJSON(data []byte) error {
	*p = CustomerLocationPayload{}
	fields, ok := decodeObject(data)
	if !ok {
		return nil
	}
	p.Lat = looseNumber(fields["lat"])
	p.Lng = looseNumber(fields["lng"])
	var address string
	if err := json.Unmarshal(fields["address"], &address); err == nil {
		p.Address = address
	}
	return nil
}

// HasCoordinates reports whether both lat and lng were supplied as numbers.
func (p *CustomerLocationPayload) HasCoordinates() bool {
	return p != nil && p.Lat != nil && p.Lng != nil
}

// OrderPayload accepts both the legacy single-store shape (storeId + items)
// and the multi-store shape (storeOrders).
type OrderPayload struct {
	StoreOrders      []StoreOrderPayload      `json:"storeOrders,omitempty"`
	StoreID          string                   `json:"storeId,omitempty"`
	Items            []ItemPayload            `json:"items,omitempty"`
	CustomerDetails  *CustomerDetailsPayload  `json:"customerDetails,omitempty"`
	CustomerLocation *CustomerLocationPayload `json:"customerLocation,omitempty"`
}

func (p *OrderPayload) UnmarshalJSON(data []byte) error {
	*p = OrderPayload{}
	fields, ok := decodeObject(data)
	if !ok {
		return nil
	}
	if raw, ok := decodeArray(fields["storeOrders"]); ok {
		p.StoreOrders = make([]StoreOrderPayload, len(raw))
		for i, entry := range raw {
			if err := p.StoreOrders[i].UnmarshalJSON(entry); err != nil {
				return err
			}
		}
	}
	p.StoreID = looseString(fields["storeId"])
	items, err := decodeItems(fields["items"])
	if err != nil {
		return err
	}
	p.Items = items
	if truthy(fields["customerDetails"]) {
		p.CustomerDetails = &CustomerDetailsPayload{}
		if err := p.CustomerDetails.UnmarshalJSON(fields["customerDetails"]); err != nil {
			return err
		}
	}
	if truthy(fields["customerLocation"]) {
		p.CustomerLocation = &CustomerLocationPayload{}
		if err := p.CustomerLocation.UnmarshalJSON(fields["customerLocation"]); err != nil {
			return err
		}
	}
	return nil
}

// IsMultiStore reports whether the payload uses the storeOrders shape.
func (p OrderPayload) IsMultiStore() bool {
	return len(p.StoreOrders) > 0
}

// Normalize returns the canonical store orders for either payload shape.
// A legacy payload without a store or items yields nothing.
func (p OrderPayload) Normalize() []StoreOrderPayload {
	if p.IsMultiStore() {
		return append([]StoreOrderPayload(nil), p.StoreOrders...)
	}
	if p.StoreID != "" && len(p.Items) > 0 {
		return []StoreOrderPayload{{StoreID: p.StoreID, Items: append([]ItemPayload(nil), p.Items...)}}
	}
	return nil
}
