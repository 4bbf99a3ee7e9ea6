package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

// orderRecord keeps the nested parts of the aggregate as jsonb documents and
// lifts the lookup keys into plain columns.
type orderRecord struct {
	ID                string          `gorm:"primaryKey;column:id;type:varchar(64)"`
	Seq               int64           `gorm:"column:seq;autoIncrement;uniqueIndex"`
	PlacedAt          time.Time       `gorm:"column:placed_at;index"`
	StoreIDs          pq.StringArray  `gorm:"column:store_ids;type:text[]"`
	StoreOrders       []storeOrderDoc `gorm:"column:store_orders;type:jsonb;serializer:json"`
	CustomerName      string          `gorm:"column:customer_name"`
	CustomerContact   string          `gorm:"column:customer_contact"`
	ContactNormalized string          `gorm:"column:contact_normalized;index"`
	CustomerLocation  locationDoc     `gorm:"column:customer_location;type:jsonb;serializer:json"`
	StatusFlow        []statusStepDoc `gorm:"column:status_flow;type:jsonb;serializer:json"`
	CurrentStatus     string          `gorm:"column:current_status;type:varchar(32);index"`
	ItemCount         int             `gorm:"column:item_count"`
	StoreCount        int             `gorm:"column:store_count"`
	Total             decimal.Decimal `gorm:"column:total;type:numeric(12,2)"`
	CreatedAt         time.Time       `gorm:"column:created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type lineItemDoc struct {
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	Price     float64 `json:"price"`
	LineTotal float64 `json:"lineTotal"`
}

type storeOrderDoc struct {
	StoreID     string        `json:"storeId"`
	StoreName   string        `json:"storeName,omitempty"`
	DeliveryEta string        `json:"deliveryEta,omitempty"`
	Address     string        `json:"address,omitempty"`
	Items       []lineItemDoc `json:"items"`
	Subtotal    float64       `json:"subtotal"`
}

type locationDoc struct {
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Address string   `json:"address,omitempty"`
}

type statusStepDoc struct {
	Code      string     `json:"code"`
	Label     string     `json:"label"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Insert stores a new order.
func (r *Repository) Insert(ctx context.Context, order *domain.Order) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if order == nil {
		return errors.New("order is nil")
	}
	record := toRecord(order)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&record)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrDuplicateID
	}
	return nil
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns orders in insertion order.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("seq ASC")
	if filter.Contact != "" {
		query = query.Where("contact_normalized = ?", filter.Contact)
	}
	var records []orderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// Update locks the row for the duration of the mutation.
func (r *Repository) Update(ctx context.Context, id string, mutate func(*domain.Order) error) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var updated *domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record orderRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		order := record.toDomain()
		if err := mutate(order); err != nil {
			return err
		}
		next := toRecord(order)
		next.Seq = record.Seq
		next.CreatedAt = record.CreatedAt
		if err := tx.Save(&next).Error; err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	storeOrders := make([]storeOrderDoc, 0, len(order.StoreOrders))
	for _, so := range order.StoreOrders {
		items := make([]lineItemDoc, 0, len(so.Items))
		for _, item := range so.Items {
			items = append(items, lineItemDoc(item))
		}
		storeOrders = append(storeOrders, storeOrderDoc{
			StoreID:     so.StoreID,
			StoreName:   so.StoreName,
			DeliveryEta: so.DeliveryEta,
			Address:     so.Address,
			Items:       items,
			Subtotal:    so.Subtotal,
		})
	}
	flow := make([]statusStepDoc, 0, len(order.StatusFlow))
	for _, step := range order.StatusFlow {
		flow = append(flow, statusStepDoc{Code: string(step.Code), Label: step.Label, Timestamp: step.Timestamp})
	}
	return orderRecord{
		ID:                order.ID,
		PlacedAt:          order.PlacedAt,
		StoreIDs:          pq.StringArray(order.StoreIDs()),
		StoreOrders:       storeOrders,
		CustomerName:      order.CustomerDetails.Name,
		CustomerContact:   order.CustomerDetails.Contact,
		ContactNormalized: domain.NormalizeContact(order.CustomerDetails.Contact),
		CustomerLocation:  locationDoc(order.CustomerLocation),
		StatusFlow:        flow,
		CurrentStatus:     string(order.CurrentStatus.Code),
		ItemCount:         order.Summary.ItemCount,
		StoreCount:        order.Summary.StoreCount,
		Total:             decimal.NewFromFloat(order.Summary.Total),
	}
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:               r.ID,
		PlacedAt:         r.PlacedAt.UTC(),
		CustomerDetails:  domain.CustomerDetails{Name: r.CustomerName, Contact: r.CustomerContact},
		CustomerLocation: domain.CustomerLocation(r.CustomerLocation),
		Summary: domain.Summary{
			ItemCount:  r.ItemCount,
			StoreCount: r.StoreCount,
			Total:      r.Total.InexactFloat64(),
		},
	}
	for _, so := range r.StoreOrders {
		items := make([]domain.LineItem, 0, len(so.Items))
		for _, item := range so.Items {
			items = append(items, domain.LineItem(item))
		}
		order.StoreOrders = append(order.StoreOrders, domain.StoreOrder{
			StoreID:     so.StoreID,
			StoreName:   so.StoreName,
			DeliveryEta: so.DeliveryEta,
			Address:     so.Address,
			Items:       items,
			Subtotal:    so.Subtotal,
		})
	}
	for _, step := range r.StatusFlow {
		s := domain.StatusStep{Code: domain.StatusCode(step.Code), Label: step.Label}
		if step.Timestamp != nil {
			ts := step.Timestamp.UTC()
			s.Timestamp = &ts
		}
		order.StatusFlow = append(order.StatusFlow, s)
		if s.Code == domain.StatusCode(r.CurrentStatus) {
			order.CurrentStatus = s
		}
	}
	return order
}
