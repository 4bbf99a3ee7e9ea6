package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&orderIdempotencyRecord{},
	)
}

// Order schemas mirror the orders Postgres adapters. Store and catalog data
// is reference data loaded at startup and has no tables.
type orderRecord struct {
	ID                string          `gorm:"primaryKey;column:id;type:varchar(64)"`
	Seq               int64           `gorm:"column:seq;autoIncrement;uniqueIndex"`
	PlacedAt          time.Time       `gorm:"column:placed_at;index"`
	StoreIDs          pq.StringArray  `gorm:"column:store_ids;type:text[]"`
	StoreOrders       []byte          `gorm:"column:store_orders;type:jsonb"`
	CustomerName      string          `gorm:"column:customer_name"`
	CustomerContact   string          `gorm:"column:customer_contact"`
	ContactNormalized string          `gorm:"column:contact_normalized;index"`
	CustomerLocation  []byte          `gorm:"column:customer_location;type:jsonb"`
	StatusFlow        []byte          `gorm:"column:status_flow;type:jsonb"`
	CurrentStatus     string          `gorm:"column:current_status;type:varchar(32);index"`
	ItemCount         int             `gorm:"column:item_count"`
	StoreCount        int             `gorm:"column:store_count"`
	Total             decimal.Decimal `gorm:"column:total;type:numeric(12,2)"`
	CreatedAt         time.Time       `gorm:"column:created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderIdempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	OrderID     string    `gorm:"column:order_id;type:varchar(64)"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (orderIdempotencyRecord) TableName() string { return "order_idempotency_keys" }
