package memory

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/domain"
	"github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/ports"
)

var _ ports.Directory = (*Directory)(nil)

// Directory serves stores and inventories from process memory. It is
// read-only after construction, so no locking is required.
type Directory struct {
	stores    []domain.Store
	inventory map[string][]domain.InventoryItem
}

// NewDirectory copies the provided data into a new directory.
func NewDirectory(stores []domain.Store, inventory map[string][]domain.InventoryItem) *Directory {
	d := &Directory{
		stores:    append([]domain.Store(nil), stores...),
		inventory: make(map[string][]domain.InventoryItem, len(inventory)),
	}
	for storeID, items := range inventory {
		d.inventory[storeID] = append([]domain.InventoryItem(nil), items...)
	}
	return d
}

// NewSeededDirectory returns a directory holding the built-in marketplace data.
func NewSeededDirectory() *Directory {
	return NewDirectory(seedStores, seedInventory)
}

func (d *Directory) ListStores(_ context.Context) ([]domain.Store, error) {
	return append([]domain.Store(nil), d.stores...), nil
}

func (d *Directory) GetStore(_ context.Context, id string) (*domain.Store, error) {
	for _, store := range d.stores {
		if store.ID == id {
			clone := store
			return &clone, nil
		}
	}
	return nil, ports.ErrStoreNotFound
}

func (d *Directory) Inventory(_ context.Context, storeID string) ([]domain.InventoryItem, error) {
	items := d.inventory[storeID]
	return append(make([]domain.InventoryItem, 0, len(items)), items...), nil
}

func (d *Directory) FindItem(_ context.Context, storeID, sku string) (*domain.InventoryItem, error) {
	for _, item := range d.inventory[storeID] {
		if item.SKU == sku {
			clone := item
			return &clone, nil
		}
	}
	return nil, ports.ErrItemNotFound
}

// seedFile is the on-disk layout accepted by LoadDirectory.
type seedFile struct {
	Stores []seedStore `yaml:"stores"`
}

type seedStore struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Address     string     `yaml:"address"`
	Lat         float64    `yaml:"lat"`
	Lng         float64    `yaml:"lng"`
	Hours       string     `yaml:"hours"`
	DeliveryEta string     `yaml:"deliveryEta"`
	Inventory   []seedItem `yaml:"inventory"`
}

type seedItem struct {
	SKU               string  `yaml:"sku"`
	Name              string  `yaml:"name"`
	Description       string  `yaml:"description"`
	Category          string  `yaml:"category"`
	Brand             string  `yaml:"brand"`
	ImageURL          string  `yaml:"imageUrl"`
	Unit              string  `yaml:"unit"`
	Price             float64 `yaml:"price"`
	QuantityAvailable int     `yaml:"quantityAvailable"`
}

// LoadDirectory reads a YAML seed file describing stores and their inventories.
func LoadDirectory(path string) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseDirectory(raw)
}

// ParseDirectory decodes YAML seed data and checks its reference integrity.
func ParseDirectory(raw []byte) (*Directory, error) {
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if len(file.Stores) == 0 {
		return nil, fmt.Errorf("seed file declares no stores")
	}
	stores := make([]domain.Store, 0, len(file.Stores))
	inventory := make(map[string][]domain.InventoryItem, len(file.Stores))
	for i, s := range file.Stores {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return nil, fmt.Errorf("stores[%d]: id is required", i)
		}
		if _, dup := inventory[id]; dup {
			return nil, fmt.Errorf("stores[%d]: duplicate store id %q", i, id)
		}
		stores = append(stores, domain.Store{
			ID:          id,
			Name:        s.Name,
			Address:     s.Address,
			Location:    domain.Coordinate{Lat: s.Lat, Lng: s.Lng},
			Hours:       s.Hours,
			DeliveryEta: s.DeliveryEta,
		})
		items := make([]domain.InventoryItem, 0, len(s.Inventory))
		seen := make(map[string]struct{}, len(s.Inventory))
		for j, it := range s.Inventory {
			if it.SKU == "" {
				return nil, fmt.Errorf("stores[%d].inventory[%d]: sku is required", i, j)
			}
			if _, dup := seen[it.SKU]; dup {
				return nil, fmt.Errorf("stores[%d].inventory[%d]: duplicate sku %q", i, j, it.SKU)
			}
			if it.Price < 0 || it.QuantityAvailable < 0 {
				return nil, fmt.Errorf("stores[%d].inventory[%d]: price and quantity must be non-negative", i, j)
			}
			seen[it.SKU] = struct{}{}
			items = append(items, domain.InventoryItem{
				SKU:               it.SKU,
				Name:              it.Name,
				Description:       it.Description,
				Category:          it.Category,
				Brand:             it.Brand,
				ImageURL:          it.ImageURL,
				Unit:              it.Unit,
				Price:             it.Price,
				QuantityAvailable: it.QuantityAvailable,
			})
		}
		inventory[id] = items
	}
	return &Directory{stores: stores, inventory: inventory}, nil
}
