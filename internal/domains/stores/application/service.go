package application

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/domain"
	"github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/ports"
)

// DefaultRadiusKm applies when a query carries no radius.
const DefaultRadiusKm = 10.0

// Service answers store finder and inventory queries.
type Service struct {
	directory     ports.Directory
	defaultRadius float64
}

type Option func(*Service)

// WithDefaultRadius overrides the radius used when a query omits one.
func WithDefaultRadius(km float64) Option {
	return func(s *Service) {
		if km > 0 && !math.IsInf(km, 0) {
			s.defaultRadius = km
		}
	}
}

func NewService(directory ports.Directory, opts ...Option) *Service {
	s := &Service{directory: directory, defaultRadius: DefaultRadiusKm}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// FindStores filters stores by radius and text, sorted by distance with
// unlocated results last.
func (s *Service) FindStores(ctx context.Context, query domain.StoreQuery) ([]domain.NearbyStore, error) {
	stores, err := s.directory.ListStores(ctx)
	if err != nil {
		return nil, err
	}
	radius := s.radius(query.RadiusKm)
	text := strings.TrimSpace(query.Text)

	result := make([]domain.NearbyStore, 0, len(stores))
	for _, store := range stores {
		if !store.Matches(text) {
			continue
		}
		nearby := domain.NearbyStore{Store: store}
		if query.Location != nil {
			distance := domain.HaversineKm(*query.Location, store.Location)
			if distance > radius {
				continue
			}
			nearby.DistanceKm = &distance
		}
		result = append(result, nearby)
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].DistanceKm, result[j].DistanceKm
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
	return result, nil
}

// GetInventory returns a store with its items, narrowed by an optional search term.
func (s *Service) GetInventory(ctx context.Context, query domain.InventoryQuery) (*domain.StoreInventory, error) {
	store, err := s.directory.GetStore(ctx, query.StoreID)
	if err != nil {
		return nil, err
	}
	items, err := s.directory.Inventory(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(query.Text)
	filtered := make([]domain.InventoryItem, 0, len(items))
	for _, item := range items {
		if item.Matches(text) {
			filtered = append(filtered, item)
		}
	}
	return &domain.StoreInventory{Store: *store, Items: filtered}, nil
}

func (s *Service) radius(requested *float64) float64 {
	if requested == nil || math.IsNaN(*requested) || math.IsInf(*requested, 0) {
		return s.defaultRadius
	}
	return *requested
}

var _ ports.Service = (*Service)(nil)
