package application

import (
	"context"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Apurer/go-gin-marketplace-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-marketplace-api/internal/domains/catalog/ports"
	storesdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/domain"
	storesports "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/ports"
)

// Service aggregates store inventories into a catalog.
type Service struct {
	finder    storesports.Service
	directory storesports.Directory
	locale    language.Tag
}

type Option func(*Service)

// WithLocale sets the collation language used for name ordering.
func WithLocale(tag language.Tag) Option {
	return func(s *Service) {
		s.locale = tag
	}
}

func NewService(finder storesports.Service, directory storesports.Directory, opts ...Option) *Service {
	s := &Service{finder: finder, directory: directory, locale: language.English}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// BuildCatalog finds candidate stores, folds their filtered inventories by
// SKU and orders the result.
func (s *Service) BuildCatalog(ctx context.Context, query domain.Query) (*domain.Catalog, error) {
	stores, err := s.finder.FindStores(ctx, storesdomain.StoreQuery{
		Location: query.Location,
		RadiusKm: query.RadiusKm,
		Text:     query.StoreText,
	})
	if err != nil {
		return nil, err
	}

	agg := domain.NewAggregator()
	for _, store := range stores {
		items, err := s.directory.Inventory(ctx, store.ID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if query.Accepts(item) {
				agg.Add(store.Store, item)
			}
		}
	}

	// Collators keep internal buffers and must not be shared across goroutines.
	col := collate.New(s.locale)
	products := agg.Products()
	sortProducts(col, products, domain.ParseSortKey(string(query.SortBy)))

	return &domain.Catalog{
		Products:        products,
		Categories:      distinctSorted(col, products, func(p domain.Product) string { return p.Category }),
		Brands:          distinctSorted(col, products, func(p domain.Product) string { return p.Brand }),
		AvailableStores: stores,
	}, nil
}

func sortProducts(col *collate.Collator, products []domain.Product, key domain.SortKey) {
	switch key {
	case domain.SortByPrice:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].LowestPrice < products[j].LowestPrice
		})
	case domain.SortByAvailability:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].StoreCount > products[j].StoreCount
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return col.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}

func distinctSorted(col *collate.Collator, products []domain.Product, field func(domain.Product) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, p := range products {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.SliceStable(values, func(i, j int) bool {
		return col.CompareString(values[i], values[j]) < 0
	})
	return values
}

var _ ports.Service = (*Service)(nil)
