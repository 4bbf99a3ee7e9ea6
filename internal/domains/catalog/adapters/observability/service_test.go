package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"

	catalogdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/catalog/domain"
)

type stubCatalog struct {
	err error
}

func (s stubCatalog) BuildCatalog(context.Context, catalogdomain.Query) (*catalogdomain.Catalog, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &catalogdomain.Catalog{Products: []catalogdomain.Product{{SKU: "APL-001"}}}, nil
}

func TestDecorator_BuildCatalog(t *testing.T) {
	svc := New(stubCatalog{}, WithMeter(metricnoop.NewMeterProvider().Meter("test")))
	catalog, err := svc.BuildCatalog(context.Background(), catalogdomain.Query{SortBy: "price"})
	require.NoError(t, err)
	require.Len(t, catalog.Products, 1)

	boom := errors.New("inventory unavailable")
	_, err = New(stubCatalog{err: boom}).BuildCatalog(context.Background(), catalogdomain.Query{})
	require.ErrorIs(t, err, boom)
}
