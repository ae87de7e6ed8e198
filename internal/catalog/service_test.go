package catalog_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilestore/storefront/internal/api"
	"github.com/mobilestore/storefront/internal/catalog"
	"github.com/mobilestore/storefront/internal/stub"
)

func newService(t *testing.T) *catalog.Service {
	t.Helper()

	backend := stub.New("test-secret")
	server := httptest.NewServer(backend.Router)
	t.Cleanup(server.Close)

	// Catalog routes are public, no token source needed.
	return catalog.NewService(api.NewClient(server.URL, 5*time.Second, nil))
}

func TestPhonesUnfiltered(t *testing.T) {
	s := newService(t)

	phones, err := s.Phones(context.Background(), catalog.PhoneFilter{})
	require.NoError(t, err)
	assert.Len(t, phones, 3)
}

func TestPhonesSearch(t *testing.T) {
	s := newService(t)

	phones, err := s.Phones(context.Background(), catalog.PhoneFilter{Search: "redmi"})
	require.NoError(t, err)
	require.Len(t, phones, 1)
	assert.Equal(t, "Redmi Note 13", phones[0].ModelName)
	assert.True(t, phones[0].Price.Equal(decimal.NewFromInt(249)))
}

func TestPhonesByBrand(t *testing.T) {
	s := newService(t)

	phones, err := s.Phones(context.Background(), catalog.PhoneFilter{Brand: 2})
	require.NoError(t, err)
	require.Len(t, phones, 1)
	assert.Equal(t, "iPhone 15", phones[0].ModelName)
}

func TestPhonesPriceRange(t *testing.T) {
	s := newService(t)

	phones, err := s.Phones(context.Background(), catalog.PhoneFilter{MinPrice: "300", MaxPrice: "850"})
	require.NoError(t, err)
	require.Len(t, phones, 1)
	assert.Equal(t, "Galaxy S24", phones[0].ModelName)
}

func TestPhoneDetail(t *testing.T) {
	s := newService(t)

	phone, err := s.Phone(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Xiaomi", phone.BrandName)
	assert.Equal(t, 20, phone.StockQuantity)
}

func TestPhoneNotFound(t *testing.T) {
	s := newService(t)

	_, err := s.Phone(context.Background(), 404)
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestAccessoriesByCategory(t *testing.T) {
	s := newService(t)

	accessories, err := s.Accessories(context.Background(), catalog.AccessoryFilter{Category: "CASE"})
	require.NoError(t, err)
	require.Len(t, accessories, 1)
	assert.Equal(t, "Clear Case", accessories[0].Name)
}

func TestAccessoryDetail(t *testing.T) {
	s := newService(t)

	accessory, err := s.Accessory(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "USB-C Charger", accessory.Name)
	assert.True(t, accessory.Price.Equal(decimal.NewFromInt(19)))
}

func TestBrands(t *testing.T) {
	s := newService(t)

	brands, err := s.Brands(context.Background())
	require.NoError(t, err)
	require.Len(t, brands, 3)

	names := []string{brands[0].Name, brands[1].Name, brands[2].Name}
	assert.Contains(t, names, "Samsung")
	assert.Contains(t, names, "Apple")
	assert.Contains(t, names, "Xiaomi")
}
