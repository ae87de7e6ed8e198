package catalog

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mobilestore/storefront/internal/api"
	"github.com/mobilestore/storefront/internal/model"
)

// PhoneFilter narrows a phone listing. Zero values are omitted from the
// query.
type PhoneFilter struct {
	Search   string
	Brand    int
	MinPrice string
	MaxPrice string
}

// AccessoryFilter narrows an accessory listing.
type AccessoryFilter struct {
	Search   string
	Category string
	MinPrice string
	MaxPrice string
}

// Service maps catalog reads to their REST calls. All endpoints are public;
// no session is required.
type Service struct {
	client *api.Client
}

// NewService creates a new catalog service
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Phones lists phones matching the filter.
func (s *Service) Phones(ctx context.Context, filter PhoneFilter) ([]model.Phone, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Brand != 0 {
		query.Set("brand", fmt.Sprint(filter.Brand))
	}
	if filter.MinPrice != "" {
		query.Set("min_price", filter.MinPrice)
	}
	if filter.MaxPrice != "" {
		query.Set("max_price", filter.MaxPrice)
	}

	var phones []model.Phone
	if err := s.client.Get(ctx, "/phones/", query, &phones); err != nil {
		return nil, err
	}
	return phones, nil
}

// Phone fetches one phone by ID.
func (s *Service) Phone(ctx context.Context, id int) (*model.Phone, error) {
	var phone model.Phone
	if err := s.client.Get(ctx, fmt.Sprintf("/phones/%d/", id), nil, &phone); err != nil {
		return nil, err
	}
	return &phone, nil
}

// Accessories lists accessories matching the filter.
func (s *Service) Accessories(ctx context.Context, filter AccessoryFilter) ([]model.Accessory, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.MinPrice != "" {
		query.Set("min_price", filter.MinPrice)
	}
	if filter.MaxPrice != "" {
		query.Set("max_price", filter.MaxPrice)
	}

	var accessories []model.Accessory
	if err := s.client.Get(ctx, "/accessories/", query, &accessories); err != nil {
		return nil, err
	}
	return accessories, nil
}

// Accessory fetches one accessory by ID.
func (s *Service) Accessory(ctx context.Context, id int) (*model.Accessory, error) {
	var accessory model.Accessory
	if err := s.client.Get(ctx, fmt.Sprintf("/accessories/%d/", id), nil, &accessory); err != nil {
		return nil, err
	}
	return &accessory, nil
}

// Brands lists all phone brands.
func (s *Service) Brands(ctx context.Context) ([]model.Brand, error) {
	var brands []model.Brand
	if err := s.client.Get(ctx, "/phones/brands/", nil, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}
