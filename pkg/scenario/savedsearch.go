package scenario

import (
	"context"

	"github.com/tendant/simple-notify/pkg/errors"
	"github.com/tendant/simple-notify/pkg/notification"
	"github.com/tendant/simple-notify/pkg/savedsearch"
	"github.com/tendant/simple-notify/pkg/validation"
)

type CustomerSavedSearchPayload struct {
	Email          string                    `json:"email" validate:"required,email"`
	CustomerName   string                    `json:"customerName,omitempty"`
	Results        []savedsearch.ResultGroup `json:"results" validate:"required,min=1"`
	UniqueVehicles *int                      `json:"uniqueVehicles,omitempty" validate:"omitempty,min=0"`
}

type SalesSavedSearchPayload struct {
	Email         string                    `json:"email" validate:"required,email"`
	CustomerName  string                    `json:"customerName,omitempty"`
	SearchFilters savedsearch.SearchFilters `json:"search_filters"`
	Description   string                    `json:"description,omitempty"`
}

// CustomerSavedSearchService sends the saved-search digest to a customer.
type CustomerSavedSearchService struct {
	dispatcher
	unsubscribe UnsubscribeLinker
	webHost     string
}

func (s *CustomerSavedSearchService) Create(ctx context.Context, payload CustomerSavedSearchPayload) ([]int64, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}

	unsubscribeURL, err := s.unsubscribe.URL(s.webHost, payload.Email)
	if err != nil {
		s.logger.Error("Failed to build unsubscribe link", "error", err)
		return nil, errors.InternalWrap(err, "failed to build unsubscribe link")
	}

	uniqueVehicles := savedsearch.UniqueVehicles(payload.Results)
	if payload.UniqueVehicles != nil {
		uniqueVehicles = *payload.UniqueVehicles
	}

	data := notification.RenderContext{
		"CustomerName":   payload.CustomerName,
		"Email":          payload.Email,
		"UniqueVehicles": uniqueVehicles,
		"Results":        savedsearch.Prepare(s.webHost, payload.Results),
		"UnsubscribeURL": unsubscribeURL,
	}
	return s.dispatch(ctx, notification.TopicCustomerSavedSearch, payload.Email, "", data)
}

// SalesSavedSearchService tells the sales mailbox a customer saved a search.
type SalesSavedSearchService struct {
	dispatcher
	mailbox string
	webHost string
}

func (s *SalesSavedSearchService) Create(ctx context.Context, payload SalesSavedSearchPayload) ([]int64, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}

	searchURL := savedsearch.BuildSearchURL(s.webHost, payload.SearchFilters)
	data := notification.RenderContext{
		"CustomerName": payload.CustomerName,
		"Email":        payload.Email,
		"Description":  savedsearch.DisplayDescription(payload.Description, payload.SearchFilters),
		"SearchURL":    searchURL,
	}
	return s.dispatch(ctx, notification.TopicSalesSavedSearch, s.mailbox, searchURL, data)
}
