package api

import (
	"time"

	"github.com/tendant/simple-notify/pkg/savedsearch"
)

// CreateNotificationRequest is the body of POST /notification/create
type CreateNotificationRequest struct {
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	Topic      string   `json:"topic"`
	BodyHTML   string   `json:"bodyHtml,omitempty"`
	BodyText   string   `json:"bodyText,omitempty"`
	OnClickURL string   `json:"onClickUrl,omitempty"`
}

type CustomerCheckoutRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	VehicleID  string `json:"vehicleID"`
	OnClickURL string `json:"onClickUrl,omitempty"`
}

type SalesCheckoutRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	VehicleID string `json:"vehicleID"`
}

type CustomerCreditAppRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type SalesCreditAppRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type CustomerSavedSearchRequest struct {
	Email          string                    `json:"email"`
	CustomerName   string                    `json:"customerName,omitempty"`
	Results        []savedsearch.ResultGroup `json:"results"`
	UniqueVehicles *int                      `json:"uniqueVehicles,omitempty"`
}

type SalesSavedSearchRequest struct {
	Email         string                    `json:"email"`
	CustomerName  string                    `json:"customerName,omitempty"`
	SearchFilters savedsearch.SearchFilters `json:"search_filters"`
	Description   string                    `json:"description,omitempty"`
}

// CreateResponse lists the ids of the records created, one per recipient
type CreateResponse struct {
	IDs []int64 `json:"ids"`
}

// NotificationResponse is a stored notification record
type NotificationResponse struct {
	ID         int64     `json:"id"`
	Recipient  string    `json:"recipient"`
	Topic      string    `json:"topic"`
	Subject    string    `json:"subject"`
	BodyText   string    `json:"bodyText"`
	BodyHTML   string    `json:"bodyHtml"`
	OnClickURL string    `json:"onClickUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}
