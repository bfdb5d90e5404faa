package scenario

import (
	"context"

	"github.com/tendant/simple-notify/pkg/inventory"
	"github.com/tendant/simple-notify/pkg/notification"
	"github.com/tendant/simple-notify/pkg/savedsearch"
	"github.com/tendant/simple-notify/pkg/validation"
)

type CustomerCheckoutPayload struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	VehicleID  string `json:"vehicleID" validate:"required"`
	OnClickURL string `json:"onClickUrl,omitempty" validate:"omitempty,url"`
}

type SalesCheckoutPayload struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	VehicleID string `json:"vehicleID" validate:"required"`
}

// CustomerCheckoutService confirms a reservation to the customer.
type CustomerCheckoutService struct {
	dispatcher
	inventory inventory.VehicleInventory
}

func (s *CustomerCheckoutService) Create(ctx context.Context, payload CustomerCheckoutPayload) ([]int64, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}

	vehicle, err := s.lookupVehicle(ctx, s.inventory, payload.VehicleID)
	if err != nil {
		return nil, err
	}

	data := checkoutContext(payload.FirstName, payload.LastName, vehicle)
	data["OnClickURL"] = payload.OnClickURL
	return s.dispatch(ctx, notification.TopicCustomerSuccessfulCheckout, payload.Email, payload.OnClickURL, data)
}

// SalesCheckoutService tells the sales mailbox about a reservation.
type SalesCheckoutService struct {
	dispatcher
	inventory inventory.VehicleInventory
	mailbox   string
}

func (s *SalesCheckoutService) Create(ctx context.Context, payload SalesCheckoutPayload) ([]int64, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}

	vehicle, err := s.lookupVehicle(ctx, s.inventory, payload.VehicleID)
	if err != nil {
		return nil, err
	}

	data := checkoutContext(payload.FirstName, payload.LastName, vehicle)
	return s.dispatch(ctx, notification.TopicSalesSuccessfulCheckout, s.mailbox, "", data)
}

func checkoutContext(firstName, lastName string, vehicle inventory.Vehicle) notification.RenderContext {
	return notification.RenderContext{
		"FirstName": firstName,
		"LastName":  lastName,
		"Vehicle":   vehicle,
		"Price":     savedsearch.FormatPrice(vehicle.Price),
		"Mileage":   savedsearch.FormatMileage(vehicle.Mileage),
	}
}
