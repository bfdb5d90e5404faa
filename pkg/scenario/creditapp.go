package scenario

import (
	"context"

	"github.com/tendant/simple-notify/pkg/notification"
	"github.com/tendant/simple-notify/pkg/validation"
)

type CustomerCreditAppPayload struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

type SalesCreditAppPayload struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// CustomerCreditAppService acknowledges a submitted credit application.
type CustomerCreditAppService struct {
	dispatcher
}

func (s *CustomerCreditAppService) Create(ctx context.Context, payload CustomerCreditAppPayload) ([]int64, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}

	data := notification.RenderContext{
		"FirstName": payload.FirstName,
		"LastName":  payload.LastName,
	}
	return s.dispatch(ctx, notification.TopicCustomerCompletedCreditApp, payload.Email, "", data)
}

// SalesCreditAppService tells the sales mailbox about a credit application.
type SalesCreditAppService struct {
	dispatcher
	mailbox string
}

func (s *SalesCreditAppService) Create(ctx context.Context, payload SalesCreditAppPayload) ([]int64, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}

	data := notification.RenderContext{
		"FirstName": payload.FirstName,
		"LastName":  payload.LastName,
	}
	return s.dispatch(ctx, notification.TopicSalesCompletedCreditApp, s.mailbox, "", data)
}
