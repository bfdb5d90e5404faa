// Package scenario adapts business events (checkout, credit application,
// saved search) into generic notifications. Each service validates its
// payload, builds the render context, renders the topic's subject and body,
// and hands a single-recipient request to the notification service.
//
// Every failure is logged with the scenario name and returned to the caller.
package scenario

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/tendant/simple-notify/pkg/errors"
	"github.com/tendant/simple-notify/pkg/inventory"
	"github.com/tendant/simple-notify/pkg/notification"
)

// Notifier creates and delivers notifications.
type Notifier interface {
	Create(ctx context.Context, params notification.CreateParams) ([]int64, error)
}

// UnsubscribeLinker builds the unsubscribe link for a recipient.
type UnsubscribeLinker interface {
	URL(webHost, email string) (string, error)
}

// Deps are the collaborators shared by every scenario.
type Deps struct {
	Notifier     Notifier
	Topics       *notification.TopicRegistry
	Renderer     notification.Renderer
	Inventory    inventory.VehicleInventory
	Unsubscribe  UnsubscribeLinker
	SalesMailbox string
	WebAppHost   string
}

func (d Deps) validate() error {
	switch {
	case d.Notifier == nil:
		return fmt.Errorf("notifier cannot be nil")
	case d.Topics == nil:
		return fmt.Errorf("topic registry cannot be nil")
	case d.Renderer == nil:
		return fmt.Errorf("renderer cannot be nil")
	case d.Inventory == nil:
		return fmt.Errorf("vehicle inventory cannot be nil")
	case d.Unsubscribe == nil:
		return fmt.Errorf("unsubscribe linker cannot be nil")
	case d.SalesMailbox == "":
		return fmt.Errorf("sales mailbox cannot be empty")
	}
	return nil
}

// Services groups the six scenario services.
type Services struct {
	CustomerCheckout    *CustomerCheckoutService
	SalesCheckout       *SalesCheckoutService
	CustomerCreditApp   *CustomerCreditAppService
	SalesCreditApp      *SalesCreditAppService
	CustomerSavedSearch *CustomerSavedSearchService
	SalesSavedSearch    *SalesSavedSearchService
}

// New builds every scenario service over deps.
func New(deps Deps) (*Services, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	return &Services{
		CustomerCheckout:    &CustomerCheckoutService{dispatcher: newDispatcher("customer_checkout", deps), inventory: deps.Inventory},
		SalesCheckout:       &SalesCheckoutService{dispatcher: newDispatcher("sales_checkout", deps), inventory: deps.Inventory, mailbox: deps.SalesMailbox},
		CustomerCreditApp:   &CustomerCreditAppService{dispatcher: newDispatcher("customer_credit_app", deps)},
		SalesCreditApp:      &SalesCreditAppService{dispatcher: newDispatcher("sales_credit_app", deps), mailbox: deps.SalesMailbox},
		CustomerSavedSearch: &CustomerSavedSearchService{dispatcher: newDispatcher("customer_saved_search", deps), unsubscribe: deps.Unsubscribe, webHost: deps.WebAppHost},
		SalesSavedSearch:    &SalesSavedSearchService{dispatcher: newDispatcher("sales_saved_search", deps), mailbox: deps.SalesMailbox, webHost: deps.WebAppHost},
	}, nil
}

// dispatcher renders a topic for one recipient and forwards it.
type dispatcher struct {
	logger   *slog.Logger
	topics   *notification.TopicRegistry
	renderer notification.Renderer
	notifier Notifier
}

func newDispatcher(name string, deps Deps) dispatcher {
	return dispatcher{
		logger:   slog.Default().With("scenario", name),
		topics:   deps.Topics,
		renderer: deps.Renderer,
		notifier: deps.Notifier,
	}
}

func (d dispatcher) dispatch(ctx context.Context, topicKey, recipient, onClickURL string, data notification.RenderContext) ([]int64, error) {
	topic, err := d.topics.Lookup(topicKey)
	if err != nil {
		d.logger.Error("Topic lookup failed", "topic", topicKey, "error", err)
		return nil, errors.Configuration(err, "notification topic is not registered")
	}

	subject, err := topic.RenderSubject(data)
	if err != nil {
		d.logger.Error("Failed to render subject", "topic", topicKey, "error", err)
		return nil, errors.InternalWrap(err, "failed to render subject")
	}

	body, err := d.renderer.Render(topic.Template, data)
	if err != nil {
		d.logger.Error("Failed to render body", "topic", topicKey, "template", topic.Template, "error", err)
		return nil, errors.InternalWrap(err, "failed to render body")
	}

	ids, err := d.notifier.Create(ctx, notification.CreateParams{
		Recipients: []string{recipient},
		Subject:    subject,
		Topic:      topic.Key,
		BodyHTML:   body,
		OnClickURL: onClickURL,
	})
	if err != nil {
		d.logger.Error("Failed to create notification", "topic", topicKey, "error", err)
		return nil, err
	}
	return ids, nil
}

func (d dispatcher) lookupVehicle(ctx context.Context, vi inventory.VehicleInventory, id string) (inventory.Vehicle, error) {
	v, err := vi.GetVehicle(ctx, id)
	if err != nil {
		d.logger.Error("Vehicle lookup failed", "vehicle_id", id, "error", err)
		if stderrors.Is(err, inventory.ErrVehicleNotFound) {
			return inventory.Vehicle{}, errors.NotFound("vehicle", id)
		}
		return inventory.Vehicle{}, errors.Upstream(err, "vehicle lookup failed")
	}
	return v, nil
}
