package notification

import (
	"bytes"
	"fmt"
	"text/template"
)

// Topic keys known to the scenario services.
const (
	TopicCustomerSuccessfulCheckout = "customer_successful_checkout"
	TopicSalesSuccessfulCheckout    = "sales_successful_checkout"
	TopicCustomerCompletedCreditApp = "customer_completed_credit_app"
	TopicSalesCompletedCreditApp    = "sales_completed_credit_app"
	TopicCustomerSavedSearch        = "customer_saved_search"
	TopicSalesSavedSearch           = "sales_saved_search"
)

// Topic is a named notification event type with its subject and body templates.
type Topic struct {
	Key      string
	Subject  string // text/template source rendered with the scenario's RenderContext
	Template string // body template file name, resolved by the Renderer
	Channel  Channel
}

// RenderSubject executes the topic's subject template against data.
func (t Topic) RenderSubject(data RenderContext) (string, error) {
	tmpl, err := template.New(t.Key).Option("missingkey=zero").Parse(t.Subject)
	if err != nil {
		return "", fmt.Errorf("parse subject for topic %s: %w", t.Key, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute subject for topic %s: %w", t.Key, err)
	}
	return buf.String(), nil
}

// TopicRegistry is an immutable lookup table of topics, built once at startup.
type TopicRegistry struct {
	topics map[string]Topic
}

// NewTopicRegistry validates and indexes topics. Registering the same key
// twice is an error.
func NewTopicRegistry(topics ...Topic) (*TopicRegistry, error) {
	registry := &TopicRegistry{topics: make(map[string]Topic, len(topics))}
	for _, t := range topics {
		if t.Key == "" || t.Subject == "" || t.Template == "" {
			return nil, fmt.Errorf("invalid topic %q: key, subject, and template cannot be empty", t.Key)
		}
		if t.Channel == "" {
			t.Channel = ChannelEmail
		}
		if _, exists := registry.topics[t.Key]; exists {
			return nil, fmt.Errorf("topic %q registered twice", t.Key)
		}
		registry.topics[t.Key] = t
	}
	return registry, nil
}

// Lookup returns the topic registered under key, or ErrTopicNotFound.
func (r *TopicRegistry) Lookup(key string) (Topic, error) {
	t, ok := r.topics[key]
	if !ok {
		return Topic{}, fmt.Errorf("%w: %s", ErrTopicNotFound, key)
	}
	return t, nil
}

// DefaultTopics returns the topics served by the bundled email templates.
func DefaultTopics() []Topic {
	return []Topic{
		{
			Key:      TopicCustomerSuccessfulCheckout,
			Subject:  "Your {{.Vehicle.Year}} {{.Vehicle.Make}} {{.Vehicle.Model}} is reserved",
			Template: "customer_successful_checkout.html",
			Channel:  ChannelEmail,
		},
		{
			Key:      TopicSalesSuccessfulCheckout,
			Subject:  "New checkout: {{.FirstName}} {{.LastName}} reserved {{.Vehicle.Year}} {{.Vehicle.Make}} {{.Vehicle.Model}}",
			Template: "sales_successful_checkout.html",
			Channel:  ChannelEmail,
		},
		{
			Key:      TopicCustomerCompletedCreditApp,
			Subject:  "We received your credit application, {{.FirstName}}",
			Template: "customer_completed_credit_app.html",
			Channel:  ChannelEmail,
		},
		{
			Key:      TopicSalesCompletedCreditApp,
			Subject:  "Credit application completed: {{.FirstName}} {{.LastName}}",
			Template: "sales_completed_credit_app.html",
			Channel:  ChannelEmail,
		},
		{
			Key:      TopicCustomerSavedSearch,
			Subject:  "{{.UniqueVehicles}} new matches for your saved searches",
			Template: "customer_saved_search.html",
			Channel:  ChannelEmail,
		},
		{
			Key:      TopicSalesSavedSearch,
			Subject:  "Saved search created by {{if .CustomerName}}{{.CustomerName}}{{else}}{{.Email}}{{end}}",
			Template: "sales_saved_search.html",
			Channel:  ChannelEmail,
		},
	}
}
