package notification

import "time"

// Channel identifies how a stored notification is transmitted.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelText  Channel = "text"
)

// Record is one persisted notification for a single recipient.
type Record struct {
	ID         int64     `json:"id"`
	Recipient  string    `json:"recipient"`
	Topic      string    `json:"topic"`
	Subject    string    `json:"subject"`
	BodyText   string    `json:"body_text"`
	BodyHTML   string    `json:"body_html"`
	OnClickURL string    `json:"on_click_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateParams is the generic notification-creation contract. One Record is
// created per recipient.
type CreateParams struct {
	Recipients []string `json:"recipients" validate:"required,min=1,dive,required"`
	Subject    string   `json:"subject" validate:"required"`
	Topic      string   `json:"topic" validate:"required"`
	BodyHTML   string   `json:"bodyHtml"`
	BodyText   string   `json:"bodyText"`
	OnClickURL string   `json:"onClickUrl"`
}

// RenderContext holds the named values handed to the template engine.
type RenderContext map[string]any
