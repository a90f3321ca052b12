package models

// NotificationChannel selects the delivery transport.
type NotificationChannel string

const (
	ChannelEmail    NotificationChannel = "email"
	ChannelWhatsApp NotificationChannel = "whatsapp"
)

// NotificationMessage is the payload queued for asynchronous delivery.
// Delivery is fire-and-forget relative to the booking transaction: failures
// are retried by the worker and never surface to the caller.
type NotificationMessage struct {
	Channel NotificationChannel `json:"channel"`
	Address string              `json:"address"` // email address or phone number
	Subject string              `json:"subject"`
	Body    string              `json:"body"`
	Meta    map[string]string   `json:"meta,omitempty"`
}
